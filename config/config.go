// Package config loads the YAML configuration of the coopgraph binary and
// turns it into env options.
//
// Config file locations (priority order):
//  1. the explicit --config path
//  2. $COOPGRAPH_CONFIG
//  3. ./coopgraph.yaml
//
// When no file is found DefaultConfig is used. Missing keys keep their
// default values; LOG_LEVEL and LOG_FORMAT override the logging section.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/coopgraph/env"
	"github.com/katalvlaran/coopgraph/generator"
	"github.com/katalvlaran/coopgraph/internal/tracing"
	"github.com/katalvlaran/coopgraph/reward"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

const (
	// EnvConfigPath names the variable holding the config path.
	EnvConfigPath = "COOPGRAPH_CONFIG"
	// DefaultFileName is looked up in the working directory.
	DefaultFileName = "coopgraph.yaml"
)

// Config is the full binary configuration.
type Config struct {
	Env     EnvConfig     `yaml:"env"`
	Reward  reward.Values `yaml:"reward"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Store   StoreConfig   `yaml:"store"`
	Tracing TracingConfig `yaml:"tracing"`
}

// EnvConfig sizes the generated problem and bounds the episode.
type EnvConfig struct {
	NumNodes      int `yaml:"num_nodes"`
	NumEdges      int `yaml:"num_edges"`
	MaxDegree     int `yaml:"max_degree"`
	NumAgents     int `yaml:"num_agents"`
	NodesPerAgent int `yaml:"nodes_per_agent"`
	StepLimit     int `yaml:"step_limit"`
}

// LoggingConfig selects level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds the /metrics listen address; empty disables serving.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig holds the SQLite path; empty disables persistence.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// TracingConfig toggles the stdout span exporter.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Exporter    string  `yaml:"exporter"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() *Config {
	p := generator.DefaultParams()
	return &Config{
		Env: EnvConfig{
			NumNodes:      p.NumNodes,
			NumEdges:      p.NumEdges,
			MaxDegree:     p.MaxDegree,
			NumAgents:     p.NumAgents,
			NodesPerAgent: p.NodesPerAgent,
			StepLimit:     env.DefaultStepLimit,
		},
		Reward:  reward.DefaultValues(),
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Tracing: TracingConfig{Exporter: tracing.ExporterStdout, SampleRatio: 1},
	}
}

// FindConfigPath returns the first existing candidate path, or "".
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName
	}
	return ""
}

// Load resolves the config path and loads it, or returns defaults if none is
// found. The resolved path is returned alongside.
func Load(explicit string) (*Config, string, error) {
	path := FindConfigPath(explicit)
	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnvironment()
		return cfg, "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path over DefaultConfig.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Parse decodes YAML over DefaultConfig and applies environment overrides.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// applyDefaults fills in empty strings. Numeric fields keep whatever the
// YAML set over DefaultConfig, so an explicit zero survives.
func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Tracing.Exporter == "" {
		c.Tracing.Exporter = tracing.ExporterStdout
	}
}

func (c *Config) applyEnvironment() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
}

// Params converts the env section to generator parameters.
func (c *Config) Params() generator.Params {
	return generator.Params{
		NumNodes:      c.Env.NumNodes,
		NumEdges:      c.Env.NumEdges,
		MaxDegree:     c.Env.MaxDegree,
		NumAgents:     c.Env.NumAgents,
		NodesPerAgent: c.Env.NodesPerAgent,
	}
}

// Validate checks every section. All failures wrap ErrInvalid.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: env: %w", ErrInvalid, err)
	}
	if c.Env.StepLimit < 1 {
		return fmt.Errorf("%w: env.step_limit=%d must be positive", ErrInvalid, c.Env.StepLimit)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: logging.level=%q", ErrInvalid, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format=%q", ErrInvalid, c.Logging.Format)
	}
	switch strings.ToLower(c.Tracing.Exporter) {
	case tracing.ExporterStdout, tracing.ExporterNone:
	default:
		return fmt.Errorf("%w: tracing.exporter=%q", ErrInvalid, c.Tracing.Exporter)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("%w: tracing.sample_ratio=%v outside [0,1]", ErrInvalid, c.Tracing.SampleRatio)
	}
	return nil
}

// EnvOptions validates c and returns the generator and reward options for
// env.New. Callers append logger and metrics options.
func (c *Config) EnvOptions() ([]env.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	gen, err := generator.NewSplitRandom(c.Params())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return []env.Option{
		env.WithGenerator(gen),
		env.WithReward(reward.Default{Values: c.Reward}),
		env.WithStepLimit(c.Env.StepLimit),
	}, nil
}

// Summary returns a one-line human-readable summary.
func (c *Config) Summary() string {
	return fmt.Sprintf("nodes=%d edges=%d max_degree=%d agents=%d per_agent=%d step_limit=%d reward=%+v",
		c.Env.NumNodes, c.Env.NumEdges, c.Env.MaxDegree, c.Env.NumAgents, c.Env.NodesPerAgent,
		c.Env.StepLimit, c.Reward)
}
