// Command coopgraph runs cooperative graph-connection episodes with a random
// valid-action policy and validates configuration files.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/katalvlaran/coopgraph/config"
	"github.com/katalvlaran/coopgraph/env"
	"github.com/katalvlaran/coopgraph/internal/logging"
	"github.com/katalvlaran/coopgraph/internal/metrics"
	"github.com/katalvlaran/coopgraph/internal/tracing"
	"github.com/katalvlaran/coopgraph/store"
)

func main() {
	for _, envFile := range []string{
		".env",
		"../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type runFlags struct {
	configPath  string
	episodes    int
	seed        int64
	dbPath      string
	metricsAddr string
	trace       bool
}

func newRootCmd() *cobra.Command {
	flags := &runFlags{}

	rootCmd := &cobra.Command{
		Use:           "coopgraph",
		Short:         "coopgraph simulates agents connecting their target nodes on a shared graph.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to the YAML config (default $COOPGRAPH_CONFIG or ./coopgraph.yaml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run episodes with a uniformly random valid-action policy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEpisodes(cmd, flags)
		},
	}
	runCmd.Flags().IntVarP(&flags.episodes, "episodes", "n", 1, "number of episodes")
	runCmd.Flags().Int64Var(&flags.seed, "seed", 0, "seed of the first episode; episode i uses seed+i")
	runCmd.Flags().StringVar(&flags.dbPath, "db", "", "SQLite file for episode summaries (overrides store.path)")
	runCmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus /metrics on this address (overrides metrics.addr)")
	runCmd.Flags().BoolVar(&flags.trace, "trace", false, "export spans to stdout (overrides tracing.enabled)")

	validateCmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Load and validate the configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if path == "" {
				path = "defaults"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config ok (%s): %s\n", path, cfg.Summary())
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, validateCmd)
	return rootCmd
}

func runEpisodes(cmd *cobra.Command, flags *runFlags) error {
	if flags.episodes < 1 {
		return fmt.Errorf("--episodes must be positive, got %d", flags.episodes)
	}
	cfg, _, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.dbPath != "" {
		cfg.Store.Path = flags.dbPath
	}
	if flags.metricsAddr != "" {
		cfg.Metrics.Addr = flags.metricsAddr
	}
	if flags.trace {
		cfg.Tracing.Enabled = true
	}
	opts, err := cfg.EnvOptions()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	log := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})

	shutdown, err := tracing.Init(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "coopgraph",
		Exporter:    cfg.Tracing.Exporter,
		SampleRatio: cfg.Tracing.SampleRatio,
		Output:      cmd.OutOrStdout(),
	}, log)
	if err != nil {
		return err
	}
	defer tracing.ShutdownWithTimeout(context.Background(), shutdown, log)
	ctx = logging.ContextWithLogger(ctx, log)

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewEpisodeCollector(reg)
	if err != nil {
		return err
	}
	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(ctx, cfg.Metrics.Addr, collector.Handler(), log)
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer scancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	var st *store.Store
	if cfg.Store.Path != "" {
		st, err = store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	e, err := env.New(append(opts,
		env.WithLogger(log),
		env.WithMetrics(collector),
		env.WithTracer(otel.GetTracerProvider().Tracer("coopgraph")),
	)...)
	if err != nil {
		return err
	}
	log.Info(ctx, "starting run",
		logging.String("env", e.String()),
		logging.Int("episodes", flags.episodes),
	)

	r := &runner{env: e, store: st, log: log}
	for i := 0; i < flags.episodes; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		sum, err := r.episode(ctx, flags.seed+int64(i))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "episode %s seed=%d status=%s steps=%d return=%.3f finished=%d/%d\n",
			sum.EpisodeID, sum.Seed, sum.Status, sum.Steps, sum.Return, sum.Finished, sum.Agents)
	}
	return nil
}

func serveMetrics(ctx context.Context, addr string, h http.Handler, log logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info(ctx, "serving metrics", logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "metrics server failed", logging.Err(err))
		}
	}()
	return srv
}
