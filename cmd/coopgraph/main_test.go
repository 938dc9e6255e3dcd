package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coopgraph/env"
	"github.com/katalvlaran/coopgraph/internal/logging"
	"github.com/katalvlaran/coopgraph/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coopgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidateConfig(t *testing.T) {
	path := writeConfig(t, "env:\n  step_limit: 30\n")
	out, err := execute(t, "validate-config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "config ok")
	assert.Contains(t, out, "step_limit=30")

	bad := writeConfig(t, "env:\n  num_agents: 5\n")
	_, err = execute(t, "validate-config", "--config", bad)
	assert.Error(t, err)
}

func TestRunStoresEpisodes(t *testing.T) {
	cfg := writeConfig(t, "env:\n  step_limit: 25\nlogging:\n  level: error\n")
	db := filepath.Join(t.TempDir(), "episodes.db")

	out, err := execute(t, "run", "--config", cfg, "--episodes", "3", "--seed", "100", "--db", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "seed=100")
	assert.Contains(t, lines[2], "seed=102")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	all, err := st.ListEpisodes(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, sum := range all {
		assert.Contains(t, []string{"done", "truncated"}, sum.Status)
		assert.LessOrEqual(t, sum.Steps, 25)
		assert.Equal(t, sum.Steps*sum.Agents, total(sum.Outcomes))
	}
}

func TestRunRejectsBadEpisodes(t *testing.T) {
	_, err := execute(t, "run", "--episodes", "0")
	assert.Error(t, err)
}

func TestRunnerIsReproducible(t *testing.T) {
	ctx := context.Background()
	e, err := env.New(env.WithStepLimit(30))
	require.NoError(t, err)
	r := &runner{env: e, log: logging.Noop()}

	a, err := r.episode(ctx, 5)
	require.NoError(t, err)
	b, err := r.episode(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, a.EpisodeID, b.EpisodeID)
	assert.Equal(t, a.Steps, b.Steps)
	assert.Equal(t, a.Outcomes, b.Outcomes)
	assert.InDelta(t, a.Return, b.Return, 1e-12)
}

func TestRunnerUsesContextLogger(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "episodes.db"))
	require.NoError(t, err)
	defer st.Close()

	e, err := env.New(env.WithStepLimit(10))
	require.NoError(t, err)
	r := &runner{env: e, store: st, log: logging.Noop()}

	var buf bytes.Buffer
	ctx := logging.ContextWithLogger(context.Background(),
		logging.New(logging.Config{Level: "debug", Format: "json", Output: &buf}))
	sum, err := r.episode(ctx, 3)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"episode stored"`)
	assert.Contains(t, buf.String(), sum.EpisodeID)
}

func total(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
