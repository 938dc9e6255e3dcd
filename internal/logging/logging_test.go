package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesFieldsAndEpisodeID(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf}).With(String("component", "env"))

	ctx := ContextWithEpisodeID(context.Background(), "ep-1")
	log.Info(ctx, "reset", Int("nodes", 12), Err(errors.New("boom")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "reset", rec["msg"])
	assert.Equal(t, "env", rec["component"])
	assert.Equal(t, float64(12), rec["nodes"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "ep-1", rec["episode_id"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	log.Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestEpisodeIDFromContext(t *testing.T) {
	assert.Empty(t, EpisodeIDFromContext(context.Background()))
	ctx := ContextWithEpisodeID(context.Background(), "ep-7")
	assert.Equal(t, "ep-7", EpisodeIDFromContext(ctx))
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Noop(), FromContext(context.Background(), nil))

	l := New(Config{Output: &bytes.Buffer{}})
	assert.Equal(t, l, FromContext(ContextWithLogger(context.Background(), l), Noop()))
	assert.Equal(t, l, FromContext(context.Background(), l))
}
