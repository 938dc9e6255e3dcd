package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coopgraph/env"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndGetEpisode(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	want := Summary{
		EpisodeID: "ep-1",
		Seed:      42,
		Status:    "done",
		Steps:     17,
		Return:    0.25,
		Agents:    2,
		Finished:  2,
		Nodes:     12,
		Edges:     24,
		Outcomes:  map[string]int{"accepted": 10, "tie_break_lost": 1},
		CreatedAt: created,
	}
	require.NoError(t, s.SaveEpisode(ctx, want))

	got, err := s.GetEpisode(ctx, "ep-1")
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	_, err = s.GetEpisode(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveEpisodeReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveEpisode(ctx, Summary{EpisodeID: "ep", Status: "active"}))
	require.NoError(t, s.SaveEpisode(ctx, Summary{EpisodeID: "ep", Status: "truncated", Steps: 70}))

	all, err := s.ListEpisodes(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "truncated", all[0].Status)
	assert.Empty(t, all[0].Outcomes)
}

func TestListAndAggregate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []Summary{
		{EpisodeID: "a", Status: "done", Steps: 10, Return: 0.5, CreatedAt: base},
		{EpisodeID: "b", Status: "done", Steps: 20, Return: 0.1, CreatedAt: base.Add(time.Minute)},
		{EpisodeID: "c", Status: "truncated", Steps: 70, Return: -2, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range rows {
		require.NoError(t, s.SaveEpisode(ctx, r))
	}

	latest, err := s.ListEpisodes(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "c", latest[0].EpisodeID)
	assert.Equal(t, "b", latest[1].EpisodeID)

	agg, err := s.Aggregates(ctx)
	require.NoError(t, err)
	require.Len(t, agg, 2)
	assert.Equal(t, "done", agg[0].Status)
	assert.Equal(t, 2, agg[0].Episodes)
	assert.InDelta(t, 15, agg[0].MeanSteps, 1e-9)
	assert.InDelta(t, 0.3, agg[0].MeanReturn, 1e-9)
	assert.Equal(t, "truncated", agg[1].Status)
}

func TestNewSummaryFromState(t *testing.T) {
	ctx := context.Background()
	e, err := env.New(env.WithStepLimit(1))
	require.NoError(t, err)

	tr, err := e.Reset(ctx, 9)
	require.NoError(t, err)
	tr, err = e.Step(ctx, tr.State, []int{-1, -1})
	require.NoError(t, err)

	sum := NewSummary(9, tr.State, map[string]int{"invalid_choice": 2})
	assert.Equal(t, tr.State.EpisodeID(), sum.EpisodeID)
	assert.Equal(t, "truncated", sum.Status)
	assert.Equal(t, 1, sum.Steps)
	assert.Equal(t, 2, sum.Agents)
	assert.Zero(t, sum.Finished)
	assert.Equal(t, 12, sum.Nodes)
	assert.Equal(t, 24, sum.Edges)
	assert.InDelta(t, -0.08, sum.Return, 1e-12)
}
