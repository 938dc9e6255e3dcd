package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coopgraph/arbiter"
	"github.com/katalvlaran/coopgraph/core"
)

func TestStepResolvedCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewEpisodeCollector(reg)
	require.NoError(t, err)

	c.EpisodeStarted()
	c.StepResolved([]arbiter.Outcome{
		{Kind: arbiter.Accepted, Target: 4},
		{Kind: arbiter.TieBreakLost, Target: 4},
		{Kind: arbiter.Accepted, Target: 6},
	}, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Steps))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Outcomes.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Outcomes.WithLabelValues("tie_break_lost")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ActiveEpisode))
	assert.Equal(t, uint64(1), histogramCount(t, reg, "coopgraph_step_duration_seconds"))
}

func TestEpisodeEnded(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewEpisodeCollector(reg)
	require.NoError(t, err)

	c.EpisodeStarted()
	c.EpisodeEnded("done", 17, 0.4)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Episodes.WithLabelValues("done")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.ActiveEpisode))
	assert.Equal(t, uint64(1), histogramCount(t, reg, "coopgraph_episode_length_steps"))
	assert.Equal(t, uint64(1), histogramCount(t, reg, "coopgraph_episode_reward"))
}

func TestActiveGaugeCountsUnendedEpisodes(t *testing.T) {
	c, err := NewEpisodeCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	c.EpisodeStarted()
	c.EpisodeStarted()
	c.EpisodeEnded("truncated", 70, -2.1)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ActiveEpisode))
}

func TestReRegistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewEpisodeCollector(reg)
	require.NoError(t, err)
	b, err := NewEpisodeCollector(reg)
	require.NoError(t, err)

	a.StepResolved(nil, 0)
	assert.Equal(t, 1.0, testutil.ToFloat64(b.Steps))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *EpisodeCollector
	assert.NotPanics(t, func() {
		c.EpisodeStarted()
		c.StepResolved([]arbiter.Outcome{{Kind: arbiter.NoOp, Target: core.NoNode}}, 0)
		c.EpisodeEnded("truncated", 70, -2.1)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewEpisodeCollector(reg)
	require.NoError(t, err)
	c.EpisodeEnded("truncated", 70, -2.1)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `coopgraph_episodes_total{status="truncated"} 1`)
}

func histogramCount(t *testing.T, reg *prometheus.Registry, name string) uint64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name || mf.GetType() != dto.MetricType_HISTOGRAM {
			continue
		}
		var total uint64
		for _, m := range mf.GetMetric() {
			total += m.GetHistogram().GetSampleCount()
		}
		return total
	}
	t.Fatalf("histogram %s not found", name)
	return 0
}
