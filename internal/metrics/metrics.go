// Package metrics exposes Prometheus collectors for the episode engine.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/coopgraph/arbiter"
)

// EpisodeCollector bundles the engine's Prometheus metrics. A nil
// *EpisodeCollector is a valid no-op recorder.
type EpisodeCollector struct {
	gatherer prometheus.Gatherer

	Episodes      *prometheus.CounterVec
	ActiveEpisode prometheus.Gauge
	Steps         prometheus.Counter
	Outcomes      *prometheus.CounterVec
	StepDuration  prometheus.Histogram
	EpisodeLength prometheus.Histogram
	EpisodeReward prometheus.Histogram
}

// NewEpisodeCollector registers the metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewEpisodeCollector(reg prometheus.Registerer) (*EpisodeCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	episodes, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coopgraph_episodes_total",
		Help: "Episodes that reached a terminal state, labeled by status.",
	}, []string{"status"}), "coopgraph_episodes_total")
	if err != nil {
		return nil, err
	}

	active, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "coopgraph_episodes_active",
		Help: "Episodes reset and not yet stepped to a terminal state; abandoned episodes stay counted.",
	}), "coopgraph_episodes_active")
	if err != nil {
		return nil, err
	}

	steps, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coopgraph_steps_total",
		Help: "Steps that mutated an active episode.",
	}), "coopgraph_steps_total")
	if err != nil {
		return nil, err
	}

	outcomes, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coopgraph_outcomes_total",
		Help: "Per-agent step outcomes, labeled by kind.",
	}, []string{"kind"}), "coopgraph_outcomes_total")
	if err != nil {
		return nil, err
	}

	stepDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "coopgraph_step_duration_seconds",
		Help:    "Wall time of one Step call.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}), "coopgraph_step_duration_seconds")
	if err != nil {
		return nil, err
	}

	length, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "coopgraph_episode_length_steps",
		Help:    "Steps taken by terminal episodes.",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	}), "coopgraph_episode_length_steps")
	if err != nil {
		return nil, err
	}

	rewardHist, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "coopgraph_episode_reward",
		Help:    "Summed reward of terminal episodes.",
		Buckets: prometheus.LinearBuckets(-5, 0.5, 12),
	}), "coopgraph_episode_reward")
	if err != nil {
		return nil, err
	}

	return &EpisodeCollector{
		gatherer:      gatherer,
		Episodes:      episodes,
		ActiveEpisode: active,
		Steps:         steps,
		Outcomes:      outcomes,
		StepDuration:  stepDuration,
		EpisodeLength: length,
		EpisodeReward: rewardHist,
	}, nil
}

// EpisodeStarted marks a reset. The active gauge drops only in EpisodeEnded,
// so an episode that is reset and never stepped to a terminal state stays
// counted.
func (c *EpisodeCollector) EpisodeStarted() {
	if c == nil || c.ActiveEpisode == nil {
		return
	}
	c.ActiveEpisode.Inc()
}

// StepResolved records one step's outcomes and duration.
func (c *EpisodeCollector) StepResolved(outcomes []arbiter.Outcome, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.Steps != nil {
		c.Steps.Inc()
	}
	if c.Outcomes != nil {
		for _, o := range outcomes {
			c.Outcomes.WithLabelValues(o.Kind.String()).Inc()
		}
	}
	if c.StepDuration != nil {
		c.StepDuration.Observe(elapsed.Seconds())
	}
}

// EpisodeEnded records a terminal transition.
func (c *EpisodeCollector) EpisodeEnded(status string, steps int, totalReward float64) {
	if c == nil {
		return
	}
	if c.Episodes != nil {
		c.Episodes.WithLabelValues(status).Inc()
	}
	if c.ActiveEpisode != nil {
		c.ActiveEpisode.Dec()
	}
	if c.EpisodeLength != nil {
		c.EpisodeLength.Observe(float64(steps))
	}
	if c.EpisodeReward != nil {
		c.EpisodeReward.Observe(totalReward)
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *EpisodeCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
