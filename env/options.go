// SPDX-License-Identifier: MIT
// Package: coopgraph/env
//
// options.go — functional options for New.
//
// Contract:
//   • Nil collaborators panic at option construction.
//   • Numeric options are validated by New and surface as ErrInvalidConfig.

package env

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/coopgraph/arbiter"
	"github.com/katalvlaran/coopgraph/generator"
	"github.com/katalvlaran/coopgraph/internal/logging"
	"github.com/katalvlaran/coopgraph/reward"
	"github.com/katalvlaran/coopgraph/rng"
)

// DefaultStepLimit bounds an episode when WithStepLimit is not given.
const DefaultStepLimit = 70

// Option customizes an Env.
type Option func(*Env)

// OrderFunc draws the tie-break order of one step from its key.
// It must return a permutation of 0..numAgents-1.
type OrderFunc func(key rng.Key, numAgents int) []int

// RandomOrder is the default OrderFunc: a uniform permutation from key.
func RandomOrder(key rng.Key, numAgents int) []int { return key.Permutation(numAgents) }

// FixedOrder ignores the key and always returns order.
func FixedOrder(order ...int) OrderFunc {
	fixed := append([]int(nil), order...)
	return func(rng.Key, int) []int { return append([]int(nil), fixed...) }
}

// Recorder receives engine metrics. The internal/metrics collector
// satisfies it. EpisodeStarted fires on every Reset and EpisodeEnded only on
// the step that reaches a terminal status, never on an absorbed step.
type Recorder interface {
	EpisodeStarted()
	StepResolved(outcomes []arbiter.Outcome, elapsed time.Duration)
	EpisodeEnded(status string, steps int, totalReward float64)
}

type noopRecorder struct{}

func (noopRecorder) EpisodeStarted()                               {}
func (noopRecorder) StepResolved([]arbiter.Outcome, time.Duration) {}
func (noopRecorder) EpisodeEnded(string, int, float64)             {}

// WithGenerator sets the instance generator. Panics on nil.
func WithGenerator(g generator.Generator) Option {
	if g == nil {
		panic("env: WithGenerator(nil)")
	}
	return func(e *Env) { e.gen = g }
}

// WithReward sets the reward function. Panics on nil.
func WithReward(f reward.Func) Option {
	if f == nil {
		panic("env: WithReward(nil)")
	}
	return func(e *Env) { e.reward = f }
}

// WithStepLimit sets the episode step limit; New rejects n < 1.
func WithStepLimit(n int) Option {
	return func(e *Env) { e.stepLimit = n }
}

// WithTieBreak replaces the per-step order draw. Panics on nil.
func WithTieBreak(f OrderFunc) Option {
	if f == nil {
		panic("env: WithTieBreak(nil)")
	}
	return func(e *Env) { e.order = f }
}

// WithLogger sets the logger; nil restores the no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Env) {
		if l == nil {
			l = logging.Noop()
		}
		e.log = l
	}
}

// WithMetrics sets the metrics recorder; nil disables metrics.
func WithMetrics(r Recorder) Option {
	return func(e *Env) {
		if r == nil {
			r = noopRecorder{}
		}
		e.rec = r
	}
}

// WithTracer sets the tracer used for Reset and Step spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Env) {
		if t != nil {
			e.tracer = t
		}
	}
}
