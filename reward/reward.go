// Package reward defines the per-step reward collaborator of the episode
// engine and its default implementation.
//
// A reward Func is a pure function of (previous state, resolved outcomes,
// next state). It is called exactly once per step after the transition and
// must not mutate anything it is given.
package reward

import (
	"github.com/katalvlaran/coopgraph/arbiter"
	"github.com/katalvlaran/coopgraph/core"
)

// Snapshot is the read-only view of a state a reward function needs. The env
// package's State satisfies it.
type Snapshot interface {
	NumAgents() int
	Finished(agent int) bool
	IsTarget(agent int, node core.NodeID) bool
}

// Func computes one reward per agent.
type Func interface {
	Reward(prev Snapshot, outcomes []arbiter.Outcome, next Snapshot) []float64
}

// FuncOf adapts a plain function to Func.
type FuncOf func(prev Snapshot, outcomes []arbiter.Outcome, next Snapshot) []float64

// Reward calls f.
func (f FuncOf) Reward(prev Snapshot, outcomes []arbiter.Outcome, next Snapshot) []float64 {
	return f(prev, outcomes, next)
}

// Values are the three constants of the default reward.
type Values struct {
	// Connection is added when an agent is accepted into one of its targets.
	Connection float64 `yaml:"connection"`
	// Step is charged to every agent that was unfinished before the step.
	Step float64 `yaml:"step"`
	// Invalid is added on top of Step when the agent tried to move and did not.
	Invalid float64 `yaml:"invalid"`
}

// DefaultValues mirrors the constants the environment has always shipped with.
func DefaultValues() Values {
	return Values{Connection: 0.1, Step: -0.03, Invalid: -0.01}
}

// Default is the standard reward.
type Default struct {
	Values Values
}

// NewDefault returns the default reward with DefaultValues.
func NewDefault() Default { return Default{Values: DefaultValues()} }

// Reward implements Func. Agents already finished in prev receive 0.
func (d Default) Reward(prev Snapshot, outcomes []arbiter.Outcome, _ Snapshot) []float64 {
	out := make([]float64, len(outcomes))
	for i, o := range outcomes {
		if prev.Finished(i) {
			continue
		}
		r := d.Values.Step
		if dst, ok := o.Destination(); ok && prev.IsTarget(i, dst) {
			r = d.Values.Connection
		}
		if o.Kind.Invalid() {
			r += d.Values.Invalid
		}
		out[i] = r
	}
	return out
}

// Sum returns the total of rs.
func Sum(rs []float64) float64 {
	var s float64
	for _, r := range rs {
		s += r
	}
	return s
}
