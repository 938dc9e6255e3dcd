// SPDX-License-Identifier: MIT
// Package: coopgraph/env
//
// state.go — State, Agent, Status and the read accessors used by the
// arbiter (Lookup) and the reward function (Snapshot).
//
// Concurrency:
//   • A State is never mutated after Step returns it; concurrent reads are
//     safe. The graph is shared read-only between a state and its clones.

package env

import (
	"fmt"

	"github.com/katalvlaran/coopgraph/connectivity"
	"github.com/katalvlaran/coopgraph/core"
	"github.com/katalvlaran/coopgraph/rng"
	"github.com/katalvlaran/coopgraph/visibility"
)

// Status is the episode controller state.
type Status uint8

const (
	Active Status = iota
	Truncated
	Done
)

var statusNames = [...]string{Active: "active", Truncated: "truncated", Done: "done"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Terminal reports whether s is absorbing.
func (s Status) Terminal() bool { return s == Truncated || s == Done }

// Agent is one agent's slot in the state arena.
type Agent struct {
	Position core.NodeID
	Record   *connectivity.Record
}

// State is the full per-episode state.
type State struct {
	episodeID string
	graph     *core.Graph
	agents    []Agent
	tracker   *visibility.Tracker
	stepCount int
	stepLimit int
	status    Status
	key       rng.Key
	ret       float64
}

// EpisodeID returns the episode's identifier.
func (s *State) EpisodeID() string { return s.episodeID }

// Graph returns the episode graph (read-only).
func (s *State) Graph() *core.Graph { return s.graph }

// NumAgents returns the number of agents.
func (s *State) NumAgents() int { return len(s.agents) }

// StepCount returns the number of steps applied so far.
func (s *State) StepCount() int { return s.stepCount }

// StepLimit returns the truncation bound.
func (s *State) StepLimit() int { return s.stepLimit }

// Status returns the controller state.
func (s *State) Status() Status { return s.status }

// Key returns the random key the next step will split.
func (s *State) Key() rng.Key { return s.key }

// Return is the sum of all rewards paid in this episode.
func (s *State) Return() float64 { return s.ret }

// Position returns agent's current node.
func (s *State) Position(agent int) core.NodeID { return s.agents[agent].Position }

// Positions returns every agent's current node.
func (s *State) Positions() []core.NodeID {
	out := make([]core.NodeID, len(s.agents))
	for i, a := range s.agents {
		out[i] = a.Position
	}
	return out
}

// Connected returns agent's connected nodes in append order.
func (s *State) Connected(agent int) []core.NodeID { return s.agents[agent].Record.Nodes() }

// Targets returns agent's target group.
func (s *State) Targets(agent int) []core.NodeID { return s.agents[agent].Record.Targets() }

// Finished reports whether agent has connected all its targets.
func (s *State) Finished(agent int) bool { return s.agents[agent].Record.Finished() }

// AllFinished reports whether every agent is finished.
func (s *State) AllFinished() bool {
	for _, a := range s.agents {
		if !a.Record.Finished() {
			return false
		}
	}
	return true
}

// IsTarget reports whether node is in agent's target group.
func (s *State) IsTarget(agent int, node core.NodeID) bool {
	return s.agents[agent].Record.IsTarget(node)
}

// Visited reports whether node is in agent's connected set.
func (s *State) Visited(agent int, node core.NodeID) bool {
	return s.agents[agent].Record.Visited(node)
}

// Destination resolves a requested node from agent's view.
func (s *State) Destination(agent int, from core.NodeID, requested int) (core.NodeID, bool) {
	return s.tracker.Destination(agent, from, requested)
}

// Masked reports whether node is hidden from agent.
func (s *State) Masked(agent int, node core.NodeID) bool { return s.tracker.Masked(agent, node) }

// ActionMask returns, per node, whether agent may request it now. A finished
// agent gets an all-false mask.
func (s *State) ActionMask(agent int) []bool {
	if s.Finished(agent) {
		return make([]bool, s.graph.NumNodes())
	}
	return s.tracker.ActionMask(agent, s.agents[agent].Position)
}

// ValidActions lists the node indices set in ActionMask(agent).
func (s *State) ValidActions(agent int) []int {
	mask := s.ActionMask(agent)
	out := make([]int, 0, s.graph.MaxDegree())
	for v, ok := range mask {
		if ok {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns a deep copy sharing only the read-only graph.
func (s *State) Clone() *State {
	c := *s
	c.agents = make([]Agent, len(s.agents))
	for i, a := range s.agents {
		c.agents[i] = Agent{Position: a.Position, Record: a.Record.Clone()}
	}
	c.tracker = s.tracker.Clone()
	return &c
}

func (s *State) String() string {
	return fmt.Sprintf("State(episode=%s, step=%d/%d, status=%s, positions=%v)",
		s.episodeID, s.stepCount, s.stepLimit, s.status, s.Positions())
}
