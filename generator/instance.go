// SPDX-License-Identifier: MIT

package generator

import (
	"fmt"

	"github.com/katalvlaran/coopgraph/bfs"
	"github.com/katalvlaran/coopgraph/core"
	"github.com/katalvlaran/coopgraph/rng"
)

const methodValidate = "Validate"

// Generator produces the initial instance of an episode from a key.
type Generator interface {
	Generate(key rng.Key) (*Instance, error)
}

// Instance is the immutable problem of one episode.
type Instance struct {
	Graph   *core.Graph
	Targets [][]core.NodeID // Targets[a] is agent a's group
	Starts  []core.NodeID   // Starts[a] ∈ Targets[a]
}

// NumAgents returns len(Targets).
func (in *Instance) NumAgents() int { return len(in.Targets) }

// Validate checks every precondition the episode engine relies on.
// Complexity: O(N + E + A·K).
func (in *Instance) Validate() error {
	if in == nil || in.Graph == nil {
		return fmt.Errorf("%s: nil graph: %w", methodValidate, ErrInvalidInstance)
	}
	a := len(in.Targets)
	if a == 0 || len(in.Starts) != a {
		return fmt.Errorf("%s: %d target groups, %d starts: %w",
			methodValidate, a, len(in.Starts), ErrInvalidInstance)
	}

	owner := make(map[core.NodeID]int, a)
	for agent, group := range in.Targets {
		if len(group) == 0 {
			return fmt.Errorf("%s: agent %d has no targets: %w", methodValidate, agent, ErrInvalidInstance)
		}
		for _, t := range group {
			if !in.Graph.Valid(t) {
				return fmt.Errorf("%s: agent %d target %d: %w", methodValidate, agent, t, core.ErrNodeOutOfRange)
			}
			if prev, dup := owner[t]; dup {
				return fmt.Errorf("%s: node %d claimed by agents %d and %d: %w",
					methodValidate, t, prev, agent, ErrOverlappingTargets)
			}
			owner[t] = agent
			if in.Graph.Type(t) != core.Owned(agent) {
				return fmt.Errorf("%s: agent %d target %d typed %s: %w",
					methodValidate, agent, t, in.Graph.Type(t), ErrInvalidInstance)
			}
		}
		if o, ok := owner[in.Starts[agent]]; !ok || o != agent {
			return fmt.Errorf("%s: agent %d start %d outside its group: %w",
				methodValidate, agent, in.Starts[agent], ErrInvalidInstance)
		}
	}

	ok, err := bfs.Connected(in.Graph)
	if err != nil {
		return fmt.Errorf("%s: %w", methodValidate, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", methodValidate, ErrDisconnected)
	}

	return nil
}

// Static always returns the same instance. It is validated once at
// construction and is safe for concurrent use: the instance is read-only.
type Static struct {
	inst *Instance
}

// NewStatic validates inst and wraps it as a Generator.
func NewStatic(inst *Instance) (*Static, error) {
	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("NewStatic: %w", err)
	}
	return &Static{inst: inst}, nil
}

// Generate ignores the key and returns the fixed instance.
func (s *Static) Generate(rng.Key) (*Instance, error) { return s.inst, nil }

func (s *Static) String() string {
	st := s.inst.Graph.Stats()
	return fmt.Sprintf("Static(num_nodes=%d, num_edges=%d, num_agents=%d)", st.Nodes, st.Edges, s.inst.NumAgents())
}
