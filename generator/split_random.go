// SPDX-License-Identifier: MIT
// Package: coopgraph/generator
//
// split_random.go — SplitRandom: random connected degree-bounded graph with
// per-agent disjoint target groups.
//
// Contract:
//   • NewSplitRandom validates parameters in this order: sizes, node budget,
//     degree bound, edge budget.
//   • Generate is deterministic for a fixed key and never panics.
//   • Every returned Instance satisfies Instance.Validate.
//
// Complexity:
//   • Time O(A·N²) worst case over A attempts, Space O(N²).

package generator

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/coopgraph/core"
	"github.com/katalvlaran/coopgraph/rng"
)

const (
	methodNewSplitRandom = "NewSplitRandom"
	methodSplitRandom    = "SplitRandom"

	// maxTargetShare is the largest fraction of nodes that may be targets.
	maxTargetShare = 0.8
)

// Params describes the size of a SplitRandom instance.
type Params struct {
	NumNodes      int
	NumEdges      int
	MaxDegree     int
	NumAgents     int
	NodesPerAgent int
}

// DefaultParams returns the reference problem size: 12 nodes, 24 edges,
// max degree 5, 2 agents with 3 targets each.
func DefaultParams() Params {
	return Params{NumNodes: 12, NumEdges: 24, MaxDegree: 5, NumAgents: 2, NodesPerAgent: 3}
}

// MaxEdges returns the largest edge count a simple graph with p.NumNodes nodes
// and degree bound p.MaxDegree can hold.
func (p Params) MaxEdges() int {
	complete := p.NumNodes * (p.NumNodes - 1) / 2
	bounded := p.NumNodes * p.MaxDegree / 2
	if bounded < complete {
		return bounded
	}
	return complete
}

// Validate checks p against the generator's constraints.
func (p Params) Validate() error {
	if p.NumNodes < 2 {
		return fmt.Errorf("%s: num_nodes=%d < 2: %w", methodNewSplitRandom, p.NumNodes, ErrTooFewNodes)
	}
	if p.NumAgents < 1 || p.NodesPerAgent < 1 {
		return fmt.Errorf("%s: num_agents=%d, nodes_per_agent=%d: %w",
			methodNewSplitRandom, p.NumAgents, p.NodesPerAgent, ErrTooFewNodes)
	}
	if float64(p.NumAgents*p.NodesPerAgent) > maxTargetShare*float64(p.NumNodes) {
		return fmt.Errorf("%s: %d agents × %d nodes > %.0f%% of %d: %w",
			methodNewSplitRandom, p.NumAgents, p.NodesPerAgent, maxTargetShare*100, p.NumNodes, ErrNodeBudget)
	}
	minDegree := 2
	if p.NumNodes == 2 {
		minDegree = 1
	}
	if p.MaxDegree < minDegree {
		return fmt.Errorf("%s: max_degree=%d < %d: %w", methodNewSplitRandom, p.MaxDegree, minDegree, ErrDegreeBudget)
	}
	if p.NumEdges < p.NumNodes-1 || p.NumEdges > p.MaxEdges() {
		return fmt.Errorf("%s: num_edges=%d outside [%d,%d]: %w",
			methodNewSplitRandom, p.NumEdges, p.NumNodes-1, p.MaxEdges(), ErrEdgeBudget)
	}
	return nil
}

// SplitRandom generates a fresh random instance per key.
// It holds no mutable state and is safe for concurrent use.
type SplitRandom struct {
	p   Params
	cfg config
}

// NewSplitRandom validates p and returns a generator.
func NewSplitRandom(p Params, opts ...Option) (*SplitRandom, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &SplitRandom{p: p, cfg: newConfig(opts...)}, nil
}

// Params returns the generator's parameters.
func (s *SplitRandom) Params() Params { return s.p }

func (s *SplitRandom) String() string {
	return fmt.Sprintf("SplitRandom(num_nodes=%d, num_edges=%d, max_degree=%d, num_agents=%d, num_nodes_per_agent=%d)",
		s.p.NumNodes, s.p.NumEdges, s.p.MaxDegree, s.p.NumAgents, s.p.NodesPerAgent)
}

// Generate builds an instance from key. Each attempt consumes a fresh sub key.
func (s *SplitRandom) Generate(key rng.Key) (*Instance, error) {
	var lastErr error
	for attempt := 0; attempt < s.cfg.attempts; attempt++ {
		var sub rng.Key
		key, sub = key.Split()
		inst, err := s.attempt(sub.Rand())
		if err == nil {
			return inst, nil
		}
		if !errors.Is(err, ErrConstructFailed) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%s: %d attempts: %w", methodSplitRandom, s.cfg.attempts, lastErr)
}

func (s *SplitRandom) attempt(r *rand.Rand) (*Instance, error) {
	n := s.p.NumNodes
	order := make([]core.NodeID, n)
	for i := range order {
		order[i] = core.NodeID(i)
	}

	// Targets: first A·K shuffled nodes, chunked per agent.
	rng.Shuffle(order, r)
	types := make([]core.NodeType, n)
	for i := range types {
		types[i] = core.Utility
	}
	targets := make([][]core.NodeID, s.p.NumAgents)
	starts := make([]core.NodeID, s.p.NumAgents)
	for a := range targets {
		group := append([]core.NodeID(nil), order[a*s.p.NodesPerAgent:(a+1)*s.p.NodesPerAgent]...)
		for _, v := range group {
			types[v] = core.Owned(a)
		}
		targets[a] = group
		starts[a] = group[0]
	}

	g, err := core.NewGraph(types, core.WithMaxDegree(s.p.MaxDegree))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSplitRandom, err)
	}

	// Spanning tree over an independent node order.
	rng.Shuffle(order, r)
	spare := make([]core.NodeID, 0, n)
	spare = append(spare, order[0])
	for _, v := range order[1:] {
		i := r.Intn(len(spare))
		u := spare[i]
		if err = g.AddEdge(u, v); err != nil {
			return nil, fmt.Errorf("%s: tree edge %d-%d: %w", methodSplitRandom, u, v, err)
		}
		if g.Degree(u) >= s.p.MaxDegree {
			spare[i] = spare[len(spare)-1]
			spare = spare[:len(spare)-1]
		}
		if g.Degree(v) < s.p.MaxDegree {
			spare = append(spare, v)
		}
		if len(spare) == 0 && g.NumEdges() < n-1 {
			return nil, fmt.Errorf("%s: tree saturated: %w", methodSplitRandom, ErrConstructFailed)
		}
	}

	// Extra edges from shuffled admissible pairs.
	need := s.p.NumEdges - g.NumEdges()
	if need > 0 {
		pairs := make([]core.Edge, 0, n*(n-1)/2)
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if !g.HasEdge(core.NodeID(u), core.NodeID(v)) {
					pairs = append(pairs, core.Edge{From: core.NodeID(u), To: core.NodeID(v)})
				}
			}
		}
		rng.Shuffle(pairs, r)
		for _, e := range pairs {
			if need == 0 {
				break
			}
			if err = g.AddEdge(e.From, e.To); err != nil {
				if errors.Is(err, core.ErrDegreeExceeded) {
					continue
				}
				return nil, fmt.Errorf("%s: edge %d-%d: %w", methodSplitRandom, e.From, e.To, err)
			}
			need--
		}
		if need > 0 {
			return nil, fmt.Errorf("%s: %d edges short: %w", methodSplitRandom, need, ErrConstructFailed)
		}
	}

	inst := &Instance{Graph: g, Targets: targets, Starts: starts}
	if err = inst.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodSplitRandom, err)
	}
	return inst, nil
}
