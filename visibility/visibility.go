// Package visibility maintains each agent's masked view of the episode graph.
//
// When an agent stands on a utility node u, every edge (v, u) disappears from
// the view of every other agent. The agent standing on u keeps its edges. Owned
// nodes are never masked. Claims are permanent within an episode: Update only
// ever adds masks, so applying it twice with the same positions is a no-op.
//
// The mask is stored per (agent, node) rather than per edge: removing all
// edges into u for an agent is exactly "u is blocked for that agent".
package visibility

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/coopgraph/bfs"
	"github.com/katalvlaran/coopgraph/core"
)

var (
	// ErrNilGraph is returned when New receives a nil graph.
	ErrNilGraph = errors.New("visibility: graph is nil")

	// ErrAgentCount is returned when positions do not match the agent count.
	ErrAgentCount = errors.New("visibility: position count mismatch")

	// ErrAgentOutOfRange is returned for an agent index outside [0, A).
	ErrAgentOutOfRange = errors.New("visibility: agent out of range")
)

// Tracker holds the per-agent masks over a shared, read-only graph.
type Tracker struct {
	g      *core.Graph
	masked [][]bool // masked[agent][node]
}

// New returns a Tracker with no masks for numAgents agents.
func New(g *core.Graph, numAgents int) (*Tracker, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if numAgents <= 0 {
		return nil, fmt.Errorf("New: numAgents=%d: %w", numAgents, ErrAgentOutOfRange)
	}
	t := &Tracker{g: g, masked: make([][]bool, numAgents)}
	for i := range t.masked {
		t.masked[i] = make([]bool, g.NumNodes())
	}

	return t, nil
}

// NumAgents returns A.
func (t *Tracker) NumAgents() int { return len(t.masked) }

// Graph returns the underlying graph.
func (t *Tracker) Graph() *core.Graph { return t.g }

// Update masks every utility node currently occupied by agent j for all
// agents i != j. Positions equal to core.NoNode are skipped.
// Complexity: O(A²).
func (t *Tracker) Update(positions []core.NodeID) error {
	if len(positions) != len(t.masked) {
		return fmt.Errorf("Update: got %d positions for %d agents: %w",
			len(positions), len(t.masked), ErrAgentCount)
	}
	for j, u := range positions {
		if u == core.NoNode {
			continue
		}
		if !t.g.Valid(u) {
			return fmt.Errorf("Update: agent %d at %d: %w", j, u, core.ErrNodeOutOfRange)
		}
		if !t.g.Type(u).IsUtility() {
			continue
		}
		for i := range t.masked {
			if i != j {
				t.masked[i][u] = true
			}
		}
	}

	return nil
}

// Masked reports whether node is blocked for agent.
func (t *Tracker) Masked(agent int, node core.NodeID) bool {
	if agent < 0 || agent >= len(t.masked) || !t.g.Valid(node) {
		return false
	}
	return t.masked[agent][node]
}

// HasEdge reports whether edge from→to exists in agent's view.
func (t *Tracker) HasEdge(agent int, from, to core.NodeID) bool {
	if agent < 0 || agent >= len(t.masked) {
		return false
	}
	return t.g.HasEdge(from, to) && !t.masked[agent][to]
}

// Destination resolves a requested node index from the agent's current
// position. ok is false when the index is out of range or the edge is absent
// from the agent's view.
func (t *Tracker) Destination(agent int, from core.NodeID, requested int) (core.NodeID, bool) {
	to := core.NodeID(requested)
	if !t.g.Valid(to) || !t.HasEdge(agent, from, to) {
		return core.NoNode, false
	}
	return to, true
}

// Neighbors returns the visible neighbors of from for agent, ascending.
func (t *Tracker) Neighbors(agent int, from core.NodeID) ([]core.NodeID, error) {
	if agent < 0 || agent >= len(t.masked) {
		return nil, fmt.Errorf("Neighbors: agent %d: %w", agent, ErrAgentOutOfRange)
	}
	all, err := t.g.Neighbors(from)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, v := range all {
		if !t.masked[agent][v] {
			out = append(out, v)
		}
	}

	return out, nil
}

// ActionMask returns one bool per node: true when agent may request it from
// position from.
func (t *Tracker) ActionMask(agent int, from core.NodeID) []bool {
	mask := make([]bool, t.g.NumNodes())
	for v := range mask {
		mask[v] = t.HasEdge(agent, from, core.NodeID(v))
	}
	return mask
}

// Reachable runs BFS from start over agent's view.
func (t *Tracker) Reachable(agent int, start core.NodeID) (*bfs.Result, error) {
	if agent < 0 || agent >= len(t.masked) {
		return nil, fmt.Errorf("Reachable: agent %d: %w", agent, ErrAgentOutOfRange)
	}
	return bfs.BFS(t.g, start, bfs.WithFilterNeighbor(func(_, nbr core.NodeID) bool {
		return !t.masked[agent][nbr]
	}))
}

// Clone returns an independent copy sharing the read-only graph.
func (t *Tracker) Clone() *Tracker {
	c := &Tracker{g: t.g, masked: make([][]bool, len(t.masked))}
	for i, row := range t.masked {
		c.masked[i] = make([]bool, len(row))
		copy(c.masked[i], row)
	}
	return c
}

// Equal reports whether both trackers hold identical masks.
func (t *Tracker) Equal(o *Tracker) bool {
	if o == nil || len(t.masked) != len(o.masked) {
		return false
	}
	for i := range t.masked {
		if len(t.masked[i]) != len(o.masked[i]) {
			return false
		}
		for v := range t.masked[i] {
			if t.masked[i][v] != o.masked[i][v] {
				return false
			}
		}
	}
	return true
}
