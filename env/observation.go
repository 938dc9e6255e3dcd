// SPDX-License-Identifier: MIT

package env

import "github.com/katalvlaran/coopgraph/core"

// Observation is a self-contained snapshot of what agents can see. All slices
// are fresh copies.
type Observation struct {
	NodeTypes  []core.NodeType
	Views      [][][]bool // Views[a][u][v]: edge u-v visible to agent a
	Positions  []core.NodeID
	ActionMask [][]bool
	Finished   []bool
	StepCount  int
}

// Observation builds the current Observation.
// Complexity: O(A·N²).
func (s *State) Observation() Observation {
	n := s.graph.NumNodes()
	a := len(s.agents)
	obs := Observation{
		NodeTypes:  s.graph.Types(),
		Views:      make([][][]bool, a),
		Positions:  s.Positions(),
		ActionMask: make([][]bool, a),
		Finished:   make([]bool, a),
		StepCount:  s.stepCount,
	}
	adj := s.graph.AdjacencyMatrix()
	for i := 0; i < a; i++ {
		view := make([][]bool, n)
		for u := 0; u < n; u++ {
			view[u] = make([]bool, n)
			for v := 0; v < n; v++ {
				view[u][v] = adj[u][v] && !s.tracker.Masked(i, core.NodeID(v))
			}
		}
		obs.Views[i] = view
		obs.ActionMask[i] = s.ActionMask(i)
		obs.Finished[i] = s.Finished(i)
	}
	return obs
}
