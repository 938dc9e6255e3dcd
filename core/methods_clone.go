// File: methods_clone.go
// Role: Deep copies of a Graph.
// Concurrency:
//   - Read lock on the source; the clone is a fresh instance.

package core

// Clone returns a deep copy: types, degree bound, matrix and neighbor lists.
// Complexity: O(N² + E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := len(g.types)
	c := &Graph{
		maxDegree: g.maxDegree,
		types:     make([]NodeType, n),
		matrix:    make([][]bool, n),
		neighbors: make([][]NodeID, n),
		edgeCount: g.edgeCount,
	}
	copy(c.types, g.types)
	for i := 0; i < n; i++ {
		c.matrix[i] = make([]bool, n)
		copy(c.matrix[i], g.matrix[i])
		c.neighbors[i] = make([]NodeID, len(g.neighbors[i]))
		copy(c.neighbors[i], g.neighbors[i])
	}

	return c
}

// FromEdges builds a Graph from types and an edge list in one call. It is a
// convenience for tests and fixed instances; every edge goes through AddEdge.
func FromEdges(types []NodeType, edges []Edge, opts ...GraphOption) (*Graph, error) {
	g, err := NewGraph(types, opts...)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err = g.AddEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}

	return g, nil
}
