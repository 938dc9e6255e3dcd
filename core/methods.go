// SPDX-License-Identifier: MIT
// File: methods.go
// Role: Edge mutation and read-only queries over Graph.
// Determinism:
//   - Neighbors and Edges return ascending order.
// Concurrency:
//   - AddEdge takes the write lock; everything else takes the read lock.

package core

import (
	"fmt"
	"sort"
)

// NumNodes returns N. Complexity: O(1).
func (g *Graph) NumNodes() int { return len(g.types) }

// MaxDegree returns the configured degree bound (0 = unbounded).
func (g *Graph) MaxDegree() int { return g.maxDegree }

// Valid reports whether n is in [0, N).
func (g *Graph) Valid(n NodeID) bool { return n >= 0 && int(n) < len(g.types) }

// Type returns the node type of n. It panics on an out-of-range ID, matching
// slice indexing; call Valid first when the ID is untrusted.
func (g *Graph) Type(n NodeID) NodeType { return g.types[n] }

// Types returns a copy of all node types in index order.
func (g *Graph) Types() []NodeType {
	out := make([]NodeType, len(g.types))
	copy(out, g.types)
	return out
}

// IsUtility reports whether n is a valid utility node.
func (g *Graph) IsUtility(n NodeID) bool {
	return g.Valid(n) && g.types[n].IsUtility()
}

// AddEdge inserts the undirected edge {u,v}.
//
// Errors: ErrNodeOutOfRange, ErrLoopNotAllowed, ErrDuplicateEdge, ErrDegreeExceeded.
// Complexity: O(deg(u) + deg(v)) for the sorted inserts.
func (g *Graph) AddEdge(u, v NodeID) error {
	if !g.Valid(u) || !g.Valid(v) {
		return fmt.Errorf("AddEdge(%d,%d): %w", u, v, ErrNodeOutOfRange)
	}
	if u == v {
		return fmt.Errorf("AddEdge(%d,%d): %w", u, v, ErrLoopNotAllowed)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.matrix[u][v] {
		return fmt.Errorf("AddEdge(%d,%d): %w", u, v, ErrDuplicateEdge)
	}
	if g.maxDegree > 0 && (len(g.neighbors[u]) >= g.maxDegree || len(g.neighbors[v]) >= g.maxDegree) {
		return fmt.Errorf("AddEdge(%d,%d): limit %d: %w", u, v, g.maxDegree, ErrDegreeExceeded)
	}

	g.matrix[u][v] = true
	g.matrix[v][u] = true
	g.neighbors[u] = insertSorted(g.neighbors[u], v)
	g.neighbors[v] = insertSorted(g.neighbors[v], u)
	g.edgeCount++

	return nil
}

// HasEdge reports whether {u,v} exists. Out-of-range IDs yield false.
// Complexity: O(1).
func (g *Graph) HasEdge(u, v NodeID) bool {
	if !g.Valid(u) || !g.Valid(v) {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.matrix[u][v]
}

// Neighbors returns a copy of n's neighbors in ascending order.
// Complexity: O(deg(n)).
func (g *Graph) Neighbors(n NodeID) ([]NodeID, error) {
	if !g.Valid(n) {
		return nil, fmt.Errorf("Neighbors(%d): %w", n, ErrNodeOutOfRange)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]NodeID, len(g.neighbors[n]))
	copy(out, g.neighbors[n])

	return out, nil
}

// Degree returns the number of neighbors of n, or 0 for an invalid ID.
func (g *Graph) Degree(n NodeID) int {
	if !g.Valid(n) {
		return 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.neighbors[n])
}

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// Edges returns every edge once, From < To, sorted by (From, To).
// Complexity: O(N + E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.edgeCount)
	for u := range g.neighbors {
		for _, v := range g.neighbors[u] {
			if NodeID(u) < v {
				out = append(out, Edge{From: NodeID(u), To: v})
			}
		}
	}

	return out
}

// AdjacencyMatrix returns a deep copy of the boolean adjacency matrix.
// Complexity: O(N²).
func (g *Graph) AdjacencyMatrix() [][]bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([][]bool, len(g.matrix))
	for i, row := range g.matrix {
		out[i] = make([]bool, len(row))
		copy(out[i], row)
	}

	return out
}

// NodesOfType returns, in ascending order, every node whose type equals t.
func (g *Graph) NodesOfType(t NodeType) []NodeID {
	var out []NodeID
	for i, nt := range g.types {
		if nt == t {
			out = append(out, NodeID(i))
		}
	}

	return out
}

// Stats returns a snapshot summary. Complexity: O(N).
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := Stats{Nodes: len(g.types), Edges: g.edgeCount, MinDegree: -1}
	for i, t := range g.types {
		if t.IsUtility() {
			s.UtilityNodes++
		} else {
			s.OwnedNodes++
		}
		d := len(g.neighbors[i])
		if d > s.MaxDegree {
			s.MaxDegree = d
		}
		if s.MinDegree < 0 || d < s.MinDegree {
			s.MinDegree = d
		}
	}

	return s
}

// insertSorted inserts v into the ascending slice s.
func insertSorted(s []NodeID, v NodeID) []NodeID {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v

	return s
}
