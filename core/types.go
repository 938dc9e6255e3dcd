// SPDX-License-Identifier: MIT
// File: types.go
// Role: NodeID, NodeType, Graph, GraphOption, sentinel errors and NewGraph.
// Concurrency:
//   - mu guards adjacency and neighbor lists; types are immutable after NewGraph.

package core

import (
	"errors"
	"strconv"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrNodeOutOfRange indicates a node ID outside [0, N).
	ErrNodeOutOfRange = errors.New("core: node out of range")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrDuplicateEdge indicates the undirected edge {u,v} already exists.
	ErrDuplicateEdge = errors.New("core: duplicate edge")

	// ErrDegreeExceeded indicates an endpoint already has MaxDegree neighbors.
	ErrDegreeExceeded = errors.New("core: max degree exceeded")

	// ErrEmptyGraph indicates a graph with no nodes was requested.
	ErrEmptyGraph = errors.New("core: graph has no nodes")
)

// NodeID identifies a node by its index in [0, N).
type NodeID int

// NoNode is the explicit "no node" value. It is never a valid index.
const NoNode NodeID = -1

// String renders the ID as a decimal, or "none" for NoNode.
func (n NodeID) String() string {
	if n == NoNode {
		return "none"
	}
	return strconv.Itoa(int(n))
}

// NodeType classifies a node as a shared utility node or as one owned by an
// agent group. The zero value is the owned type of agent group 0, so callers
// should always construct types through Utility or Owned.
type NodeType int

// Utility marks a node that belongs to no agent group.
const Utility NodeType = -1

// Owned returns the node type reserved for agent group k (k >= 0).
func Owned(k int) NodeType { return NodeType(k) }

// IsUtility reports whether t is the shared utility type.
func (t NodeType) IsUtility() bool { return t == Utility }

// Owner returns the owning agent group, or (-1, false) for utility nodes.
func (t NodeType) Owner() (int, bool) {
	if t < 0 {
		return -1, false
	}
	return int(t), true
}

// String renders "utility" or "owned(k)".
func (t NodeType) String() string {
	if k, ok := t.Owner(); ok {
		return "owned(" + strconv.Itoa(k) + ")"
	}
	return "utility"
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithMaxDegree bounds every node's degree. d <= 0 means unbounded.
func WithMaxDegree(d int) GraphOption {
	return func(g *Graph) {
		if d > 0 {
			g.maxDegree = d
		}
	}
}

// Graph is the static, undirected, simple graph of an episode.
type Graph struct {
	mu sync.RWMutex // guards matrix, neighbors, edgeCount

	maxDegree int // 0 = unbounded

	types     []NodeType
	matrix    [][]bool   // matrix[u][v] == matrix[v][u]
	neighbors [][]NodeID // sorted ascending
	edgeCount int
}

// NewGraph creates a Graph with len(types) nodes and no edges. The types slice
// is copied. Returns ErrEmptyGraph when types is empty.
// Complexity: O(N²) for the matrix allocation.
func NewGraph(types []NodeType, opts ...GraphOption) (*Graph, error) {
	n := len(types)
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	g := &Graph{
		types:     make([]NodeType, n),
		matrix:    make([][]bool, n),
		neighbors: make([][]NodeID, n),
	}
	copy(g.types, types)
	for i := 0; i < n; i++ {
		g.matrix[i] = make([]bool, n)
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Edge is an undirected pair with From < To.
type Edge struct {
	From NodeID
	To   NodeID
}

// Stats is a point-in-time summary of a Graph.
type Stats struct {
	Nodes        int
	Edges        int
	UtilityNodes int
	OwnedNodes   int
	MaxDegree    int // observed, not configured
	MinDegree    int
}
