// Package core defines the static graph model shared by every episode:
// integer node identifiers, per-node typing (shared utility nodes versus nodes
// owned by an agent group) and a symmetric adjacency relation of bounded degree.
//
// What
//
//   - NodeID indexes a node in [0, N). NoNode is the explicit "no node" value.
//   - NodeType is either Utility or Owned(k) for agent group k.
//   - Graph stores types, a dense adjacency matrix for O(1) HasEdge and sorted
//     neighbor lists for deterministic iteration.
//
// Lifecycle
//
//	A Graph is built once per episode by a generator (AddEdge under a write
//	lock) and is treated as immutable afterwards. Episodes running in parallel
//	may share the same *Graph for reading; per-agent visibility lives in the
//	visibility package and never mutates the Graph.
//
// Determinism
//
//	Neighbors returns IDs in ascending order, so traversals and generators
//	built on top of it are reproducible for a fixed seed.
//
// Errors:
//
//	ErrNodeOutOfRange    - node ID outside [0, N).
//	ErrLoopNotAllowed    - self-loop requested.
//	ErrDuplicateEdge     - the undirected edge already exists.
//	ErrDegreeExceeded    - an endpoint would exceed the configured max degree.
//	ErrEmptyGraph        - a graph with zero nodes was requested.
//
// Complexity (N = nodes, E = edges)
//
//   - Memory: O(N²) bits for the matrix + O(E) for neighbor lists.
//   - AddEdge: O(deg) for the sorted insert; HasEdge: O(1).
package core
