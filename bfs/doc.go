// Package bfs provides breadth-first search over a core.Graph, returning
// hop distances, parent links and visit order.
//
// What
//
//   - Explore nodes in non-decreasing hop distance from a start node.
//   - Hooks at enqueue, dequeue and visit; OnVisit may abort with an error.
//   - WithFilterNeighbor prunes individual edges. The episode engine uses it to
//     walk an agent's masked view of the graph instead of the full graph.
//   - Connected reports whether a graph is a single component; generators call
//     it to fail fast on invalid instances.
//
// Determinism
//
//	core.Graph.Neighbors returns ascending IDs and BFS enqueues in that order,
//	so the visit sequence is reproducible.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	res, err := bfs.BFS(g, start,
//	    bfs.WithMaxDepth(3),
//	    bfs.WithFilterNeighbor(func(curr, nbr core.NodeID) bool { return !blocked[nbr] }),
//	)
//
// Errors
//
//   - ErrGraphNil            if the graph pointer is nil.
//   - ErrStartNodeNotFound   if the start node is out of range.
//   - ErrOptionViolation     if an option is invalid (e.g. negative MaxDepth).
//   - Wrapped OnVisit hook errors and context cancellation.
package bfs
