// Package connectivity records the nodes each agent has linked and derives
// whether the agent's target group is fully connected.
//
// A Record is append-only: every accepted move appends one distinct node and
// sets it in a reverse index. Finished flips false→true once every target is
// in the index and never reverts. A Record refuses any mutation that would
// break these rules instead of silently producing an inconsistent flag.
package connectivity

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/coopgraph/core"
)

var (
	// ErrCapacityExceeded is returned when an append would overflow the
	// per-episode bound.
	ErrCapacityExceeded = errors.New("connectivity: capacity exceeded")

	// ErrAlreadyConnected is returned when a node is appended twice.
	ErrAlreadyConnected = errors.New("connectivity: node already connected")

	// ErrFinished is returned when appending to a finished record.
	ErrFinished = errors.New("connectivity: record is finished")

	// ErrBadTargets is returned for empty, duplicated or out-of-range targets.
	ErrBadTargets = errors.New("connectivity: invalid target set")
)

// Record is one agent's connectivity bookkeeping.
type Record struct {
	targets  []core.NodeID
	nodes    []core.NodeID // append-only, distinct
	index    []bool        // index[n] == n ∈ nodes
	capacity int
	finished bool
}

// New creates a Record for numNodes nodes seeded with the start node. capacity
// bounds the number of appends after the start node.
func New(numNodes int, targets []core.NodeID, start core.NodeID, capacity int) (*Record, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("New: no targets: %w", ErrBadTargets)
	}
	if start < 0 || int(start) >= numNodes {
		return nil, fmt.Errorf("New: start %d: %w", start, core.ErrNodeOutOfRange)
	}
	seen := make(map[core.NodeID]struct{}, len(targets))
	for _, t := range targets {
		if t < 0 || int(t) >= numNodes {
			return nil, fmt.Errorf("New: target %d out of range: %w", t, ErrBadTargets)
		}
		if _, dup := seen[t]; dup {
			return nil, fmt.Errorf("New: target %d duplicated: %w", t, ErrBadTargets)
		}
		seen[t] = struct{}{}
	}

	r := &Record{
		targets:  append([]core.NodeID(nil), targets...),
		nodes:    make([]core.NodeID, 0, capacity+1),
		index:    make([]bool, numNodes),
		capacity: capacity,
	}
	r.nodes = append(r.nodes, start)
	r.index[start] = true
	r.refresh()

	return r, nil
}

// Append records an accepted move into node and recomputes Finished.
func (r *Record) Append(node core.NodeID) error {
	if node < 0 || int(node) >= len(r.index) {
		return fmt.Errorf("Append(%d): %w", node, core.ErrNodeOutOfRange)
	}
	if r.finished {
		return fmt.Errorf("Append(%d): %w", node, ErrFinished)
	}
	if r.index[node] {
		return fmt.Errorf("Append(%d): %w", node, ErrAlreadyConnected)
	}
	if len(r.nodes)-1 >= r.capacity {
		return fmt.Errorf("Append(%d): capacity %d: %w", node, r.capacity, ErrCapacityExceeded)
	}
	r.nodes = append(r.nodes, node)
	r.index[node] = true
	r.refresh()

	return nil
}

// refresh recomputes finished as targets ⊆ index. It only ever sets the flag.
func (r *Record) refresh() {
	if r.finished {
		return
	}
	for _, t := range r.targets {
		if !r.index[t] {
			return
		}
	}
	r.finished = true
}

// Visited reports whether node is already connected. Out-of-range is false.
func (r *Record) Visited(node core.NodeID) bool {
	return node >= 0 && int(node) < len(r.index) && r.index[node]
}

// Finished reports whether every target is connected.
func (r *Record) Finished() bool { return r.finished }

// Nodes returns a copy of the connected sequence, start node first.
func (r *Record) Nodes() []core.NodeID { return append([]core.NodeID(nil), r.nodes...) }

// Last returns the most recently connected node.
func (r *Record) Last() core.NodeID { return r.nodes[len(r.nodes)-1] }

// Len returns the number of connected nodes including the start node.
func (r *Record) Len() int { return len(r.nodes) }

// Targets returns a copy of the target group.
func (r *Record) Targets() []core.NodeID { return append([]core.NodeID(nil), r.targets...) }

// IsTarget reports whether node belongs to the target group.
func (r *Record) IsTarget(node core.NodeID) bool {
	for _, t := range r.targets {
		if t == node {
			return true
		}
	}
	return false
}

// Remaining returns the targets not yet connected, in target order.
func (r *Record) Remaining() []core.NodeID {
	var out []core.NodeID
	for _, t := range r.targets {
		if !r.index[t] {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns an independent copy.
func (r *Record) Clone() *Record {
	c := &Record{
		targets:  append([]core.NodeID(nil), r.targets...),
		nodes:    make([]core.NodeID, len(r.nodes), cap(r.nodes)),
		index:    append([]bool(nil), r.index...),
		capacity: r.capacity,
		finished: r.finished,
	}
	copy(c.nodes, r.nodes)
	return c
}
