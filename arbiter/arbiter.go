package arbiter

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/coopgraph/core"
)

var (
	// ErrBadOrder is returned when the step order is not a permutation of
	// the agent indices.
	ErrBadOrder = errors.New("arbiter: order is not a permutation of agents")

	// ErrNilLookup is returned when Resolve is called without a Lookup.
	ErrNilLookup = errors.New("arbiter: lookup is nil")
)

// Kind is the resolved outcome category.
type Kind uint8

const (
	Accepted Kind = iota
	InvalidChoice
	AlreadyTraversed
	TieBreakLost
	NoOp
)

// Kinds lists every Kind in declaration order.
var Kinds = []Kind{Accepted, InvalidChoice, AlreadyTraversed, TieBreakLost, NoOp}

var kindNames = [...]string{
	Accepted:         "accepted",
	InvalidChoice:    "invalid_choice",
	AlreadyTraversed: "already_traversed",
	TieBreakLost:     "tie_break_lost",
	NoOp:             "no_op",
}

// String returns the snake_case name used in logs and metric labels.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Invalid reports whether the agent tried to move and did not.
func (k Kind) Invalid() bool {
	return k == InvalidChoice || k == AlreadyTraversed || k == TieBreakLost
}

// Outcome is one agent's resolution. Target is the resolved destination, or
// core.NoNode when the request did not resolve (InvalidChoice, NoOp).
type Outcome struct {
	Kind   Kind
	Target core.NodeID
}

// Destination returns Target only for Accepted outcomes.
func (o Outcome) Destination() (core.NodeID, bool) {
	if o.Kind != Accepted {
		return core.NoNode, false
	}
	return o.Target, true
}

func (o Outcome) String() string {
	if o.Target == core.NoNode {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", o.Kind, o.Target)
}

// Candidate is one agent's input to a step.
type Candidate struct {
	Finished  bool
	Position  core.NodeID
	Requested int
}

// Lookup gives Resolve read access to the per-agent view and connected set.
type Lookup interface {
	// Destination resolves requested from the agent's position in its view.
	Destination(agent int, from core.NodeID, requested int) (core.NodeID, bool)
	// Visited reports whether node is in the agent's connected set.
	Visited(agent int, node core.NodeID) bool
}

// Resolve arbitrates one step. order must be a permutation of 0..len(cands)-1.
// Resolve never mutates its inputs.
func Resolve(cands []Candidate, order []int, lk Lookup) ([]Outcome, error) {
	if lk == nil {
		return nil, ErrNilLookup
	}
	if err := checkOrder(order, len(cands)); err != nil {
		return nil, err
	}

	out := make([]Outcome, len(cands))
	pending := 0
	for i, c := range cands {
		if c.Finished {
			out[i] = Outcome{Kind: NoOp, Target: core.NoNode}
			continue
		}
		dest, ok := lk.Destination(i, c.Position, c.Requested)
		if !ok {
			out[i] = Outcome{Kind: InvalidChoice, Target: core.NoNode}
			continue
		}
		out[i] = Outcome{Kind: Accepted, Target: dest}
		pending++
	}
	if pending == 0 {
		return out, nil
	}

	claimed := make(map[core.NodeID]struct{}, pending)
	for _, i := range order {
		if out[i].Kind != Accepted {
			continue
		}
		if _, taken := claimed[out[i].Target]; taken {
			out[i].Kind = TieBreakLost
			continue
		}
		claimed[out[i].Target] = struct{}{}
	}

	for i := range out {
		if out[i].Kind != Accepted {
			continue
		}
		if out[i].Target == cands[i].Position || lk.Visited(i, out[i].Target) {
			out[i].Kind = AlreadyTraversed
		}
	}

	return out, nil
}

// checkOrder verifies order is a permutation of 0..n-1.
func checkOrder(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("Resolve: order has %d entries for %d agents: %w", len(order), n, ErrBadOrder)
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n || seen[i] {
			return fmt.Errorf("Resolve: order %v: %w", order, ErrBadOrder)
		}
		seen[i] = true
	}
	return nil
}

// Count tallies outcomes by kind.
func Count(outcomes []Outcome) map[Kind]int {
	m := make(map[Kind]int, len(Kinds))
	for _, o := range outcomes {
		m[o.Kind]++
	}
	return m
}
