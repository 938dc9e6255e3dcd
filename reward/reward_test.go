package reward_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/coopgraph/arbiter"
	"github.com/katalvlaran/coopgraph/core"
	"github.com/katalvlaran/coopgraph/reward"
)

type snap struct {
	finished []bool
	targets  []map[core.NodeID]bool
}

func (s snap) NumAgents() int                        { return len(s.finished) }
func (s snap) Finished(a int) bool                   { return s.finished[a] }
func (s snap) IsTarget(a int, node core.NodeID) bool { return s.targets[a][node] }

func TestDefaultReward(t *testing.T) {
	prev := snap{
		finished: []bool{false, false, false, true},
		targets: []map[core.NodeID]bool{
			{2: true, 5: true},
			{3: true},
			{7: true},
			{9: true},
		},
	}
	outcomes := []arbiter.Outcome{
		{Kind: arbiter.Accepted, Target: 5},       // connection
		{Kind: arbiter.Accepted, Target: 4},       // plain move
		{Kind: arbiter.TieBreakLost, Target: 4},   // invalid
		{Kind: arbiter.NoOp, Target: core.NoNode}, // finished before
	}
	got := reward.NewDefault().Reward(prev, outcomes, prev)
	assert.InDeltaSlice(t, []float64{0.1, -0.03, -0.04, 0}, got, 1e-12)
	assert.InDelta(t, 0.03, reward.Sum(got), 1e-12)
}

func TestFuncOf(t *testing.T) {
	f := reward.FuncOf(func(_ reward.Snapshot, o []arbiter.Outcome, _ reward.Snapshot) []float64 {
		return make([]float64, len(o))
	})
	assert.Len(t, f.Reward(snap{}, make([]arbiter.Outcome, 3), snap{}), 3)
}
