package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coopgraph/core"
	"github.com/katalvlaran/coopgraph/generator"
	"github.com/katalvlaran/coopgraph/rng"
)

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name string
		p    generator.Params
		want error
	}{
		{"default", generator.DefaultParams(), nil},
		{"one node", generator.Params{NumNodes: 1, NumEdges: 0, MaxDegree: 2, NumAgents: 1, NodesPerAgent: 1}, generator.ErrTooFewNodes},
		{"no agents", generator.Params{NumNodes: 10, NumEdges: 12, MaxDegree: 4, NumAgents: 0, NodesPerAgent: 1}, generator.ErrTooFewNodes},
		{"node budget", generator.Params{NumNodes: 10, NumEdges: 12, MaxDegree: 4, NumAgents: 3, NodesPerAgent: 3}, generator.ErrNodeBudget},
		{"degree", generator.Params{NumNodes: 10, NumEdges: 9, MaxDegree: 1, NumAgents: 2, NodesPerAgent: 2}, generator.ErrDegreeBudget},
		{"too few edges", generator.Params{NumNodes: 10, NumEdges: 8, MaxDegree: 4, NumAgents: 2, NodesPerAgent: 2}, generator.ErrEdgeBudget},
		{"too many edges", generator.Params{NumNodes: 10, NumEdges: 21, MaxDegree: 4, NumAgents: 2, NodesPerAgent: 2}, generator.ErrEdgeBudget},
		{"exactly 80 percent", generator.Params{NumNodes: 10, NumEdges: 20, MaxDegree: 4, NumAgents: 2, NodesPerAgent: 4}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := generator.NewSplitRandom(tc.p)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSplitRandomProducesValidInstances(t *testing.T) {
	p := generator.DefaultParams()
	gen, err := generator.NewSplitRandom(p)
	require.NoError(t, err)

	for seed := int64(0); seed < 50; seed++ {
		inst, err := gen.Generate(rng.New(seed))
		require.NoError(t, err, "seed %d", seed)
		require.NoError(t, inst.Validate())

		st := inst.Graph.Stats()
		assert.Equal(t, p.NumNodes, st.Nodes)
		assert.Equal(t, p.NumEdges, st.Edges)
		assert.LessOrEqual(t, st.MaxDegree, p.MaxDegree)
		assert.Equal(t, p.NumAgents*p.NodesPerAgent, st.OwnedNodes)
		require.Len(t, inst.Targets, p.NumAgents)
		for a, group := range inst.Targets {
			assert.Len(t, group, p.NodesPerAgent)
			assert.Equal(t, group[0], inst.Starts[a])
		}
	}
}

func TestSplitRandomDeterministic(t *testing.T) {
	gen, err := generator.NewSplitRandom(generator.DefaultParams())
	require.NoError(t, err)

	a, err := gen.Generate(rng.New(42))
	require.NoError(t, err)
	b, err := gen.Generate(rng.New(42))
	require.NoError(t, err)

	assert.Equal(t, a.Graph.Edges(), b.Graph.Edges())
	assert.Equal(t, a.Targets, b.Targets)
	assert.Equal(t, a.Starts, b.Starts)
}

func TestSplitRandomTreeOnly(t *testing.T) {
	p := generator.Params{NumNodes: 8, NumEdges: 7, MaxDegree: 2, NumAgents: 2, NodesPerAgent: 2}
	gen, err := generator.NewSplitRandom(p, generator.WithAttempts(1))
	require.NoError(t, err)

	inst, err := gen.Generate(rng.New(7))
	require.NoError(t, err)
	assert.Equal(t, 7, inst.Graph.NumEdges())
}

func TestWithAttemptsPanics(t *testing.T) {
	assert.Panics(t, func() { generator.WithAttempts(0) })
}

func fixture(t *testing.T) *generator.Instance {
	t.Helper()
	u := core.Utility
	types := []core.NodeType{u, u, core.Owned(0), core.Owned(1), u, core.Owned(0)}
	g, err := core.FromEdges(types, []core.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 1, To: 3}, {From: 3, To: 4}, {From: 4, To: 5}})
	require.NoError(t, err)
	return &generator.Instance{
		Graph:   g,
		Targets: [][]core.NodeID{{2, 5}, {3}},
		Starts:  []core.NodeID{2, 3},
	}
}

func TestInstanceValidate(t *testing.T) {
	require.NoError(t, fixture(t).Validate())

	in := fixture(t)
	in.Targets[1] = []core.NodeID{3, 5}
	assert.ErrorIs(t, in.Validate(), generator.ErrOverlappingTargets)

	in = fixture(t)
	in.Starts[0] = 3
	assert.ErrorIs(t, in.Validate(), generator.ErrInvalidInstance)

	in = fixture(t)
	in.Targets[0] = []core.NodeID{2, 4}
	assert.ErrorIs(t, in.Validate(), generator.ErrInvalidInstance)

	in = fixture(t)
	in.Starts = in.Starts[:1]
	assert.ErrorIs(t, in.Validate(), generator.ErrInvalidInstance)

	types := []core.NodeType{core.Owned(0), core.Utility, core.Utility}
	g, err := core.FromEdges(types, []core.Edge{{From: 0, To: 1}})
	require.NoError(t, err)
	in = &generator.Instance{Graph: g, Targets: [][]core.NodeID{{0}}, Starts: []core.NodeID{0}}
	assert.ErrorIs(t, in.Validate(), generator.ErrDisconnected)

	var nilInst *generator.Instance
	assert.ErrorIs(t, nilInst.Validate(), generator.ErrInvalidInstance)
}

func TestStatic(t *testing.T) {
	in := fixture(t)
	gen, err := generator.NewStatic(in)
	require.NoError(t, err)

	got, err := gen.Generate(rng.New(1))
	require.NoError(t, err)
	assert.Same(t, in, got)
	assert.Contains(t, gen.String(), "num_agents=2")

	in.Starts[1] = 2
	_, err = generator.NewStatic(in)
	assert.ErrorIs(t, err, generator.ErrInvalidInstance)
}
