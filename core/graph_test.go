package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/coopgraph/core"
)

type GraphSuite struct {
	suite.Suite
	g *core.Graph
}

func (s *GraphSuite) SetupTest() {
	// 0,1 owned by agent 0; 2 owned by agent 1; 3,4 utility
	types := []core.NodeType{core.Owned(0), core.Owned(0), core.Owned(1), core.Utility, core.Utility}
	g, err := core.NewGraph(types, core.WithMaxDegree(2))
	s.Require().NoError(err)
	s.g = g
}

func (s *GraphSuite) TestAddEdgeIsSymmetric() {
	require := require.New(s.T())
	require.NoError(s.g.AddEdge(0, 3))
	require.True(s.g.HasEdge(0, 3))
	require.True(s.g.HasEdge(3, 0), "undirected edge must be visible from both ends")
	require.Equal(1, s.g.NumEdges())
}

func (s *GraphSuite) TestAddEdgeRejections() {
	require := require.New(s.T())
	require.ErrorIs(s.g.AddEdge(0, 0), core.ErrLoopNotAllowed)
	require.ErrorIs(s.g.AddEdge(0, 9), core.ErrNodeOutOfRange)
	require.ErrorIs(s.g.AddEdge(-1, 2), core.ErrNodeOutOfRange)

	require.NoError(s.g.AddEdge(0, 1))
	require.ErrorIs(s.g.AddEdge(1, 0), core.ErrDuplicateEdge)

	require.NoError(s.g.AddEdge(0, 2))
	require.ErrorIs(s.g.AddEdge(0, 3), core.ErrDegreeExceeded, "node 0 already has degree 2")
	require.Equal(2, s.g.NumEdges(), "rejected edges must not be counted")
}

func (s *GraphSuite) TestNeighborsSortedAndCopied() {
	require := require.New(s.T())
	require.NoError(s.g.AddEdge(3, 4))
	require.NoError(s.g.AddEdge(3, 1))

	nbrs, err := s.g.Neighbors(3)
	require.NoError(err)
	require.Equal([]core.NodeID{1, 4}, nbrs)

	nbrs[0] = 99
	again, _ := s.g.Neighbors(3)
	require.Equal([]core.NodeID{1, 4}, again, "callers must not alias internal storage")

	_, err = s.g.Neighbors(7)
	require.ErrorIs(err, core.ErrNodeOutOfRange)
}

func (s *GraphSuite) TestTypesAndStats() {
	require := require.New(s.T())
	require.True(s.g.IsUtility(3))
	require.False(s.g.IsUtility(0))
	require.False(s.g.IsUtility(42))
	require.Equal([]core.NodeID{0, 1}, s.g.NodesOfType(core.Owned(0)))

	require.NoError(s.g.AddEdge(0, 3))
	st := s.g.Stats()
	require.Equal(5, st.Nodes)
	require.Equal(1, st.Edges)
	require.Equal(2, st.UtilityNodes)
	require.Equal(3, st.OwnedNodes)
	require.Equal(1, st.MaxDegree)
	require.Equal(0, st.MinDegree)
}

func (s *GraphSuite) TestCloneIsIndependent() {
	require := require.New(s.T())
	require.NoError(s.g.AddEdge(0, 3))
	c := s.g.Clone()
	require.NoError(c.AddEdge(1, 4))
	require.False(s.g.HasEdge(1, 4), "mutating the clone must not touch the source")
	require.Equal(s.g.Edges(), []core.Edge{{From: 0, To: 3}})
	require.Equal(c.Edges(), []core.Edge{{From: 0, To: 3}, {From: 1, To: 4}})
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphSuite))
}

func TestNewGraphEmpty(t *testing.T) {
	_, err := core.NewGraph(nil)
	require.ErrorIs(t, err, core.ErrEmptyGraph)
}

func TestNodeTypeOwner(t *testing.T) {
	cases := []struct {
		t     core.NodeType
		owner int
		ok    bool
		str   string
	}{
		{core.Utility, -1, false, "utility"},
		{core.Owned(0), 0, true, "owned(0)"},
		{core.Owned(3), 3, true, "owned(3)"},
	}
	for _, c := range cases {
		k, ok := c.t.Owner()
		require.Equal(t, c.owner, k)
		require.Equal(t, c.ok, ok)
		require.Equal(t, c.str, c.t.String())
	}
	require.Equal(t, "none", core.NoNode.String())
	require.Equal(t, "7", core.NodeID(7).String())
}

func TestFromEdges(t *testing.T) {
	types := []core.NodeType{core.Utility, core.Utility, core.Utility}
	g, err := core.FromEdges(types, []core.Edge{{From: 0, To: 1}, {From: 1, To: 2}})
	require.NoError(t, err)
	require.Equal(t, 2, g.NumEdges())
	require.Equal(t, 2, g.Degree(1))

	_, err = core.FromEdges(types, []core.Edge{{From: 0, To: 1}, {From: 0, To: 1}})
	require.ErrorIs(t, err, core.ErrDuplicateEdge)
}
