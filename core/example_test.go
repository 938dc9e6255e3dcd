package core_test

import (
	"fmt"

	"github.com/katalvlaran/coopgraph/core"
)

// ExampleGraph builds a tiny two-agent instance:
//
//	0(a0) ── 2(u) ── 1(a1)
//	           │
//	          3(u)
func ExampleGraph() {
	types := []core.NodeType{core.Owned(0), core.Owned(1), core.Utility, core.Utility}
	g, _ := core.NewGraph(types, core.WithMaxDegree(3))
	_ = g.AddEdge(0, 2)
	_ = g.AddEdge(2, 1)
	_ = g.AddEdge(2, 3)

	nbrs, _ := g.Neighbors(2)
	fmt.Println(nbrs, g.Type(2), g.Type(1))
	// Output:
	// [0 1 3] utility owned(1)
}
