// SPDX-License-Identifier: MIT
// Package: coopgraph/generator
//
// errors.go — sentinel errors for the generator package.
//
// Error policy:
//   • Only sentinel variables are exposed; branch with errors.Is.
//   • Implementations attach context with "%s: ...: %w" and the method tag.
//   • Configuration sentinels (ErrTooFewNodes, ErrNodeBudget, ErrEdgeBudget,
//     ErrDegreeBudget) are returned by constructors only.

package generator

import "errors"

// ErrTooFewNodes indicates a size parameter below its minimum
// (nodes, agents, nodes per agent).
var ErrTooFewNodes = errors.New("generator: parameter too small")

// ErrNodeBudget indicates agents × nodes-per-agent exceeds 80 % of the nodes.
var ErrNodeBudget = errors.New("generator: too many nodes to connect")

// ErrEdgeBudget indicates an edge count that cannot form a connected simple
// graph under the degree bound.
var ErrEdgeBudget = errors.New("generator: edge count out of range")

// ErrDegreeBudget indicates a max degree too small to connect the graph.
var ErrDegreeBudget = errors.New("generator: max degree too small")

// ErrConstructFailed indicates every attempt saturated degrees before the
// requested edge count was reached.
var ErrConstructFailed = errors.New("generator: construction failed")

// ErrDisconnected indicates an instance whose graph is not connected.
var ErrDisconnected = errors.New("generator: graph is disconnected")

// ErrOverlappingTargets indicates two agents share a target node.
var ErrOverlappingTargets = errors.New("generator: overlapping target groups")

// ErrInvalidInstance indicates any other structural defect of an Instance
// (nil graph, mismatched lengths, mistyped targets, start outside group).
var ErrInvalidInstance = errors.New("generator: invalid instance")
