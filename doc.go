// Package coopgraph is an in-process engine for the cooperative
// graph-connection game: several agents move on one shared graph, each
// trying to link every node of its own target group, while shared utility
// nodes can be claimed by at most one agent per episode.
//
// What is inside?
//
//	A deterministic, synchronous simulation built from small packages:
//		• core/         — typed nodes, symmetric degree-bounded Graph
//		• bfs/          — traversal with hooks and neighbor filters
//		• rng/          — splittable keys, permutations
//		• generator/    — random connected instances, fixed instances
//		• visibility/   — per-agent edge masks over claimed utility nodes
//		• arbiter/      — one-pass tie-break over a shuffled agent order
//		• connectivity/ — append-only connected sets, monotone finished flag
//		• reward/       — pluggable per-agent reward, default shaping
//		• env/          — Reset / Step episode controller
//
// Around the engine: config/ (YAML), store/ (SQLite summaries) and the
// coopgraph command (cmd/coopgraph) that rolls out a random valid-action
// policy with logging, Prometheus metrics and OpenTelemetry spans.
//
// Quick ASCII example:
//
//	a0 ── u ── a1
//
//	Both agents request u in the same step. The shuffled order grants it to
//	exactly one of them; from then on u is hidden from the other.
//
//	go run ./cmd/coopgraph run --episodes 10 --seed 1
package coopgraph
