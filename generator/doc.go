// SPDX-License-Identifier: MIT

// Package generator produces the initial instance of an episode: a random
// connected graph with typed nodes, the target group of every agent and each
// agent's start node.
//
// Design contract:
//   - Generator is the collaborator consumed by env.Reset: Generate(key) must
//     be deterministic for a fixed key.
//   - Configuration is validated once, at construction (NewSplitRandom,
//     NewStatic). The node budget rule lives here: agents × nodes-per-agent
//     must not exceed 80 % of the node count.
//   - Every produced Instance passes Instance.Validate: connected graph,
//     disjoint target groups typed Owned(agent), start node inside the group.
//   - Algorithms never panic; option constructors panic on meaningless input.
//
// SplitRandom model:
//  1. Shuffle node indices; the first agents × nodesPerAgent become targets,
//     chunked per agent. Everything else is a utility node.
//  2. Random spanning tree: each node in shuffled order attaches to a random
//     earlier node that still has spare degree.
//  3. Extra edges are drawn from the shuffled list of admissible pairs until
//     the requested edge count is reached.
//  4. On failure (degree saturation) the attempt is retried with a fresh
//     sub key, up to a bounded number of attempts, then ErrConstructFailed.
//
// Complexity: O(N²) per attempt for the candidate pair list.
package generator
