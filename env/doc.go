// SPDX-License-Identifier: MIT

// Package env is the episode controller of the cooperative graph-connection
// engine: it owns the per-episode state and advances it one synchronous step
// at a time.
//
// What:
//
//   - Reset(ctx, seed) draws an instance from the Generator, seeds every
//     agent's connectivity record with its start node and returns the FIRST
//     transition.
//   - Step(ctx, state, actions) resolves all agents' requests at once through
//     arbiter.Resolve, applies accepted moves to positions and connectivity,
//     updates the visibility masks, increments the step counter and derives
//     the next status: DONE when every agent is finished, else TRUNCATED when
//     the step limit is reached, else ACTIVE.
//   - DONE and TRUNCATED are absorbing. Stepping a terminal state returns it
//     unchanged with NoOp outcomes and zero rewards.
//
// Determinism:
//
//   - The episode's random stream is an rng.Key carried on the State. Each
//     step splits it exactly once into the next key and the tie-break key, so
//     a (seed, action sequence) pair always replays identically.
//   - Step never mutates its input state; it works on a clone. The reward
//     function therefore sees both the previous and the next state.
//
// Errors:
//
//   - ErrInvalidConfig from New for a non-positive step limit.
//   - ErrNilState, ErrActionCount, ErrRewardCount for structural misuse.
//   - Generator and invariant errors are wrapped and returned as-is; the
//     previous state is never left half-updated.
//
// Complexity (A agents, N nodes): Step is O(A² + A·log A) plus the reward;
// Clone is O(A·N).
package env
