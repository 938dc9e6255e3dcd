// Package arbiter resolves one step of simultaneous move requests into
// per-agent outcomes.
//
// What
//
//	Every agent names a destination node index. Resolve turns those requests
//	into exactly one Outcome per agent:
//
//	  Accepted          the agent moves to Target
//	  InvalidChoice     the index has no edge in the agent's current view
//	  AlreadyTraversed  Target is already connected by this agent (or is its position)
//	  TieBreakLost      an earlier agent in the step order claimed Target
//	  NoOp              the agent was already finished
//
// How
//
//	 1. Finished agents resolve to NoOp and take no part in the step.
//	 2. Each remaining request is resolved against the agent's own view;
//	    failures are InvalidChoice and leave the contest.
//	 3. A single shared order (a permutation of agent indices, drawn once per
//	    step by the caller) is walked once with a "claimed" set: the first
//	    agent to reach a node is granted it, later ones lose the tie-break.
//	 4. Granted agents whose Target is already in their own connected set are
//	    downgraded to AlreadyTraversed. Their claim still stands for this step.
//
// Invariant
//
//	No two agents are Accepted into the same node in one step.
//
// Complexity: O(A) time and space for A agents.
package arbiter
