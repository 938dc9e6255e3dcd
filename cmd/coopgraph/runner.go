package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/coopgraph/arbiter"
	"github.com/katalvlaran/coopgraph/core"
	"github.com/katalvlaran/coopgraph/env"
	"github.com/katalvlaran/coopgraph/internal/logging"
	"github.com/katalvlaran/coopgraph/rng"
	"github.com/katalvlaran/coopgraph/store"
)

// policyStream separates the policy's random stream from the episode's.
const policyStream = 0x706f6c

// randomPolicy picks a uniformly random visible neighbor per agent; agents
// with nothing to request send core.NoNode.
type randomPolicy struct {
	r *rand.Rand
}

func newRandomPolicy(seed int64) *randomPolicy {
	return &randomPolicy{r: rng.New(seed).Fold(policyStream).Rand()}
}

func (p *randomPolicy) act(s *env.State) []int {
	actions := make([]int, s.NumAgents())
	for i := range actions {
		valid := s.ValidActions(i)
		if len(valid) == 0 {
			actions[i] = int(core.NoNode)
			continue
		}
		actions[i] = valid[p.r.Intn(len(valid))]
	}
	return actions
}

type runner struct {
	env   *env.Env
	store *store.Store // optional
	log   logging.Logger
}

// episode plays one episode from seed to a terminal state.
func (r *runner) episode(ctx context.Context, seed int64) (store.Summary, error) {
	tr, err := r.env.Reset(ctx, seed)
	if err != nil {
		return store.Summary{}, err
	}
	s := tr.State
	log := logging.FromContext(ctx, r.log)
	policy := newRandomPolicy(seed)
	counts := make(map[string]int, len(arbiter.Kinds))

	for !s.Status().Terminal() {
		if err := ctx.Err(); err != nil {
			return store.Summary{}, err
		}
		tr, err = r.env.Step(ctx, s, policy.act(s))
		if err != nil {
			return store.Summary{}, fmt.Errorf("episode %s step %d: %w", s.EpisodeID(), s.StepCount()+1, err)
		}
		for k, n := range arbiter.Count(tr.Outcomes) {
			counts[k.String()] += n
		}
		s = tr.State
	}

	sum := store.NewSummary(seed, s, counts)
	if r.store != nil {
		if err := r.store.SaveEpisode(ctx, sum); err != nil {
			return sum, err
		}
		log.Debug(logging.ContextWithEpisodeID(ctx, sum.EpisodeID), "episode stored")
	}
	return sum, nil
}
