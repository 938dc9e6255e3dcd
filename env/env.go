// SPDX-License-Identifier: MIT
// Package: coopgraph/env
//
// env.go — Env construction, Reset and Step.
//
// Contract:
//   • Reset and Step are safe for concurrent use on distinct states; Env
//     holds no per-episode mutable data.
//   • Step never mutates its input; errors leave no partial state behind.

package env

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/coopgraph/arbiter"
	"github.com/katalvlaran/coopgraph/connectivity"
	"github.com/katalvlaran/coopgraph/core"
	"github.com/katalvlaran/coopgraph/generator"
	"github.com/katalvlaran/coopgraph/internal/logging"
	"github.com/katalvlaran/coopgraph/reward"
	"github.com/katalvlaran/coopgraph/rng"
	"github.com/katalvlaran/coopgraph/visibility"
)

const tracerName = "github.com/katalvlaran/coopgraph/env"

// StepKind tags a transition as the first, an intermediate or the last of
// an episode.
type StepKind uint8

const (
	First StepKind = iota
	Mid
	Last
)

func (k StepKind) String() string {
	switch k {
	case First:
		return "first"
	case Mid:
		return "mid"
	case Last:
		return "last"
	default:
		return fmt.Sprintf("step_kind(%d)", uint8(k))
	}
}

// Transition is the result of Reset or Step.
type Transition struct {
	State     *State
	Outcomes  []arbiter.Outcome // nil on Reset
	Rewards   []float64         // one per agent
	Order     []int             // tie-break order used; nil when no resolution ran
	Done      bool
	Truncated bool
	Kind      StepKind
	Discount  float64 // 0 on Done, 1 otherwise
}

// TotalReward sums Rewards.
func (t *Transition) TotalReward() float64 { return reward.Sum(t.Rewards) }

// Env is the episode controller.
type Env struct {
	gen       generator.Generator
	reward    reward.Func
	stepLimit int
	order     OrderFunc
	log       logging.Logger
	rec       Recorder
	tracer    trace.Tracer
}

// New builds an Env. Without options it uses a SplitRandom generator with
// generator.DefaultParams, the default reward and DefaultStepLimit.
func New(opts ...Option) (*Env, error) {
	e := &Env{
		stepLimit: DefaultStepLimit,
		order:     RandomOrder,
		log:       logging.Noop(),
		rec:       noopRecorder{},
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.stepLimit < 1 {
		return nil, fmt.Errorf("New: step_limit=%d: %w", e.stepLimit, ErrInvalidConfig)
	}
	if e.gen == nil {
		gen, err := generator.NewSplitRandom(generator.DefaultParams())
		if err != nil {
			return nil, fmt.Errorf("New: %w", err)
		}
		e.gen = gen
	}
	if e.reward == nil {
		e.reward = reward.NewDefault()
	}
	return e, nil
}

// StepLimit returns the configured step limit.
func (e *Env) StepLimit() int { return e.stepLimit }

func (e *Env) String() string {
	var b strings.Builder
	b.WriteString("Env(")
	if s, ok := e.gen.(fmt.Stringer); ok {
		b.WriteString(s.String())
	} else {
		fmt.Fprintf(&b, "%T", e.gen)
	}
	fmt.Fprintf(&b, ", step_limit=%d)", e.stepLimit)
	return b.String()
}

// Reset starts a new episode from seed.
//
// The root key is split into the generator key, the episode id key and the
// key carried by the state; the same seed always yields the same state.
func (e *Env) Reset(ctx context.Context, seed int64) (*Transition, error) {
	ctx, span := e.tracer.Start(ctx, "env.Reset", trace.WithAttributes(attribute.Int64("seed", seed)))
	defer span.End()

	key, problemKey := rng.New(seed).Split()
	key, idKey := key.Split()

	inst, err := e.gen.Generate(problemKey)
	if err == nil {
		err = inst.Validate()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate")
		return nil, fmt.Errorf("Reset(%d): %w", seed, err)
	}

	id, err := uuid.NewRandomFromReader(idKey.Rand())
	if err != nil {
		return nil, fmt.Errorf("Reset(%d): episode id: %w", seed, err)
	}

	s, err := e.newState(inst, id.String(), key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "state")
		return nil, fmt.Errorf("Reset(%d): %w", seed, err)
	}

	ctx = logging.ContextWithEpisodeID(ctx, s.episodeID)
	stats := s.graph.Stats()
	span.SetAttributes(
		attribute.String("episode_id", s.episodeID),
		attribute.Int("nodes", stats.Nodes),
		attribute.Int("edges", stats.Edges),
		attribute.Int("agents", len(s.agents)),
	)
	e.log.Info(ctx, "episode reset",
		logging.Int("seed", int(seed)),
		logging.Int("nodes", stats.Nodes),
		logging.Int("edges", stats.Edges),
		logging.Int("agents", len(s.agents)),
		logging.Int("step_limit", s.stepLimit),
	)
	e.rec.EpisodeStarted()

	return &Transition{
		State:    s,
		Rewards:  make([]float64, len(s.agents)),
		Kind:     First,
		Discount: 1,
	}, nil
}

func (e *Env) newState(inst *generator.Instance, id string, key rng.Key) (*State, error) {
	a := inst.NumAgents()
	tracker, err := visibility.New(inst.Graph, a)
	if err != nil {
		return nil, err
	}
	s := &State{
		episodeID: id,
		graph:     inst.Graph,
		agents:    make([]Agent, a),
		tracker:   tracker,
		stepLimit: e.stepLimit,
		status:    Active,
		key:       key,
	}
	for i := 0; i < a; i++ {
		rec, err := connectivity.New(inst.Graph.NumNodes(), inst.Targets[i], inst.Starts[i], e.stepLimit)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", i, err)
		}
		s.agents[i] = Agent{Position: inst.Starts[i], Record: rec}
	}
	if err = tracker.Update(s.Positions()); err != nil {
		return nil, err
	}
	return s, nil
}

// Step advances s by one synchronous step. actions[i] is the node agent i
// requests; out-of-range or invisible requests degrade to InvalidChoice.
func (e *Env) Step(ctx context.Context, s *State, actions []int) (*Transition, error) {
	if s == nil {
		return nil, ErrNilState
	}
	if len(actions) != len(s.agents) {
		return nil, fmt.Errorf("Step: %d actions for %d agents: %w", len(actions), len(s.agents), ErrActionCount)
	}
	ctx = logging.ContextWithEpisodeID(ctx, s.episodeID)

	if s.status.Terminal() {
		e.log.Warn(ctx, "step on terminal state ignored",
			logging.String("status", s.status.String()),
			logging.Int("step", s.stepCount),
		)
		return e.absorbed(s), nil
	}

	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "env.Step", trace.WithAttributes(
		attribute.String("episode_id", s.episodeID),
		attribute.Int("step", s.stepCount+1),
	))
	defer span.End()

	next := s.Clone()
	var sub rng.Key
	next.key, sub = s.key.Split()
	order := e.order(sub, len(s.agents))

	cands := make([]arbiter.Candidate, len(s.agents))
	for i, a := range s.agents {
		cands[i] = arbiter.Candidate{Finished: a.Record.Finished(), Position: a.Position, Requested: actions[i]}
	}
	outcomes, err := arbiter.Resolve(cands, order, s)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve")
		return nil, fmt.Errorf("Step: %w", err)
	}

	for i, o := range outcomes {
		dest, ok := o.Destination()
		if !ok {
			continue
		}
		if err = next.agents[i].Record.Append(dest); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "connectivity")
			return nil, fmt.Errorf("Step: agent %d: %w", i, err)
		}
		next.agents[i].Position = dest
	}
	if err = next.tracker.Update(next.Positions()); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("Step: %w", err)
	}
	next.stepCount++

	switch {
	case next.AllFinished():
		next.status = Done
	case next.stepCount >= next.stepLimit:
		next.status = Truncated
	default:
		next.status = Active
	}

	rewards := e.reward.Reward(s, outcomes, next)
	if len(rewards) != len(s.agents) {
		return nil, fmt.Errorf("Step: %d rewards for %d agents: %w", len(rewards), len(s.agents), ErrRewardCount)
	}
	next.ret += reward.Sum(rewards)

	tr := &Transition{
		State:     next,
		Outcomes:  outcomes,
		Rewards:   rewards,
		Order:     order,
		Done:      next.status == Done,
		Truncated: next.status == Truncated,
		Kind:      Mid,
		Discount:  1,
	}
	if next.status.Terminal() {
		tr.Kind = Last
	}
	if tr.Done {
		tr.Discount = 0
	}

	counts := arbiter.Count(outcomes)
	span.SetAttributes(
		attribute.Int("accepted", counts[arbiter.Accepted]),
		attribute.String("status", next.status.String()),
	)
	e.rec.StepResolved(outcomes, time.Since(start))
	e.log.Debug(ctx, "step resolved",
		logging.Int("step", next.stepCount),
		logging.String("outcomes", formatOutcomes(outcomes)),
		logging.Any("order", order),
		logging.Float64("reward", tr.TotalReward()),
		logging.Bool("terminal", next.status.Terminal()),
	)
	if next.status.Terminal() {
		e.rec.EpisodeEnded(next.status.String(), next.stepCount, next.ret)
		e.log.Info(ctx, "episode finished",
			logging.String("status", next.status.String()),
			logging.Int("steps", next.stepCount),
			logging.Float64("return", next.ret),
		)
	}

	return tr, nil
}

// absorbed is the Step result for a terminal state: the same state, NoOp
// outcomes and zero rewards.
func (e *Env) absorbed(s *State) *Transition {
	outcomes := make([]arbiter.Outcome, len(s.agents))
	for i := range outcomes {
		outcomes[i] = arbiter.Outcome{Kind: arbiter.NoOp, Target: core.NoNode}
	}
	tr := &Transition{
		State:     s,
		Outcomes:  outcomes,
		Rewards:   make([]float64, len(s.agents)),
		Done:      s.status == Done,
		Truncated: s.status == Truncated,
		Kind:      Last,
		Discount:  1,
	}
	if tr.Done {
		tr.Discount = 0
	}
	return tr
}

func formatOutcomes(outcomes []arbiter.Outcome) string {
	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = o.String()
	}
	return strings.Join(parts, ",")
}
