// Package store persists episode summaries in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/coopgraph/env"
)

// ErrNotFound is returned when an episode id is unknown.
var ErrNotFound = errors.New("store: episode not found")

// Summary is one finished episode.
type Summary struct {
	EpisodeID string
	Seed      int64
	Status    string
	Steps     int
	Return    float64
	Agents    int
	Finished  int
	Nodes     int
	Edges     int
	Outcomes  map[string]int // outcome kind → count over the episode
	CreatedAt time.Time
}

// NewSummary captures the terminal state s of an episode started from seed.
func NewSummary(seed int64, s *env.State, outcomes map[string]int) Summary {
	finished := 0
	for i := 0; i < s.NumAgents(); i++ {
		if s.Finished(i) {
			finished++
		}
	}
	st := s.Graph().Stats()
	return Summary{
		EpisodeID: s.EpisodeID(),
		Seed:      seed,
		Status:    s.Status().String(),
		Steps:     s.StepCount(),
		Return:    s.Return(),
		Agents:    s.NumAgents(),
		Finished:  finished,
		Nodes:     st.Nodes,
		Edges:     st.Edges,
		Outcomes:  outcomes,
		CreatedAt: time.Now().UTC(),
	}
}

// Store wraps the SQLite connection.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it.
// Use ":memory:" for a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close releases the connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS episodes (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		status TEXT NOT NULL,
		steps INTEGER NOT NULL,
		total_reward REAL NOT NULL,
		agents INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		nodes INTEGER NOT NULL,
		edges INTEGER NOT NULL,
		outcomes JSON NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_episodes_status ON episodes(status);
	CREATE INDEX IF NOT EXISTS idx_episodes_created ON episodes(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveEpisode inserts or replaces a summary.
func (s *Store) SaveEpisode(ctx context.Context, sum Summary) error {
	outcomes := sum.Outcomes
	if outcomes == nil {
		outcomes = map[string]int{}
	}
	data, err := json.Marshal(outcomes)
	if err != nil {
		return fmt.Errorf("failed to marshal outcomes: %w", err)
	}
	if sum.CreatedAt.IsZero() {
		sum.CreatedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO episodes
			(id, seed, status, steps, total_reward, agents, finished, nodes, edges, outcomes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sum.EpisodeID, sum.Seed, sum.Status, sum.Steps, sum.Return, sum.Agents,
		sum.Finished, sum.Nodes, sum.Edges, string(data), sum.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save episode %s: %w", sum.EpisodeID, err)
	}
	return nil
}

const selectColumns = `id, seed, status, steps, total_reward, agents, finished, nodes, edges, outcomes, created_at`

// GetEpisode loads one summary by id.
func (s *Store) GetEpisode(ctx context.Context, id string) (*Summary, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM episodes WHERE id = ?`, id)
	sum, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// ListEpisodes returns up to limit summaries, newest first. limit <= 0
// returns all.
func (s *Store) ListEpisodes(ctx context.Context, limit int) ([]Summary, error) {
	query := `SELECT ` + selectColumns + ` FROM episodes ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating episodes: %w", err)
	}
	return out, nil
}

// Aggregate is a per-status rollup.
type Aggregate struct {
	Status     string
	Episodes   int
	MeanSteps  float64
	MeanReturn float64
}

// Aggregates groups all stored episodes by status, ordered by status.
func (s *Store) Aggregates(ctx context.Context) ([]Aggregate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*), AVG(steps), AVG(total_reward)
		FROM episodes
		GROUP BY status
		ORDER BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate episodes: %w", err)
	}
	defer rows.Close()

	var out []Aggregate
	for rows.Next() {
		var a Aggregate
		if err := rows.Scan(&a.Status, &a.Episodes, &a.MeanSteps, &a.MeanReturn); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(sc scanner) (*Summary, error) {
	var (
		sum     Summary
		data    string
		created string
	)
	err := sc.Scan(&sum.EpisodeID, &sum.Seed, &sum.Status, &sum.Steps, &sum.Return,
		&sum.Agents, &sum.Finished, &sum.Nodes, &sum.Edges, &data, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan episode: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &sum.Outcomes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outcomes: %w", err)
	}
	sum.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &sum, nil
}
