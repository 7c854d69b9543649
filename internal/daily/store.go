// apps/solver/internal/daily/store.go
//
// SQLite persistence for daily solves and simulation runs.
// Responsibilities:
//   - daily_results: one row per puzzle, first solve wins (INSERT OR IGNORE).
//   - simulations:   a row per run, inserted as running and finished later.

package daily

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Result is one recorded daily solve.
type Result struct {
	Puzzle    int            `json:"puzzle"`
	Date      string         `json:"date"`
	Target    string         `json:"target"`
	Guesses   int            `json:"guesses"`
	History   solver.History `json:"history"`
	CreatedAt string         `json:"createdAt,omitempty"`
}

// Simulation is the stored summary of a batch run.
type Simulation struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"` // running | done | failed
	CorpusSize int         `json:"corpusSize"`
	Targets    int         `json:"targets"`
	Mean       float64     `json:"mean"`
	MaxGuesses int         `json:"maxGuesses"`
	Failures   int         `json:"failures"`
	Histogram  map[int]int `json:"histogram"`
	Error      string      `json:"error,omitempty"`
	CreatedAt  string      `json:"createdAt"`
	FinishedAt string      `json:"finishedAt,omitempty"`
}

const (
	SimRunning = "running"
	SimDone    = "done"
	SimFailed  = "failed"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InsertResult records a solve. A puzzle is only recorded once; a repeat is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	hist, err := json.Marshal(r.History)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(puzzle, date, target, guesses, history)
VALUES(?,?,?,?,?)`, r.Puzzle, r.Date, r.Target, r.Guesses, string(hist),
	)
	return err
}

// Result looks up the recorded solve for a puzzle.
func (s *Store) Result(ctx context.Context, puzzle int) (Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT puzzle, date, target, guesses, history, created_at
FROM daily_results WHERE puzzle=?`, puzzle)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNotFound
	}
	return r, err
}

// Recent returns the latest recorded solves, newest puzzle first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT puzzle, date, target, guesses, history, created_at
FROM daily_results
ORDER BY puzzle DESC
LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanResult(sc scanner) (Result, error) {
	var r Result
	var hist string
	if err := sc.Scan(&r.Puzzle, &r.Date, &r.Target, &r.Guesses, &hist, &r.CreatedAt); err != nil {
		return Result{}, err
	}
	if err := json.Unmarshal([]byte(hist), &r.History); err != nil {
		return Result{}, fmt.Errorf("daily: puzzle %d history: %w", r.Puzzle, err)
	}
	return r, nil
}

// StartSimulation records a run as running.
func (s *Store) StartSimulation(ctx context.Context, id string, corpusSize int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO simulations(id, status, corpus_size, created_at) VALUES(?,?,?,?)`,
		id, SimRunning, corpusSize, time.Now().UTC().Format(time.RFC3339))
	return err
}

// FinishSimulation stores the outcome of a run. A non-empty errMsg marks it failed.
func (s *Store) FinishSimulation(ctx context.Context, sim Simulation, errMsg string) error {
	status := SimDone
	if errMsg != "" {
		status = SimFailed
	}
	b, err := json.Marshal(sim.Histogram)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE simulations
SET status=?, targets=?, mean=?, max_guesses=?, failures=?, histogram=?, error=?, finished_at=?
WHERE id=?`,
		status, sim.Targets, sim.Mean, sim.MaxGuesses, sim.Failures, string(b), errMsg,
		time.Now().UTC().Format(time.RFC3339), sim.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Simulation loads a run by id.
func (s *Store) Simulation(ctx context.Context, id string) (Simulation, error) {
	var sim Simulation
	var hist string
	var finished sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, status, corpus_size, targets, mean, max_guesses, failures, histogram, error, created_at, finished_at
FROM simulations WHERE id=?`, id,
	).Scan(&sim.ID, &sim.Status, &sim.CorpusSize, &sim.Targets, &sim.Mean, &sim.MaxGuesses,
		&sim.Failures, &hist, &sim.Error, &sim.CreatedAt, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return Simulation{}, ErrNotFound
	}
	if err != nil {
		return Simulation{}, err
	}
	sim.FinishedAt = finished.String

	sim.Histogram = map[int]int{}
	if err := json.Unmarshal([]byte(hist), &sim.Histogram); err != nil {
		return Simulation{}, fmt.Errorf("daily: simulation %s histogram: %w", id, err)
	}
	return sim, nil
}
