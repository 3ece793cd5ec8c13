// Package runstore persists solver run history to SQLite so the
// dashboard can list and replay past runs.
package runstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crossplay/xwordgen/pkg/solver"
)

// Store provides methods for saving and retrieving run history.
type Store struct {
	db *sql.DB
}

// NewStore wraps db, initializing the run history schema.
func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("runstore: database connection is nil")
	}
	if err := InitDB(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Run is one persisted solver run.
type Run struct {
	ID         int64
	StartedAt  time.Time
	NumRows    int
	NumCols    int
	RandomSeed int64
	Solved     bool
	Elapsed    time.Duration
	Steps      []solver.StepResult
}

// Summary is the subset of a Run shown in a run list, without the
// per-step detail.
type Summary struct {
	ID         int64
	StartedAt  time.Time
	NumRows    int
	NumCols    int
	RandomSeed int64
	Solved     bool
	Elapsed    time.Duration
}

// SaveRun inserts run and returns its assigned ID.
func (s *Store) SaveRun(run Run) (int64, error) {
	stepsJSON, err := json.Marshal(run.Steps)
	if err != nil {
		return 0, fmt.Errorf("runstore: marshal steps: %w", err)
	}

	result, err := s.db.Exec(`
		INSERT INTO runs (started_at, num_rows, num_cols, random_seed, solved, elapsed_ms, steps_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.StartedAt, run.NumRows, run.NumCols, run.RandomSeed, run.Solved, run.Elapsed.Milliseconds(), string(stepsJSON))
	if err != nil {
		return 0, fmt.Errorf("runstore: save run: %w", err)
	}

	return result.LastInsertId()
}

// CreateRun reserves a row for a run that hasn't finished yet, with
// Solved false and no steps, so a live dashboard can be told the run's
// ID before the solver has produced a result to save. Call UpdateRun
// once the run completes.
func (s *Store) CreateRun(startedAt time.Time, numRows, numCols int, randomSeed int64) (int64, error) {
	return s.SaveRun(Run{StartedAt: startedAt, NumRows: numRows, NumCols: numCols, RandomSeed: randomSeed})
}

// UpdateRun fills in the outcome of a run previously reserved with
// CreateRun.
func (s *Store) UpdateRun(id int64, solved bool, elapsed time.Duration, steps []solver.StepResult) error {
	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return fmt.Errorf("runstore: marshal steps: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE runs SET solved = ?, elapsed_ms = ?, steps_json = ? WHERE id = ?
	`, solved, elapsed.Milliseconds(), string(stepsJSON), id)
	if err != nil {
		return fmt.Errorf("runstore: update run %d: %w", id, err)
	}
	return nil
}

// GetRun retrieves one run by ID, including its per-step statistics.
// It returns (nil, nil) if no run with that ID exists.
func (s *Store) GetRun(id int64) (*Run, error) {
	var run Run
	var elapsedMS int64
	var stepsJSON string

	err := s.db.QueryRow(`
		SELECT id, started_at, num_rows, num_cols, random_seed, solved, elapsed_ms, steps_json
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.StartedAt, &run.NumRows, &run.NumCols, &run.RandomSeed, &run.Solved, &elapsedMS, &stepsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("runstore: get run %d: %w", id, err)
	}

	run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	if err := json.Unmarshal([]byte(stepsJSON), &run.Steps); err != nil {
		return nil, fmt.Errorf("runstore: unmarshal steps for run %d: %w", id, err)
	}
	return &run, nil
}

// ListRuns returns every run's summary, most recent first.
func (s *Store) ListRuns() ([]Summary, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, num_rows, num_cols, random_seed, solved, elapsed_ms
		FROM runs ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("runstore: list runs: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		var elapsedMS int64
		if err := rows.Scan(&sum.ID, &sum.StartedAt, &sum.NumRows, &sum.NumCols, &sum.RandomSeed, &sum.Solved, &elapsedMS); err != nil {
			return nil, fmt.Errorf("runstore: scan run summary: %w", err)
		}
		sum.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
