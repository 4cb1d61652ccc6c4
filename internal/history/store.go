// Package history records every intro run in a small SQLite database under
// the workspace: when it started, how long it took, whether it was skipped,
// the beat it ended on and the calibration tally.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one recorded pass through the intro.
type Run struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Skipped   bool
	FinalBeat string
	Pass      int
	Fail      int
	Seed      uint64
}

// Store manages the run history database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// Open creates or opens the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{
		db:     db,
		dbPath: path,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		skipped INTEGER NOT NULL DEFAULT 0,
		final_beat TEXT NOT NULL,
		pass INTEGER NOT NULL DEFAULT 0,
		fail INTEGER NOT NULL DEFAULT 0,
		seed TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run, assigning an ID when it has none. The stored run is
// returned.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, duration_ms, skipped, final_beat, pass, fail, seed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.Format(timeLayout), run.Duration.Milliseconds(),
		boolToInt(run.Skipped), run.FinalBeat, run.Pass, run.Fail,
		// uint64 does not fit INTEGER, keep it as text
		strconv.FormatUint(run.Seed, 10),
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to record run: %w", err)
	}
	return run, nil
}

// List returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, started_at, duration_ms, skipped, final_beat, pass, fail, seed
		FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			durationMs int64
			skipped    int
			seed       string
		)
		if err := rows.Scan(&run.ID, &startedAt, &durationMs, &skipped, &run.FinalBeat, &run.Pass, &run.Fail, &seed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt, err = time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("bad started_at for run %s: %w", run.ID, err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		run.Skipped = skipped != 0
		if seed != "" {
			if run.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
				return nil, fmt.Errorf("bad seed for run %s: %w", run.ID, err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Count returns the number of stored runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}

// Prune keeps only the newest keep runs and returns how many were removed.
// keep <= 0 disables pruning.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return res.RowsAffected()
}

// Clear deletes every run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("failed to clear runs: %w", err)
	}
	return res.RowsAffected()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
