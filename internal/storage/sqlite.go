// Package storage keeps an optional SQLite log of finished sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/maze-arcade/internal/flow"
)

// ErrUnknownRun is returned when a run ID is not in the log.
var ErrUnknownRun = errors.New("storage: unknown run")

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished session.
type RunRecord struct {
	ID         string
	StartLevel int
	FinalLevel int
	Score      int
	Lives      int
	Outcome    string
	Qualified  bool
	Name       string // Set once the player names a qualifying run
	CreatedAt  time.Time
}

// Stats aggregates the whole log.
type Stats struct {
	Runs       int
	BestScore  int
	AvgScore   float64
	BestLevel  int
	GameOvers  int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			start_level INTEGER NOT NULL,
			final_level INTEGER NOT NULL,
			score INTEGER NOT NULL,
			lives INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			qualified INTEGER NOT NULL DEFAULT 0,
			name TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun logs a finished session and returns its ID.
func (s *Store) RecordRun(ctx context.Context, run flow.RunSummary) (string, error) {
	id := uuid.NewString()
	st := run.Result.State

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, start_level, final_level, score, lives, outcome, qualified)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, run.StartLevel, st.Level, st.Score, st.Lives, run.Result.Outcome.String(), run.Qualified,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot record run: %w", err)
	}
	return id, nil
}

// NameRun attaches the name entered for a qualifying run.
func (s *Store) NameRun(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE runs SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("storage: cannot name run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot name run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRun, id)
	}
	return nil
}

// Run returns one run by ID.
func (s *Store) Run(ctx context.Context, id string) (RunRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, start_level, final_level, score, lives, outcome, qualified, name, created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("%w: %s", ErrUnknownRun, id)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, start_level, final_level, score, lives, outcome, qualified, name, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Stats aggregates every logged run.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var lastPlayed any

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(final_level), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'game_over' THEN 1 ELSE 0 END), 0),
		        MAX(created_at)
		 FROM runs`,
	).Scan(&st.Runs, &st.BestScore, &st.AvgScore, &st.BestLevel, &st.GameOvers, &lastPlayed)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

// Ensure Store implements RunRecorder
var _ flow.RunRecorder = (*Store)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var r RunRecord
	var createdAt any
	err := sc.Scan(
		&r.ID,
		&r.StartLevel,
		&r.FinalLevel,
		&r.Score,
		&r.Lives,
		&r.Outcome,
		&r.Qualified,
		&r.Name,
		&createdAt,
	)
	if err != nil {
		return RunRecord{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
