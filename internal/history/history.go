// Package history persists executed cleanup runs to a per-user SQLite
// database, so deletions remain auditable after the fact. Dry runs are never
// recorded.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"fclean/internal/plan"
)

//go:embed schema.sql
var schemaSQL string

// Run is one executed cleanup, summarized.
type Run struct {
	ID         string
	StartedAt  time.Time
	Permanent  bool
	Deleted    int
	Skipped    int
	Failed     int
	FreedBytes int64
}

// Entry is one file processed during a run.
type Entry struct {
	Path    string
	Size    int64
	Outcome string // deleted, skipped, failed
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user history database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".fclean", "history.db"), nil
}

// Open opens (creating if necessary) the history database at path and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// busy_timeout first so the remaining statements wait on locks instead
	// of failing when two fclean processes race on initialization.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores the outcome of an executed plan.
func (s *Store) RecordRun(ctx context.Context, p *plan.Plan, res *plan.ExecResult, permanent bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, permanent, deleted, skipped, failed, freed_bytes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CreatedAt, permanent,
		len(res.Deleted), len(res.Skipped), len(res.Failed), res.FreedBytes)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO run_entries (run_id, path, size, outcome) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer insert.Close()

	for _, rec := range res.Deleted {
		if _, err := insert.ExecContext(ctx, p.ID, rec.Path, rec.Size, "deleted"); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}
	for _, de := range res.Skipped {
		if _, err := insert.ExecContext(ctx, p.ID, de.Path, 0, "skipped"); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}
	for _, de := range res.Failed {
		if _, err := insert.ExecContext(ctx, p.ID, de.Path, 0, "failed"); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, permanent, deleted, skipped, failed, freed_bytes
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Permanent, &r.Deleted, &r.Skipped, &r.Failed, &r.FreedBytes); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Entries returns every file processed during the given run.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, size, outcome FROM run_entries WHERE run_id = ? ORDER BY path`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.Size, &e.Outcome); err != nil {
			return nil, fmt.Errorf("scan run entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
