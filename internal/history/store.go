// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite log of checklist runs so earlier
// results for a notebook can be listed later.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/nbchecklist/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultRecentRuns = 20
)

// Store manages the run history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one recorded checklist run.
type Run struct {
	ID        int64     `json:"id" yaml:"id"`
	Notebook  string    `json:"notebook" yaml:"notebook"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Functions []string  `json:"functions" yaml:"functions"`
}

// Exists reports whether dir already holds a history database. It never
// creates anything.
func Exists(dir string) (bool, error) {
	info, err := os.Stat(filepath.Join(dir, dbFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking history database: %w", err)
	}
	return !info.IsDir(), nil
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			notebook TEXT NOT NULL,
			created_at TEXT NOT NULL,
			function_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS functions (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			cell INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_notebook ON runs(notebook)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores report as a new run and returns its ID. Function order is
// kept, duplicates included.
func (s *Store) Record(ctx context.Context, report types.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	ts := s.now().UTC().Format(time.RFC3339Nano)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (notebook, created_at, function_count) VALUES (?, ?, ?)`,
		report.Notebook, ts, len(report.Functions),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO functions (run_id, position, name, cell) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing function insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range report.Functions {
		if _, err := stmt.ExecContext(ctx, runID, i, f.Name, f.Cell); err != nil {
			return 0, fmt.Errorf("inserting function %s: %w", f.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Recent returns up to limit runs, newest first. A limit of zero or less
// means 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRecentRuns
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, notebook, created_at FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ts string
		if err := rows.Scan(&r.ID, &r.Notebook, &ts); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing run time %q: %w", ts, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		names, err := s.functionNames(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Functions = names
	}
	return runs, nil
}

func (s *Store) functionNames(ctx context.Context, runID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM functions WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying functions for run %d: %w", runID, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning function: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
