// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a SQLite history of runs and their per-page outcomes,
// and writes machine-readable run reports.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/deed-raster/pkg/types"
)

const defaultRunLimit = 20

// Store manages the run ledger database.
type Store struct {
	db *sql.DB
}

// RunRecord is one row of the runs table with its page counts.
type RunRecord struct {
	ID         string    `json:"id" yaml:"id"`
	Source     string    `json:"source" yaml:"source"`
	Start      int       `json:"start" yaml:"start"`
	End        int       `json:"end" yaml:"end"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Finalized  int       `json:"finalized" yaml:"finalized"`
	Warnings   int       `json:"warnings" yaml:"warnings"`
	Skipped    int       `json:"skipped" yaml:"skipped"`
	Failed     int       `json:"failed" yaml:"failed"`
}

// Open opens or creates the ledger database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db}
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
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			start_page INTEGER NOT NULL,
			end_page INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			finalized INTEGER NOT NULL DEFAULT 0,
			warnings INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			page INTEGER NOT NULL,
			folder_id TEXT NOT NULL,
			status TEXT NOT NULL,
			final_image TEXT,
			detail TEXT,
			duration_ms INTEGER,
			PRIMARY KEY (run_id, page)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_status ON pages(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run summary and all of its page results in one transaction.
func (s *Store) Record(ctx context.Context, summary types.RunSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, start_page, end_page, started_at, finished_at, finalized, warnings, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.Source, summary.Start, summary.End,
		formatTime(summary.StartedAt), formatTime(summary.FinishedAt),
		summary.Finalized(), summary.Warnings(), summary.Skipped(), summary.Failed(),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", summary.RunID, err)
	}

	for _, p := range summary.Pages {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pages (run_id, page, folder_id, status, final_image, detail, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			summary.RunID, p.Page, p.FolderID, string(p.Status), p.FinalImage, p.Detail, p.Duration.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("inserting page %d: %w", p.Page, err)
		}
	}

	return tx.Commit()
}

// Runs returns the most recent runs, newest first. A limit of 0 uses the default.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = defaultRunLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, start_page, end_page, started_at, finished_at, finalized, warnings, skipped, failed
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r                 RunRecord
			started, finished sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.Start, &r.End, &started, &finished,
			&r.Finalized, &r.Warnings, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt = parseTime(started.String)
		r.FinishedAt = parseTime(finished.String)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Pages returns the page results of one run in page order. An unknown run
// returns an error.
func (s *Store) Pages(ctx context.Context, runID string) ([]types.PageResult, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM runs WHERE id = ?`, runID).Scan(&n); err != nil {
		return nil, fmt.Errorf("looking up run %s: %w", runID, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT page, folder_id, status, final_image, detail, duration_ms
		 FROM pages WHERE run_id = ? ORDER BY page`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var pages []types.PageResult
	for rows.Next() {
		var (
			p             types.PageResult
			status        string
			final, detail sql.NullString
			durationMS    sql.NullInt64
		)
		if err := rows.Scan(&p.Page, &p.FolderID, &status, &final, &detail, &durationMS); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		p.Status = types.PageStatus(status)
		p.FinalImage = final.String
		p.Detail = detail.String
		p.Duration = time.Duration(durationMS.Int64) * time.Millisecond
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
