// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists validation run history in SQLite.
// Implements: prd001-validation (R7); docs/ARCHITECTURE § History.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/refcheck/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "refcheck.db"
)

// Store manages the run-history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// New opens or creates the history database at stateDir/index/refcheck.db,
// creating the schema if it does not exist.
func New(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.StateDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
			document TEXT NOT NULL,
			style TEXT NOT NULL,
			created_at TEXT NOT NULL,
			citations INTEGER NOT NULL,
			refs INTEGER NOT NULL,
			valid INTEGER NOT NULL,
			issues INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS diagnostics (
			run_id TEXT NOT NULL REFERENCES runs(id),
			kind TEXT NOT NULL,
			severity TEXT NOT NULL,
			citation TEXT,
			reference TEXT,
			detail TEXT,
			locations TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_diagnostics_run_id ON diagnostics(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunSummary is one row of validation history.
type RunSummary struct {
	ID         string
	Document   string
	Style      string
	CreatedAt  time.Time
	Citations  int
	References int
	Valid      int
	Issues     int
}

// SaveRun records one validation result and its diagnostics, returning the
// new run id.
func (s *Store) SaveRun(ctx context.Context, document string, res types.ValidationResult) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, document, style, created_at, citations, refs, valid, issues)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, document, res.Style, createdAt,
		res.TotalCitations, res.TotalReferences, res.ValidCount, res.IssueCount(),
	); err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, d := range res.Diagnostics {
		locations, err := json.Marshal(d.Locations)
		if err != nil {
			return "", fmt.Errorf("encoding locations: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO diagnostics (run_id, kind, severity, citation, reference, detail, locations)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, string(d.Kind), string(d.Severity), d.Citation, d.RefKey, d.Message, string(locations),
		); err != nil {
			return "", fmt.Errorf("inserting diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less falls back to the configured maximum.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document, style, created_at, citations, refs, valid, issues
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Document, &r.Style, &createdAt,
			&r.Citations, &r.References, &r.Valid, &r.Issues); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// RunDiagnostics returns the stored diagnostics of one run, in insertion
// order.
func (s *Store) RunDiagnostics(ctx context.Context, runID string) ([]types.Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, severity, citation, reference, detail, locations
		 FROM diagnostics WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying diagnostics: %w", err)
	}
	defer rows.Close()

	var out []types.Diagnostic
	for rows.Next() {
		var d types.Diagnostic
		var kind, severity, locations string
		if err := rows.Scan(&kind, &severity, &d.Citation, &d.RefKey, &d.Message, &locations); err != nil {
			return nil, fmt.Errorf("scanning diagnostic: %w", err)
		}
		d.Kind = types.DiagnosticKind(kind)
		d.Severity = types.Severity(severity)
		if locations != "" {
			if err := json.Unmarshal([]byte(locations), &d.Locations); err != nil {
				return nil, fmt.Errorf("decoding locations: %w", err)
			}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
