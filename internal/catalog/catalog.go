// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists kept bibliography records in a SQLite database so
// runs across many files can be listed, searched, and exported.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibnorm/pkg/types"
)

// DefaultPath is the catalog database file used when none is configured.
const DefaultPath = "bibnorm.db"

// Store manages the catalog SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the catalog database at path and ensures the
// schema exists.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			derived_key TEXT NOT NULL,
			orig_key TEXT,
			title TEXT,
			author TEXT,
			year TEXT,
			entry_type TEXT,
			source_file TEXT,
			run_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_derived_key ON records(derived_key)`,
		`CREATE INDEX IF NOT EXISTS idx_records_title ON records(title)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Ingest records the kept entries of one formatting run. Entries from a
// previous run over the same source file are replaced.
func (s *Store) Ingest(ctx context.Context, sourceFile string, entries []types.CatalogEntry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM records WHERE source_file = ?`, sourceFile); err != nil {
		return 0, fmt.Errorf("clearing previous run for %s: %w", sourceFile, err)
	}

	runAt := time.Now().UTC().Format(time.RFC3339)
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (derived_key, orig_key, title, author, year, entry_type, source_file, run_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.DerivedKey, e.OrigKey, e.Title, e.Author, e.Year, e.EntryType, sourceFile, runAt); err != nil {
			return 0, fmt.Errorf("inserting %s: %w", e.DerivedKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(entries), nil
}

// List returns catalog entries, most recent run first, up to limit
// (0 = no limit).
func (s *Store) List(ctx context.Context, limit int) ([]types.CatalogEntry, error) {
	query := `SELECT derived_key, orig_key, title, author, year, entry_type, source_file, run_at
		FROM records ORDER BY run_at DESC, rowid ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryEntries(ctx, query, args...)
}

// Search returns entries whose title, author, or derived key contains term,
// case-insensitively, up to limit (0 = no limit).
func (s *Store) Search(ctx context.Context, term string, limit int) ([]types.CatalogEntry, error) {
	pattern := "%" + term + "%"
	query := `SELECT derived_key, orig_key, title, author, year, entry_type, source_file, run_at
		FROM records
		WHERE title LIKE ? OR author LIKE ? OR derived_key LIKE ?
		ORDER BY run_at DESC, rowid ASC`
	args := []any{pattern, pattern, pattern}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryEntries(ctx, query, args...)
}

// ExportYAML writes the full catalog to w as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := s.List(ctx, 0)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(entries)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]types.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var entries []types.CatalogEntry
	for rows.Next() {
		var e types.CatalogEntry
		if err := rows.Scan(&e.DerivedKey, &e.OrigKey, &e.Title, &e.Author,
			&e.Year, &e.EntryType, &e.SourceFile, &e.RunAt); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
