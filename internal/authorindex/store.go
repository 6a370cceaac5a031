// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authorindex keeps the normalized author lists of every paper in
// the proceedings in one SQLite database, so the volume's author index can
// be generated from it.
package authorindex

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/refcheck/internal/authors"
	"github.com/pdiddy/refcheck/internal/logger"
	"github.com/pdiddy/refcheck/pkg/types"
)

const defaultDBFile = "authors.db"

// Store manages the author index SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the author index at cfg.Path, creating its
// directory and schema if needed.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultDBFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			tex_file TEXT,
			indexed_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			paper_id TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			surname TEXT NOT NULL,
			initials TEXT,
			suffix TEXT,
			entry TEXT NOT NULL,
			sort_key TEXT NOT NULL,
			PRIMARY KEY (paper_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_authors_sort_key ON authors(sort_key)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put replaces the author list stored for paperID. Records keep their order
// in the paper.
func (s *Store) Put(ctx context.Context, paperID, texFile string, records []types.AuthorRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM authors WHERE paper_id = ?`, paperID); err != nil {
		return fmt.Errorf("deleting old authors: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO papers (id, tex_file, indexed_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET tex_file=excluded.tex_file, indexed_at=excluded.indexed_at`,
		paperID, texFile, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting paper: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO authors (paper_id, position, surname, initials, suffix, entry, sort_key)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		_, err := stmt.ExecContext(ctx,
			paperID, i+1, rec.Surname, rec.InitialsString(), rec.Suffix,
			rec.String(), authors.SortKey(rec.Surname),
		)
		if err != nil {
			return fmt.Errorf("inserting author %s: %w", rec.String(), err)
		}
	}

	return tx.Commit()
}

// Remove deletes a paper and its authors. Removing an unknown paper is not
// an error.
func (s *Store) Remove(ctx context.Context, paperID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM papers WHERE id = ?`, paperID); err != nil {
		return fmt.Errorf("removing paper %s: %w", paperID, err)
	}
	return nil
}

// Source names one paper to index.
type Source struct {
	PaperID string
	TexFile string
}

// IndexSummary holds counts from an indexing run.
type IndexSummary struct {
	Indexed int
	Updated int
	Failed  int
}

// Total returns the number of papers processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Failed
}

// Index parses the author list of each source with p and stores it,
// writing one progress line per paper to w. A paper whose file is missing
// or that has no \author directive counts as failed; notes raised by the
// parser do not stop it being stored.
func (s *Store) Index(ctx context.Context, w io.Writer, p *authors.Parser, sources []Source) (IndexSummary, error) {
	var summary IndexSummary

	for _, src := range sources {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		res, recs, err := authors.GetAuthors(src.TexFile, p)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", src.PaperID, err)
			summary.Failed++
			continue
		}
		if len(recs) == 0 {
			reason := "no authors found"
			if ds := res.Diagnostics.Problems(); len(ds) > 0 {
				reason = ds[0].Text
			}
			fmt.Fprintf(w, "failed  %s: %s\n", src.PaperID, reason)
			summary.Failed++
			continue
		}
		logger.Debug("%s: %d author notes", src.PaperID, len(res.Diagnostics))

		exists, err := s.hasPaper(ctx, src.PaperID)
		if err != nil {
			return summary, err
		}
		if err := s.Put(ctx, src.PaperID, src.TexFile, recs); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", src.PaperID, err)
			summary.Failed++
			continue
		}

		if exists {
			fmt.Fprintf(w, "updated %s (%d authors)\n", src.PaperID, len(recs))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d authors)\n", src.PaperID, len(recs))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Failed)
	return summary, nil
}

func (s *Store) hasPaper(ctx context.Context, paperID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers WHERE id = ?`, paperID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("looking up paper %s: %w", paperID, err)
	}
	return n > 0, nil
}
