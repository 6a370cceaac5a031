// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authorindex

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/refcheck/internal/authors"
)

// Query filters the entries returned by List. Zero values match everything.
type Query struct {
	// PaperID restricts the result to one paper, in author order.
	PaperID string

	// Surname matches entries whose sort key starts with the folded surname.
	Surname string

	// Limit caps the number of entries; zero means no limit.
	Limit int
}

// Entry is one stored author of one paper.
type Entry struct {
	PaperID  string `json:"paper_id" yaml:"paper_id"`
	Position int    `json:"position" yaml:"position"`
	Surname  string `json:"surname" yaml:"surname"`
	Initials string `json:"initials,omitempty" yaml:"initials,omitempty"`
	Suffix   string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Entry    string `json:"entry" yaml:"entry"`
	SortKey  string `json:"sort_key" yaml:"sort_key"`
}

// List returns the matching entries. A query for one paper keeps the
// paper's author order; otherwise entries are ordered by sort key.
func (s *Store) List(ctx context.Context, q Query) ([]Entry, error) {
	var qb strings.Builder
	var args []any

	qb.WriteString(`SELECT paper_id, position, surname, initials, suffix, entry, sort_key
		FROM authors WHERE 1=1`)

	if q.PaperID != "" {
		qb.WriteString(` AND paper_id = ?`)
		args = append(args, q.PaperID)
	}
	if q.Surname != "" {
		qb.WriteString(` AND sort_key LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(authors.SortKey(q.Surname))+"%")
	}

	if q.PaperID != "" {
		qb.WriteString(` ORDER BY position`)
	} else {
		qb.WriteString(` ORDER BY sort_key, entry, paper_id, position`)
	}

	if q.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying author index: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PaperID, &e.Position, &e.Surname, &e.Initials, &e.Suffix, &e.Entry, &e.SortKey); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Papers returns the indexed paper IDs in name order.
func (s *Store) Papers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM papers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
