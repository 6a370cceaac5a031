// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authorindex

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// WriteAindex writes one \aindex{...} line per matching entry, the form the
// proceedings style turns into the volume's author index.
func (s *Store) WriteAindex(ctx context.Context, w io.Writer, q Query) error {
	entries, err := s.List(ctx, q)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "\\aindex{%s}\n", e.Entry); err != nil {
			return fmt.Errorf("writing index entry: %w", err)
		}
	}
	return nil
}

// ExportPaper is one paper in the YAML export.
type ExportPaper struct {
	ID      string   `json:"id" yaml:"id"`
	TexFile string   `json:"tex_file,omitempty" yaml:"tex_file,omitempty"`
	Indexed string   `json:"indexed_at,omitempty" yaml:"indexed_at,omitempty"`
	Authors []string `json:"authors" yaml:"authors"`
}

// ExportYAML writes every indexed paper with its author entries to path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	papers, err := s.exportPapers(ctx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(papers)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportPapers(ctx context.Context) ([]ExportPaper, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, tex_file, indexed_at FROM papers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	var papers []ExportPaper
	for rows.Next() {
		var p ExportPaper
		if err := rows.Scan(&p.ID, &p.TexFile, &p.Indexed); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		papers = append(papers, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range papers {
		entries, err := s.List(ctx, Query{PaperID: papers[i].ID})
		if err != nil {
			return nil, err
		}
		papers[i].Authors = make([]string, len(entries))
		for j, e := range entries {
			papers[i].Authors[j] = e.Entry
		}
	}
	return papers, nil
}
