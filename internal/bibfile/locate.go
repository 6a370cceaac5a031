// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Locate finds the database file for paper in dir. It tries the shared
// conference file first, then <paper>.bib, then any .bib file in dir (the
// first in name order). It returns the path and a note describing the
// choice, or two empty strings when there is no database at all.
func Locate(dir, paper, standard string) (string, string) {
	if standard != "" {
		p := filepath.Join(dir, standard)
		if fileExists(p) {
			return p, "Using standard .bib file " + standard
		}
	}

	if paper != "" {
		name := paper + ".bib"
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p, "Using .bib file " + name + " (based on paper name)"
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", ""
	}
	var found []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".bib") {
			found = append(found, e.Name())
		}
	}
	if len(found) == 0 {
		return "", ""
	}
	sort.Strings(found)

	note := "Using .bib file " + found[0]
	if len(found) > 1 {
		note += fmt.Sprintf(" (first of %d .bib files found)", len(found))
	}
	return filepath.Join(dir, found[0]), note
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
