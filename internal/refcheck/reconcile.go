// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refcheck cross-checks the keys defined in a paper's bibliographic
// database, the keys it cites and the keys it defines inline with \bibitem.
package refcheck

import (
	"strings"

	"github.com/pdiddy/refcheck/pkg/types"
)

// keySet answers exact and case-insensitive membership questions.
type keySet struct {
	exact map[string]bool
	fold  map[string]bool
}

func newKeySet(keys []string) keySet {
	s := keySet{exact: make(map[string]bool, len(keys)), fold: make(map[string]bool, len(keys))}
	for _, k := range keys {
		s.exact[k] = true
		s.fold[strings.ToLower(k)] = true
	}
	return s
}

// lookup reports whether k is present exactly, or only when case is ignored.
func (s keySet) lookup(k string) (exact, folded bool) {
	if s.exact[k] {
		return true, true
	}
	return false, s.fold[strings.ToLower(k)]
}

// Reconcile compares the three key namespaces of one paper. db holds the
// database keys, cited the keys cited in the text and inline the \bibitem
// keys. ok is false when any problem was found or a database key is unused.
// Reconcile has no side effects; calling it twice gives equal results.
func Reconcile(db, cited, inline []string, allowInline bool) (bool, types.Diagnostics) {
	var ds types.Diagnostics
	ok := true

	citedSet := newKeySet(cited)
	dbSet := newKeySet(db)
	inlineSet := newKeySet(inline)

	// Case mismatches already reported against a database key.
	mismatched := make(map[string]bool)

	if len(db) == 0 {
		ds.Note("No Bib file references supplied")
	}
	for _, k := range unique(db, func(k string) {
		ds.Warning("Bib file reference %s defined more than once in .bib file", k)
	}) {
		exact, folded := citedSet.lookup(k)
		switch {
		case exact:
		case folded:
			ds.Problem("Bib file reference %s used with different case in .tex file", k)
			mismatched[strings.ToLower(k)] = true
		default:
			ds.Warning("Bib file reference %s not used in .tex file", k)
			ok = false
		}
	}

	if len(inline) > 0 {
		ds.Note(`Note: .tex file has %d \bibitem directives`, len(inline))
		if !allowInline {
			ds.Problem(`\bibitem directives need to be replaced by a .bib file with BibTeX entries`)
		}
	}
	for _, k := range unique(inline, nil) {
		if !citedSet.exact[k] {
			ds.Problem(`\bibitem reference %s not used in .tex file`, k)
		}
	}

	if len(cited) == 0 {
		ds.Note("No citations found in tex file")
	}
	for _, k := range unique(cited, nil) {
		exact, folded := dbSet.lookup(k)
		asInline := false
		if !exact && !folded {
			exact, folded = inlineSet.lookup(k)
			asInline = folded
		}
		switch {
		case !folded:
			ds.Problem(".tex file reference %s undefined", k)
		case !exact && !mismatched[strings.ToLower(k)]:
			ds.Problem(".tex file reference %s defined but with different case", k)
		}
		if asInline && !allowInline {
			ds.Problem(`.tex file reference %s defined but as a \bibitem entry`, k)
		}
	}

	if ds.HasProblems() {
		ok = false
	}
	return ok, ds
}

// unique returns keys without repeats, in first-seen order. dup, when not
// nil, is called once for each key that occurs more than once.
func unique(keys []string, dup func(string)) []string {
	seen := make(map[string]int, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		seen[k]++
		switch seen[k] {
		case 1:
			out = append(out, k)
		case 2:
			if dup != nil {
				dup(k)
			}
		}
	}
	return out
}
