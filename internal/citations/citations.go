// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citations collects the reference keys a LaTeX paper cites with the
// natbib \cite family, and the keys it defines inline with \bibitem.
package citations

import (
	"io"
	"os"
	"strings"

	"github.com/pdiddy/refcheck/internal/texscan"
	"github.com/pdiddy/refcheck/pkg/types"
)

// Kind classifies a citation command.
type Kind int

const (
	// KindAllowed is one of the natbib variants such as \citep or \Citet.
	KindAllowed Kind = iota
	// KindLegacy is the bare \cite, which natbib discourages.
	KindLegacy
	// KindUnrecognized starts with "cite" but is not a known variant.
	KindUnrecognized
)

func (k Kind) String() string {
	switch k {
	case KindAllowed:
		return "allowed"
	case KindLegacy:
		return "legacy"
	case KindUnrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// Families lists the suffixes accepted after "cite" and after "Cite".
type Families struct {
	Lower []string
	Upper []string
}

// DefaultFamilies returns the natbib citation variants that take keys.
// \citetext is deliberately absent: it takes literal text.
func DefaultFamilies() Families {
	return Families{
		Lower: []string{"t", "p", "t*", "p*", "alt", "alt*", "alp", "alp*",
			"num", "author", "author*", "year", "yearpar", "fullauthor"},
		Upper: []string{"t", "p", "t*", "p*", "alt", "alt*", "alp", "alp*",
			"author", "author*"},
	}
}

// Directive is one citation command found in the source.
type Directive struct {
	// Command is the command as written, with backslash, e.g. `\citep`.
	Command string
	Kind    Kind
	Keys    []string
	Args    []string
	Line    int
}

// Result is everything one citation scan produced.
type Result struct {
	// Cited holds every key cited, in order, duplicates preserved.
	Cited []string

	// Inline holds every key defined by \bibitem, in order.
	Inline []string

	Directives  []Directive
	Diagnostics types.Diagnostics
}

const bibitem = "bibitem"

// Extractor accumulates citations from a command stream.
type Extractor struct {
	lower  map[string]bool
	upper  map[string]bool
	result Result
}

// NewExtractor returns an extractor accepting the variants in f.
func NewExtractor(f Families) *Extractor {
	return &Extractor{lower: toSet(f.Lower), upper: toSet(f.Upper)}
}

// Observe inspects one command and records any keys it carries.
func (e *Extractor) Observe(cmd texscan.Command) {
	if d, ok := e.classify(cmd); ok {
		e.result.Directives = append(e.result.Directives, d)
		switch d.Kind {
		case KindUnrecognized:
			e.result.Diagnostics.Note("Note: use of %s in .tex file", cmd)
			return
		case KindLegacy:
			arg, _ := cmd.FirstBraceArg()
			e.result.Diagnostics.Note(`Note use of \cite for reference '%s' in .tex file`, arg)
		}
		if len(d.Keys) == 0 {
			e.result.Diagnostics.Note("Note: no reference list in %s in .tex file", cmd)
			return
		}
		e.result.Cited = append(e.result.Cited, d.Keys...)
		return
	}

	if cmd.Name == bibitem {
		arg, _ := cmd.FirstBraceArg()
		key := strings.TrimSpace(arg)
		if key == "" {
			e.result.Diagnostics.Note("Note: no reference list in %s in .tex file", cmd)
			return
		}
		e.result.Inline = append(e.result.Inline, key)
	}
}

// Result returns what has been collected so far.
func (e *Extractor) Result() Result {
	return e.result
}

// classify reports whether cmd belongs to the citation family and, if so,
// how it is classified and which keys it carries.
func (e *Extractor) classify(cmd texscan.Command) (Directive, bool) {
	name := cmd.Name
	if len(name) < 4 || !strings.EqualFold(name[:4], "cite") {
		return Directive{}, false
	}

	d := Directive{Command: `\` + name, Args: cmd.Args, Line: cmd.Line}
	suffix := name[4:]
	switch {
	case name[0] == 'c' && suffix == "":
		d.Kind = KindLegacy
	case name[0] == 'c' && e.lower[suffix]:
		d.Kind = KindAllowed
	case name[0] != 'c' && suffix != "" && e.upper[suffix]:
		d.Kind = KindAllowed
	default:
		d.Kind = KindUnrecognized
		return d, true
	}

	if arg, ok := cmd.FirstBraceArg(); ok {
		d.Keys = SplitKeys(arg)
	}
	return d, true
}

// Classify classifies cmd against the default families.
func Classify(cmd texscan.Command) (Directive, bool) {
	return NewExtractor(DefaultFamilies()).classify(cmd)
}

// SplitKeys splits a comma-separated key list, trimming blanks and
// dropping empty entries.
func SplitKeys(arg string) []string {
	var keys []string
	for _, k := range strings.Split(arg, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Extract scans r and returns its citations and inline bibliography keys.
func Extract(r io.Reader, f Families) (Result, error) {
	e := NewExtractor(f)
	if err := texscan.Scan(r, e.Observe); err != nil {
		return Result{}, err
	}
	return e.Result(), nil
}

// ExtractFile scans the file at path with Extract.
func ExtractFile(path string, f Families) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer file.Close()
	return Extract(file, f)
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}
