// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authors turns the free-form \author{...} markup of a paper into
// normalized "Surname,~I.~J." records for the author index.
//
// Parsing is heuristic. Anything that looks odd is reported as a note for an
// editor to look at; nothing the parser finds is treated as a problem.
package authors

import (
	"os"

	"github.com/pdiddy/refcheck/internal/logger"
	"github.com/pdiddy/refcheck/internal/texscan"
	"github.com/pdiddy/refcheck/pkg/types"
)

// Parser parses author lists against a set of word tables.
type Parser struct {
	Tables Tables
}

// NewParser returns a parser using t.
func NewParser(t Tables) *Parser {
	return &Parser{Tables: t}
}

// ParseArgument parses the raw argument of an \author command, braces
// included.
func (p *Parser) ParseArgument(arg string) ([]types.AuthorRecord, types.Diagnostics) {
	l, ok := isolate(arg)
	if !ok {
		return nil, l.notes
	}
	return p.run(l)
}

// ParseList parses author text that has already been isolated from its
// \author command, e.g. "A.~B. Smith, C. Jones, and D. Brown".
func (p *Parser) ParseList(text string) ([]types.AuthorRecord, types.Diagnostics) {
	return p.run(list{raw: text, text: text})
}

func (p *Parser) run(l list) ([]types.AuthorRecord, types.Diagnostics) {
	l = expandAccents(l, p.Tables.Accents)
	l = stripMath(l)
	l = splitChunks(l)
	l = serialComma(l)
	l, recs := p.Tables.records(l)
	l = finish(l)
	return recs, l.notes
}

// GetAuthors scans the paper at path for \author commands and parses each.
// The result fails only when the file is missing; notes never fail it.
func GetAuthors(path string, p *Parser) (types.CheckResult, []types.AuthorRecord, error) {
	res := types.CheckResult{Check: "authors", OK: true}
	var recs []types.AuthorRecord
	found := 0

	err := texscan.ScanFile(path, func(cmd texscan.Command) {
		if cmd.Name != "author" {
			return
		}
		found++
		arg := ""
		if args := cmd.BraceArgs(); len(args) > 0 {
			arg = args[0]
		}
		r, ds := p.ParseArgument(arg)
		recs = append(recs, r...)
		res.Diagnostics.Append(ds)
	})
	if os.IsNotExist(err) {
		return types.MissingSource("authors", "main .tex file", path), nil, nil
	}
	if err != nil {
		return types.CheckResult{}, nil, err
	}

	if found == 0 {
		res.Diagnostics.Note(`No \author directive found in .tex file`)
	}
	logger.Debug("authors: %d \\author directives, %d authors in %s", found, len(recs), path)
	return res, recs, nil
}

// Entries renders records in index form, one string per author.
func Entries(recs []types.AuthorRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.String()
	}
	return out
}
