// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibfile reads and rewrites BibTeX database files the way the
// proceedings papers actually lay them out: one record per "@type{key,"
// header, with the type, brace and key sometimes spread over several lines.
package bibfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/refcheck/pkg/types"
)

// DefaultEntryTypes returns the BibTeX entry types the standard styles know.
func DefaultEntryTypes() []string {
	return []string{
		"article", "book", "booklet", "conference", "inbook",
		"incollection", "inproceedings", "manual", "mastersthesis",
		"misc", "phdthesis", "proceedings", "techreport", "unpublished",
	}
}

// specialTypes are BibTeX commands written like records but carrying no key.
var specialTypes = map[string]bool{
	"comment":  true,
	"string":   true,
	"preamble": true,
}

// Parse is the result of scanning one database file.
type Parse struct {
	// Records lists every record in file order, including those whose key
	// could not be isolated (Key == "").
	Records []types.BibRecord

	Diagnostics types.Diagnostics
}

// Keys returns the keys of all records with a usable key, in file order.
// Duplicates are preserved.
func (p Parse) Keys() []string {
	keys := make([]string, 0, len(p.Records))
	for _, r := range p.Records {
		if r.Key != "" {
			keys = append(keys, r.Key)
		}
	}
	return keys
}

// Parser scans database files against a fixed set of expected entry types.
type Parser struct {
	entryTypes map[string]bool
}

// NewParser returns a parser that warns about entry types not in entryTypes.
// A nil or empty list selects DefaultEntryTypes.
func NewParser(entryTypes []string) *Parser {
	if len(entryTypes) == 0 {
		entryTypes = DefaultEntryTypes()
	}
	m := make(map[string]bool, len(entryTypes))
	for _, t := range entryTypes {
		m[strings.ToLower(t)] = true
	}
	return &Parser{entryTypes: m}
}

// Parse scans r line by line and returns its records.
func (p *Parser) Parse(r io.Reader) (Parse, error) {
	rs := newRecordScanner(p.entryTypes)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		rs.step(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Parse{}, fmt.Errorf("reading database: %w", err)
	}
	return Parse{Records: rs.records, Diagnostics: rs.diags}, nil
}

// ParseRecords scans r with the default entry types.
func ParseRecords(r io.Reader) (Parse, error) {
	return NewParser(nil).Parse(r)
}

// ReadRecords opens path and scans it with the default entry types.
func ReadRecords(path string) (Parse, error) {
	f, err := os.Open(path)
	if err != nil {
		return Parse{}, err
	}
	defer f.Close()
	return ParseRecords(f)
}

// scanState is what the record scanner is waiting for next.
type scanState int

const (
	needMarker scanState = iota
	needOpenBrace
	needComma
)

// recordScanner is the per-line state machine shared by key extraction and
// trimming. It tracks two things at once: where the current record's key
// is in the header, and where the record ends by brace balance.
type recordScanner struct {
	entryTypes map[string]bool

	state   scanState
	partial string // key text seen on a previous line without its terminator

	line  int
	cur   int // index of the record being bounded, -1 outside any record
	depth int
	seen  bool // an opening brace has been seen for the current record

	records []types.BibRecord
	diags   types.Diagnostics
}

func newRecordScanner(entryTypes map[string]bool) *recordScanner {
	return &recordScanner{entryTypes: entryTypes, cur: -1}
}

// step advances the machine by one physical line. A line whose first
// non-blank character is '@' always starts a new record, whatever state the
// previous one was left in.
func (s *recordScanner) step(line string) {
	s.line++
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "@") {
		s.begin()
		rest := trimmed[1:]
		if i := strings.IndexByte(rest, '{'); i >= 0 {
			s.state = needComma
			s.setType(strings.TrimSpace(rest[:i]))
			s.takeKey(rest[i+1:])
		} else {
			s.state = needOpenBrace
			if t := strings.TrimSpace(rest); t != "" {
				s.setType(t)
			}
		}
		s.bound(trimmed)
		return
	}

	if s.cur < 0 {
		return
	}

	switch s.state {
	case needOpenBrace:
		if i := strings.IndexByte(trimmed, '{'); i >= 0 {
			s.state = needComma
			if s.records[s.cur].Type == "" {
				s.setType(strings.TrimSpace(trimmed[:i]))
			}
			s.takeKey(trimmed[i+1:])
		}
	case needComma:
		s.takeKey(trimmed)
	}
	s.bound(trimmed)
}

// begin opens a new record at the current line.
func (s *recordScanner) begin() {
	s.records = append(s.records, types.BibRecord{StartLine: s.line, EndLine: s.line})
	s.cur = len(s.records) - 1
	s.depth = 0
	s.seen = false
	s.partial = ""
	s.state = needMarker
}

func (s *recordScanner) setType(t string) {
	s.records[s.cur].Type = t
	lower := strings.ToLower(t)
	if specialTypes[lower] {
		s.state = needMarker
		return
	}
	if !s.entryTypes[lower] {
		s.diags.Warning("Unexpected .bib file entry '%s' - will default to 'MISC'", t)
	}
}

// takeKey looks for the key and its terminating comma in text.
func (s *recordScanner) takeKey(text string) {
	if s.state != needComma {
		return
	}
	text = strings.TrimSpace(text)
	i := strings.IndexAny(text, ",}")
	if i < 0 {
		s.partial += text
		return
	}
	key := strings.TrimSpace(s.partial + text[:i])
	s.partial = ""
	s.state = needMarker
	if validKey(key) {
		s.records[s.cur].Key = key
	}
}

// bound updates the brace balance and closes the record once it returns
// to zero after having opened.
func (s *recordScanner) bound(text string) {
	if s.cur < 0 {
		return
	}
	s.records[s.cur].EndLine = s.line
	delta, opens := braceDelta(text)
	s.depth += delta
	if opens {
		s.seen = true
	}
	if s.seen && s.depth <= 0 {
		s.cur = -1
		s.state = needMarker
		s.partial = ""
	}
}

// validKey rejects text that is really a field assignment or is empty.
func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, "= \t\"{}")
}

// braceDelta returns the count of '{' minus '}' in text, ignoring escaped
// braces, and whether text holds any opening brace at all.
func braceDelta(text string) (int, bool) {
	n, opens := 0, false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '{':
			n++
			opens = true
		case '}':
			n--
		}
	}
	return n, opens
}
