// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/refcheck/pkg/types"
)

// list is the value passed from one parsing stage to the next. Stages
// never modify the value they receive; each returns an updated copy.
type list struct {
	// raw is the author text as isolated from the \author argument, kept
	// for the closing note.
	raw string

	text   string
	chunks []string
	notes  types.Diagnostics
}

func (l list) note(format string, args ...any) list {
	notes := make(types.Diagnostics, len(l.notes), len(l.notes)+1)
	copy(notes, l.notes)
	notes.Note(format, args...)
	l.notes = notes
	return l
}

var (
	// andWord matches a separating "and" with its surrounding blanks or ties.
	andWord = regexp.MustCompile(`[\s~]+and[\s~]+`)

	lineBreaks = strings.NewReplacer(`\\*`, " ", `\\`, " ", `\ `, " ")
	ties       = strings.NewReplacer("~", " ", ".", " ")
)

// isolate keeps the author names from a raw \author argument: the text after
// the opening brace and before \affil, or before the closing brace when there
// is no \affil. Forced line breaks become spaces.
func isolate(arg string) (list, bool) {
	var l list
	arg = strings.TrimSpace(arg)
	if !strings.HasPrefix(arg, "{") {
		return l.note("Misformed author list"), false
	}

	end := strings.Index(arg, `\affil`)
	noAffil := end < 0
	if noAffil {
		end = strings.LastIndex(arg, "}")
	}
	if end <= 0 {
		return l.note("Misformed author list"), false
	}

	l.text = lineBreaks.Replace(arg[1:end])
	l.raw = strings.TrimSpace(l.text)
	if noAffil {
		l = l.note(`No \affil found in author list`)
	}
	return l, true
}

// expandAccents rewrites `\c c` as `\c{c}` for every accent marker, so the
// space inside the accent does not split a name.
func expandAccents(l list, accents string) list {
	s := l.text
	if !strings.Contains(s, `\`) {
		return l
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		if i+3 < len(s) && s[i+2] == ' ' && s[i+3] != ' ' && s[i+3] != '{' && strings.IndexByte(accents, s[i+1]) >= 0 {
			r, size := utf8.DecodeRuneInString(s[i+3:])
			b.WriteString(s[i : i+2])
			b.WriteByte('{')
			b.WriteRune(r)
			b.WriteByte('}')
			i += 2 + size
			continue
		}
		b.WriteString(s[i : i+2])
		i++
	}
	l.text = b.String()
	return l
}

// stripMath replaces each $...$ span, normally an affiliation superscript,
// with one space. A second span before the next comma suggests two names
// run together.
func stripMath(l list) list {
	s := strings.TrimSpace(l.text)
	var b strings.Builder
	b.Grow(len(s))

	inMath := false
	spans := 0
	lastEnd, openAt := 0, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '$' && inMath:
			inMath = false
			if spans > 0 && i < len(s)-1 {
				l = l.note("Possible missing comma near '%s'", strings.TrimSpace(s[lastEnd:openAt]))
			}
			spans++
			lastEnd = i + 1
		case c == '$':
			inMath = true
			openAt = i
			b.WriteByte(' ')
		case inMath:
		default:
			if c == ',' {
				spans = 0
			}
			b.WriteByte(c)
		}
	}
	l.text = b.String()
	return l
}

// splitChunks splits the list on commas. A two-name list joined only by
// "and" gets its comma first; a trailing comma is dropped with a note.
func splitChunks(l list) list {
	s := strings.TrimSpace(l.text)
	if !strings.Contains(s, ",") {
		if loc := andWord.FindStringIndex(s); loc != nil && loc[0] > 0 {
			s = s[:loc[0]] + "," + s[loc[0]:]
		}
	}
	if strings.HasSuffix(s, ",") {
		l = l.note("Extraneous comma at end of author list")
		s = strings.TrimSpace(strings.TrimSuffix(s, ","))
	}
	l.text = s
	l.chunks = strings.Split(s, ",")
	return l
}

// serialComma looks for "and" inside the last chunk, which means the comma
// before it was left out, and splits the chunk there.
func serialComma(l list) list {
	n := len(l.chunks)
	if n == 0 {
		return l
	}
	last := n - 1
	if strings.TrimSpace(l.chunks[last]) == "" && n > 1 {
		last = n - 2
	}

	words := strings.Fields(ties.Replace(l.chunks[last]))
	if len(words) == 0 || words[0] == "and" || !contains(words, "and") {
		return l
	}
	l = l.note("Note: '%s' may have a missing serial comma.", strings.TrimSpace(l.chunks[last]))

	fixed := andWord.ReplaceAllString(l.chunks[last], ", and ")
	chunks := make([]string, 0, n+1)
	chunks = append(chunks, l.chunks[:last]...)
	chunks = append(chunks, strings.Split(fixed, ",")...)
	chunks = append(chunks, l.chunks[last+1:]...)
	l.chunks = chunks
	return l
}

// finish appends the isolated author text when anything was noted, so the
// reader can see what the notes refer to.
func finish(l list) list {
	if len(l.notes) > 0 && l.raw != "" {
		return l.note("%s", l.raw)
	}
	return l
}
