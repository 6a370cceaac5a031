// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Accent commands PlainName removes. Symbol accents are recognized braced or
// not; letter accents such as \c only in the braced form `\c{c}`.
const (
	symbolAccents = "`'^~\".="
	letterAccents = "covHkbdru"
)

var unbrace = strings.NewReplacer("{", "", "}", "", `\`, "")

// PlainName strips LaTeX accent commands from a name, keeping the accented
// letter. An umlaut adds an 'e', so `M\"{u}ller` becomes "Mueller". Anything
// after a comma, normally the initials of an index entry, is dropped.
func PlainName(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		mark := s[i+1]
		symbol := strings.IndexByte(symbolAccents, mark) >= 0
		if !symbol && strings.IndexByte(letterAccents, mark) < 0 {
			b.WriteByte(s[i])
			continue
		}

		j := i + 2
		braced := j < len(s) && s[j] == '{'
		if braced {
			j++
		} else if !symbol {
			b.WriteByte(s[i])
			continue
		}
		if j >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		r, size := utf8.DecodeRuneInString(s[j:])
		end := j + size
		if braced {
			if end >= len(s) || s[end] != '}' {
				b.WriteByte(s[i])
				continue
			}
			end++
		}

		b.WriteRune(r)
		if mark == '"' {
			b.WriteByte('e')
		}
		i = end - 1
	}
	return b.String()
}

// SortKey returns the key the author index orders surnames by: the plain
// name with any remaining diacritics folded away, in lower case.
func SortKey(surname string) string {
	s := unbrace.Replace(PlainName(surname))
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	return strings.ToLower(strings.TrimSpace(s))
}
