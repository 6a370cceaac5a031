// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package texcheck

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/pdiddy/refcheck/internal/fileutil"
	"github.com/pdiddy/refcheck/pkg/types"
)

// latexChars maps the accented Latin-1 letters to their LaTeX spelling.
// 0xd5 should be a capital O with a tilde, but in submitted papers it is
// almost always a mangled apostrophe.
var latexChars = map[rune]string{
	0xc0: "\\`{A}", 0xc1: `\'{A}`, 0xc2: `\^{A}`, 0xc3: `\~{A}`,
	0xc4: `\"{A}`, 0xc5: `\.{A}`,
	0xc7: `\c{C}`,
	0xc8: "\\`{E}", 0xc9: `\'{E}`, 0xca: `\^{E}`, 0xcb: `\~{E}`,
	0xcc: "\\`{I}", 0xcd: `\'{I}`, 0xce: `\^{I}`, 0xcf: `\~{I}`,
	0xd1: `\~{N}`,
	0xd2: "\\`{O}", 0xd3: `\'{O}`, 0xd4: `\^{O}`, 0xd5: "'",
	0xd6: `\"{O}`, 0xd8: `\o{O}`,
	0xd9: "\\`{U}", 0xda: `\'{U}`, 0xdb: `\^{U}`, 0xdc: `\"{U}`,
	0xdd: `\'{Y}`, 0xdf: `{\ss}`,
	0xe0: "\\`{a}", 0xe1: `\'{a}`, 0xe2: `\^{a}`, 0xe3: `\~{a}`,
	0xe4: `\"{a}`, 0xe5: `\.{a}`,
	0xe7: `\c{c}`,
	0xe8: "\\`{e}", 0xe9: `\'{e}`, 0xea: `\^{e}`, 0xeb: `\~{e}`,
	0xec: "\\`{i}", 0xed: `\'{i}`, 0xee: `\^{i}`, 0xef: `\~{i}`,
	0xf1: `\~{n}`,
	0xf2: "\\`{o}", 0xf3: `\'{o}`, 0xf4: `\^{o}`, 0xf5: `\~{o}`,
	0xf6: `\"{o}`, 0xf8: `\o{o}`,
	0xf9: "\\`{u}", 0xfa: `\'{u}`, 0xfb: `\^{u}`, 0xfc: `\"{u}`,
	0xfd: `\'{y}`, 0xff: `\"{y}`,
}

// Replacement returns the LaTeX spelling of r, if one is known.
func Replacement(r rune) (string, bool) {
	s, ok := latexChars[r]
	return s, ok
}

// printable reports whether r is printable ASCII or ASCII whitespace.
func printable(r rune) bool {
	switch {
	case r >= 0x20 && r < 0x7f:
		return true
	case r == '\t', r == '\n', r == '\r', r == '\v', r == '\f':
		return true
	}
	return false
}

// readText returns the file content as text. Files that are not valid UTF-8
// are taken to be ISO-8859-1, the usual encoding of older submissions.
func readText(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}
	if utf8.Valid(data) {
		return string(data), false, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", true, fmt.Errorf("decoding %s: %w", path, err)
	}
	return string(decoded), true, nil
}

// CheckCharacters reports every character in the paper at path that LaTeX
// will not print as written, one problem per character, naming the line and
// the replacement when one is known.
func CheckCharacters(path string) (types.CheckResult, error) {
	text, latin1, err := readText(path)
	if os.IsNotExist(err) {
		return types.MissingSource("chars", "main .tex file", path), nil
	}
	if err != nil {
		return types.CheckResult{}, err
	}

	res := types.CheckResult{Check: "chars", OK: true}
	if latin1 {
		res.Diagnostics.Note("%s is not UTF-8; read as ISO-8859-1", path)
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; sc.Scan(); line++ {
		for _, r := range sc.Text() {
			if printable(r) {
				continue
			}
			if repl, ok := latexChars[r]; ok {
				res.Diagnostics.Problem("Unprintable character (%#x) in .tex file at line %d should be replaced by %s", r, line, repl)
			} else {
				res.Diagnostics.Problem("Unexpected unprintable character (%#x) in .tex file at line %d", r, line)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return types.CheckResult{}, fmt.Errorf("reading %s: %w", path, err)
	}

	res.OK = !res.Diagnostics.HasProblems()
	return res, nil
}

// FixResult reports what FixCharacters changed.
type FixResult struct {
	// Replaced counts characters swapped for their LaTeX spelling.
	Replaced int

	// Unknown counts unprintable characters left in place.
	Unknown int

	// Backup is the saved original, empty when the file was not rewritten.
	Backup string
}

// FixCharacters rewrites the paper at path with every known unprintable
// character replaced by its LaTeX spelling. The original is kept with the
// backup suffix. A file that needed decoding from ISO-8859-1 is written back
// as UTF-8.
func FixCharacters(path string) (FixResult, error) {
	text, latin1, err := readText(path)
	if err != nil {
		return FixResult{}, err
	}

	var res FixResult
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if printable(r) {
			b.WriteRune(r)
			continue
		}
		if repl, ok := latexChars[r]; ok {
			b.WriteString(repl)
			res.Replaced++
			continue
		}
		b.WriteRune(r)
		res.Unknown++
	}

	changed := res.Replaced > 0 || (latin1 && res.Unknown > 0)
	backup, err := fileutil.Replace(path, b.String(), changed)
	if err != nil {
		return res, err
	}
	res.Backup = backup
	return res, nil
}
