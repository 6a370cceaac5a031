// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package texscan breaks a LaTeX source into a stream of command invocations.
// It knows nothing about what any command means: each command surfaces as its
// name and the brace or bracket groups that immediately follow it.
package texscan

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Command is one command invocation found in the source.
type Command struct {
	// Name is the command name without the leading backslash, e.g. "citep"
	// or "bibitem". A control symbol such as `\\` has a one-character name.
	Name string

	// Args holds the argument groups verbatim, including their delimiters:
	// "{...}" for mandatory and "[...]" for optional arguments.
	Args []string

	// Line is the 1-based source line of the backslash.
	Line int
}

// Words returns the command name (with backslash) followed by its arguments.
func (c Command) Words() []string {
	words := make([]string, 0, len(c.Args)+1)
	words = append(words, `\`+c.Name)
	return append(words, c.Args...)
}

// String renders the command the way it is quoted in diagnostics.
func (c Command) String() string {
	return strings.Join(c.Words(), " ")
}

// FirstBraceArg returns the content of the first "{...}" argument with
// surrounding braces removed. ok is false when there is no brace argument.
func (c Command) FirstBraceArg() (string, bool) {
	for _, a := range c.Args {
		if strings.HasPrefix(a, "{") {
			return strings.Trim(a, "{}"), true
		}
	}
	return "", false
}

// BraceArgs returns the raw "{...}" arguments in order.
func (c Command) BraceArgs() []string {
	var out []string
	for _, a := range c.Args {
		if strings.HasPrefix(a, "{") {
			out = append(out, a)
		}
	}
	return out
}

// Scanner yields the commands of one source in order. Commands nested in
// the arguments of other commands are reported too, after their parent.
type Scanner struct {
	src  string
	pos  int
	line int
}

// NewScanner reads all of r and prepares it for scanning. Comments are
// removed before any command is reported.
func NewScanner(r io.Reader) (*Scanner, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return &Scanner{src: stripComments(string(data)), line: 1}, nil
}

// Next returns the next command, or io.EOF when the source is exhausted.
func (s *Scanner) Next() (Command, error) {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\n' {
			s.line++
			s.pos++
			continue
		}
		if c != '\\' {
			s.pos++
			continue
		}

		line := s.line
		s.pos++
		if s.pos >= len(s.src) {
			break
		}

		start := s.pos
		if isLetter(s.src[s.pos]) {
			for s.pos < len(s.src) && isLetter(s.src[s.pos]) {
				s.pos++
			}
			if s.pos < len(s.src) && s.src[s.pos] == '*' {
				s.pos++
			}
		} else {
			if s.src[s.pos] == '\n' {
				s.line++
			}
			s.pos++
		}

		return Command{
			Name: s.src[start:s.pos],
			Args: readArgs(s.src, s.pos),
			Line: line,
		}, nil
	}
	return Command{}, io.EOF
}

// Scan calls fn for every command in r, in source order.
func Scan(r io.Reader, fn func(Command)) error {
	sc, err := NewScanner(r)
	if err != nil {
		return err
	}
	for {
		cmd, err := sc.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fn(cmd)
	}
}

// ScanFile opens path and calls fn for every command in it.
func ScanFile(path string, fn func(Command)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Scan(f, fn)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// readArgs collects the argument groups starting at pos. Groups may be
// separated by blanks and at most one line break.
func readArgs(src string, pos int) []string {
	var args []string
	for {
		newlines := 0
		for pos < len(src) && (src[pos] == ' ' || src[pos] == '\t' || src[pos] == '\r' || src[pos] == '\n') {
			if src[pos] == '\n' {
				newlines++
			}
			pos++
		}
		if pos >= len(src) || newlines > 1 {
			return args
		}

		var end int
		switch src[pos] {
		case '{':
			end = groupEnd(src, pos, '}')
		case '[':
			end = groupEnd(src, pos, ']')
		default:
			return args
		}
		if end < 0 {
			// Unterminated: keep what there is and stop.
			return append(args, src[pos:])
		}
		args = append(args, src[pos:end+1])
		pos = end + 1
	}
}

// groupEnd returns the index of the delimiter closing the group opened at
// open, or -1. Braces nest in both kinds of group and escaped characters
// never count.
func groupEnd(src string, open int, closer byte) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if closer == '}' && depth == 0 {
				return i
			}
			if depth < 0 {
				return -1
			}
		case ']':
			if closer == ']' && depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stripComments removes every unescaped '%' and the rest of its line,
// keeping the line break so line numbers stay correct.
func stripComments(src string) string {
	if !strings.Contains(src, "%") {
		return src
	}
	lines := strings.SplitAfter(src, "\n")
	var b strings.Builder
	b.Grow(len(src))
	for _, line := range lines {
		if i := commentStart(line); i >= 0 {
			b.WriteString(line[:i])
			if strings.HasSuffix(line, "\n") {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

func commentStart(line string) int {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '%':
			return i
		}
	}
	return -1
}
