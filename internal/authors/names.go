// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/refcheck/pkg/types"
)

// Placeholders for `\~` and `\.`, which are accents and must survive the
// conversion of ties and periods to spaces.
var (
	protect = strings.NewReplacer(`\~`, "\x00", `\.`, "\x01")
	restore = strings.NewReplacer("\x00", `\~`, "\x01", `\.`)
)

// records turns each chunk into an AuthorRecord. The last word of a chunk is
// the surname; the words before it are reduced to initials.
func (t Tables) records(l list) (list, []types.AuthorRecord) {
	var out []types.AuthorRecord
	orderWarned := false
	count := len(l.chunks)

	for i, chunk := range l.chunks {
		names := strings.Fields(restore.Replace(ties.Replace(protect.Replace(chunk))))

		andExpected := i == count-1 && count > 1
		if len(names) > 0 && names[0] == "and" {
			names = names[1:]
			if !andExpected {
				l = l.note("Note: unexpected 'and' before last author")
			}
		} else if andExpected {
			l = l.note("Note: 'and' missing from last of multiple authors")
		}

		var iffy []string
		for _, name := range names {
			if contains(t.TeamWords, strings.ToLower(name)) {
				iffy = append(iffy, name)
			}
		}
		if len(iffy) > 0 {
			l = l.note("The following may not be real names: %s", strings.Join(iffy, ", "))
		}

		if len(names) == 0 {
			continue
		}

		var rec types.AuthorRecord
		l, rec = t.record(l, names, &orderWarned)
		out = append(out, rec)
	}
	return l, out
}

func (t Tables) record(l list, names []string, orderWarned *bool) (list, types.AuthorRecord) {
	var rec types.AuthorRecord
	n := len(names)

	if n > 1 {
		last := names[n-1]
		if s, ok := t.Suffixes[strings.ToLower(last)]; ok {
			rec.Suffix = s
		} else if contains(t.Numerals, last) {
			rec.Suffix = last
		}
		if rec.Suffix != "" {
			n--
		}
	}

	surname := names[n-1]
	l = checkCase(l, surname)
	n--

	compound := false
	for n > 0 && contains(t.Particles, strings.ToLower(names[n-1])) {
		surname = names[n-1] + " " + surname
		n--
		compound = true
	}
	if compound {
		l = l.note("%s assumed to be a surname", surname)
	}
	rec.Surname = surname
	forenames := names[:n]

	if n > 1 && letterCount(forenames[n-1]) > 1 {
		l = l.note("Might '%s %s' be a surname?", forenames[n-1], surname)
	}

	if utf8.RuneCountInString(surname) == 1 && n > 0 && utf8.RuneCountInString(forenames[0]) > 1 {
		if !*orderWarned {
			l = l.note("Names should end with the surname")
			*orderWarned = true
		}
		l = l.note("Might %s %s have been given surname first?", forenames[0], surname)
	}

	for _, f := range forenames {
		var ins []types.Initial
		l, ins = initials(l, f)
		rec.Initials = append(rec.Initials, ins...)
	}

	if len(rec.Initials) == 0 {
		if utf8.RuneCountInString(surname) == 1 {
			l = l.note("Might %s be a misplaced initial?", surname)
		} else {
			l = l.note("%s seems to be just a surname", surname)
		}
	}
	return l, rec
}

// checkCase notes surnames whose capitalization looks wrong. Capitals after
// a hyphen, an apostrophe or a Mac/Mc prefix are expected.
func checkCase(l list, surname string) list {
	plain := []rune(PlainName(surname))
	if len(plain) == 0 {
		return l
	}
	if unicode.IsLower(plain[0]) {
		l = l.note("Surname '%s' starts in lower case", surname)
	}
	for i := 1; i < len(plain); i++ {
		if !unicode.IsUpper(plain[i]) {
			continue
		}
		prev, before := plain[i-1], string(plain[:i])
		if prev == '-' || prev == '\'' || before == "Mac" || before == "Mc" {
			continue
		}
		l = l.note("Surname '%s' contains upper case characters", surname)
		break
	}
	return l
}

// initials reduces one forename to its initials. "Jean-Luc" and "J.-L."
// both give J followed by a hyphenated L.
func initials(l list, forename string) (list, []types.Initial) {
	if strings.HasPrefix(forename, "-") {
		letter, ok, l := initialAt(l, forename, 1)
		if !ok {
			return l, nil
		}
		return l, []types.Initial{{Letter: letter, Hyphenated: true}}
	}

	letter, ok, l := initialAt(l, forename, 0)
	if !ok {
		return l, nil
	}
	out := []types.Initial{{Letter: letter}}
	if dash := strings.IndexByte(forename, '-'); dash > 0 {
		if letter, ok, l2 := initialAt(l, forename, dash+1); ok {
			l = l2
			out = append(out, types.Initial{Letter: letter, Hyphenated: true})
		}
	}
	return l, out
}

// initialAt returns the initial starting at byte i of forename: a single
// letter, or an accent directive of the form `\c{x}`.
func initialAt(l list, forename string, i int) (string, bool, list) {
	if i >= len(forename) {
		return "", false, l
	}
	if forename[i] == '\\' {
		if len(forename) > i+4 && forename[i+2] == '{' && forename[i+4] == '}' {
			if unicode.IsLower(rune(forename[i+3])) {
				l = l.note("Initial letter in '%s' is in lower case", forename)
			}
			return forename[i : i+5], true, l
		}
		return "?", true, l.note("Unexpected control sequence for initial in %s", forename)
	}

	r, _ := utf8.DecodeRuneInString(forename[i:])
	if unicode.IsLower(r) {
		l = l.note("Initial letter in '%s' is in lower case", forename)
	}
	return string(r), true, l
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
