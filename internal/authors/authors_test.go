// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/refcheck/pkg/types"
)

func parser() *Parser {
	return NewParser(DefaultTables())
}

func TestParseListWellFormed(t *testing.T) {
	recs, notes := parser().ParseList(`A.~B. Smith, C. Jones, and D.-E. Jones-Brown`)

	assert.Empty(t, notes)
	assert.Equal(t, []string{"Smith,~A.~B.", "Jones,~C.", "Jones-Brown,~D.-E."}, Entries(recs))
}

func TestParseListMissingSerialComma(t *testing.T) {
	recs, notes := parser().ParseList(`A. Smith, B. Jones and C. Brown`)

	var serial int
	for _, n := range notes {
		if strings.Contains(n.Text, "missing serial comma") {
			serial++
		}
	}
	assert.Equal(t, 1, serial)
	assert.Equal(t, "Note: 'B. Jones and C. Brown' may have a missing serial comma.", notes[0].Text)

	corrected, _ := parser().ParseList(`A. Smith, B. Jones, and C. Brown`)
	assert.Equal(t, corrected, recs)
	assert.Equal(t, []string{"Smith,~A.", "Jones,~B.", "Brown,~C."}, Entries(recs))
}

func TestParseListSurnameParticle(t *testing.T) {
	recs, notes := parser().ParseList(`A. van der Waals`)

	require.Len(t, recs, 1)
	assert.Equal(t, "van der Waals,~A.", recs[0].String())
	assert.Contains(t, notes.Texts(), "van der Waals assumed to be a surname")
	assert.Equal(t, "A. van der Waals", notes[len(notes)-1].Text, "raw list closes the notes")
}

func TestParseListRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "two authors joined by and",
			input: `K. Shortridge and M. Molinaro`,
			want:  []string{"Shortridge,~K.", "Molinaro,~M."},
		},
		{
			name:  "spelled forenames",
			input: `Keith Shortridge`,
			want:  []string{"Shortridge,~K."},
		},
		{
			name:  "hyphenated forename",
			input: `Jean-Luc Picard`,
			want:  []string{"Picard,~J.-L."},
		},
		{
			name:  "suffix",
			input: `M.~L. King Jr.`,
			want:  []string{"King,~M.~L.,~Jr."},
		},
		{
			name:  "numeral suffix",
			input: `J. Smith III`,
			want:  []string{"Smith,~J.,~III"},
		},
		{
			name:  "accented initial",
			input: `\'{E}. Zola`,
			want:  []string{`Zola,~\'{E}.`},
		},
		{
			name:  "spaced accent",
			input: `F. Gar\c cia`,
			want:  []string{`Gar\c{c}ia,~F.`},
		},
		{
			name:  "tilde accent kept",
			input: `J. Pe\~{n}a`,
			want:  []string{`Pe\~{n}a,~J.`},
		},
		{
			name:  "affiliation marks",
			input: `A. Smith$^{1,2}$, B. Jones$^2$, and C. Brown$^3$`,
			want:  []string{"Smith,~A.", "Jones,~B.", "Brown,~C."},
		},
		{
			name:  "Mac prefix",
			input: `D. MacDonald`,
			want:  []string{"MacDonald,~D."},
		},
		{
			name:  "apostrophe",
			input: `P. O'Brien`,
			want:  []string{"O'Brien,~P."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, notes := parser().ParseList(tt.input)
			assert.Equal(t, tt.want, Entries(recs))
			assert.Empty(t, notes.Texts())
		})
	}
}

func TestParseListNotes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"extraneous comma", `A. Smith, B. Jones,`, "Extraneous comma at end of author list"},
		{"unexpected and", `and A. Smith, B. Jones, and C. Brown`, "Note: unexpected 'and' before last author"},
		{"team credit", `A. Smith, and the Gaia team`, "The following may not be real names: the, team"},
		{"lower-case surname", `A. smith`, "Surname 'smith' starts in lower case"},
		{"upper case inside surname", `A. DeWitt`, "Surname 'DeWitt' contains upper case characters"},
		{"spanish surname", `Mario Vargas Llosa`, "Might 'Vargas Llosa' be a surname?"},
		{"surname first", `Smith A`, "Might Smith A have been given surname first?"},
		{"lone surname", `Smith`, "Smith seems to be just a surname"},
		{"lone initial", `A`, "Might A be a misplaced initial?"},
		{"lower-case initial", `a. Smith`, "Initial letter in 'a' is in lower case"},
		{"odd control sequence", `\alpha Smith`, `Unexpected control sequence for initial in \alpha`},
		{"math run together", `A. Smith$^1$ B. Jones$^2$, and C. Brown`, "Possible missing comma near 'B. Jones'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, notes := parser().ParseList(tt.input)
			assert.Contains(t, notes.Texts(), tt.want)
			for _, n := range notes {
				assert.Equal(t, types.SeverityNote, n.Severity)
			}
		})
	}
}

func TestSurnameFirstWarnsOnce(t *testing.T) {
	_, notes := parser().ParseList(`Smith A, Jones B, and Brown C`)
	var order int
	for _, n := range notes {
		if n.Text == "Names should end with the surname" {
			order++
		}
	}
	assert.Equal(t, 1, order)
}

func TestParseArgument(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		want      []string
		wantNotes []string
	}{
		{
			name: "with affiliations",
			arg:  `{A.~Smith$^1$ and B.~Jones$^2$\\ \affil{$^1$Somewhere}\affil{$^2$Elsewhere}}`,
			want: []string{"Smith,~A.", "Jones,~B."},
		},
		{
			name: "no affil",
			arg:  `{A. Smith}`,
			want: []string{"Smith,~A."},
			wantNotes: []string{
				`No \affil found in author list`,
				"A. Smith",
			},
		},
		{
			name:      "no brace",
			arg:       `A. Smith`,
			wantNotes: []string{"Misformed author list"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, notes := parser().ParseArgument(tt.arg)
			assert.Equal(t, tt.want, nilIfEmpty(Entries(recs)))
			assert.Equal(t, tt.wantNotes, nilIfEmpty(notes.Texts()))
		})
	}
}

func TestCustomTables(t *testing.T) {
	tables := DefaultTables().WithConfig(types.AuthorsConfig{Particles: []string{"del"}})
	recs, _ := NewParser(tables).ParseList(`J. del Rio`)
	assert.Equal(t, []string{"del Rio,~J."}, Entries(recs))

	recs, _ = NewParser(tables).ParseList(`J. van Dyk`)
	assert.Equal(t, []string{"Dyk,~J.~v."}, Entries(recs))
}

func TestGetAuthors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "O1-4.tex")
	src := "\\title{A Paper}\n\\author{K.~Shortridge$^1$ and M.~Molinaro$^2$\n\\affil{$^1$AAO}}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	res, recs, err := GetAuthors(path, parser())
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, []string{"Shortridge,~K.", "Molinaro,~M."}, Entries(recs))

	missing := filepath.Join(dir, "none.tex")
	res, recs, err = GetAuthors(missing, parser())
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Nil(t, recs)
	assert.Equal(t, []string{"Cannot find main .tex file: " + missing}, res.Diagnostics.Texts())
}

func TestPlainNameAndSortKey(t *testing.T) {
	tests := []struct {
		in    string
		plain string
		key   string
	}{
		{`M\"{u}ller`, "Mueller", "mueller"},
		{`M\"uller`, "Mueller", "mueller"},
		{`Gar\c{c}ia,~F.`, "Garcia", "garcia"},
		{`Pe\~{n}a`, "Pena", "pena"},
		{"Ångström", "Ångström", "angstrom"},
		{`{\o}ster`, `{\o}ster`, "oster"},
		{"van der Waals", "van der Waals", "van der waals"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.plain, PlainName(tt.in))
			assert.Equal(t, tt.key, SortKey(tt.in))
		})
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
