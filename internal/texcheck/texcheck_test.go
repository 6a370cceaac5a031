// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package texcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/refcheck/internal/fileutil"
)

func writeTex(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "O1-4.tex")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestCheckPackages(t *testing.T) {
	path := writeTex(t, []byte(`\documentclass{article}
\usepackage{asp2014}
\usepackage[final]{graphicx, url}
\usepackage{hyperref}
% \usepackage{tikz}
`))

	res, err := CheckPackages(path, nil)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, []string{
		"Note: " + path + " includes the following standard package(s): graphicx url; this is OK, but unnecessary",
		path + " includes the following non-standard package(s): hyperref; this may be a problem",
	}, res.Diagnostics.Texts())

	res, err = CheckPackages(path, []string{"graphicx", "url", "hyperref"})
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestCheckPackagesMissing(t *testing.T) {
	res, err := CheckPackages(filepath.Join(t.TempDir(), "none.tex"), nil)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Len(t, res.Diagnostics, 1)
}

func TestCheckRunningHeads(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		ok       bool
		problems []string
	}{
		{
			name: "good",
			src:  `\markboth{Shortridge and Molinaro}{Checking References}`,
			ok:   true,
		},
		{
			name:     "template",
			src:      `\markboth{Author1, Author2, and Author3}{Short Title}`,
			problems: []string{"Author list is unchanged from the template", "Paper title is unchanged from the template"},
		},
		{
			name:     "old template",
			src:      `\markboth{Smith}{Author's Final Checklist}`,
			problems: []string{"Paper title is unchanged from an out-of-date template"},
		},
		{
			name:     "blank title",
			src:      `\markboth{Smith}{ }`,
			problems: []string{"Paper title is blank"},
		},
		{
			name:     "same text",
			src:      `\markboth{Smith}{Smith}`,
			problems: []string{"Paper title is the same as the author list"},
		},
		{
			name:     "one argument",
			src:      `\markboth{Smith}`,
			problems: []string{`\markboth directive has wrong number of arguments`},
		},
		{
			name:     "two directives",
			src:      "\\markboth{A}{B}\n\\markboth{A}{B}\n",
			problems: []string{`Paper contains multiple \markboth directives`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CheckRunningHeads(writeTex(t, []byte(tt.src)))
			require.NoError(t, err)
			assert.Equal(t, tt.ok, res.OK)
			assert.Equal(t, tt.problems, nilIfEmpty(res.Diagnostics.Problems().Texts()))
		})
	}
}

func TestCheckRunningHeadsNotes(t *testing.T) {
	res, err := CheckRunningHeads(writeTex(t, []byte(`\markboth{Smith and Jones}{A Title}`)))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Author list for running header is 'Smith and Jones'",
		"Paper title for running header is 'A Title'",
	}, res.Diagnostics.Texts())
}

func TestCheckRunningHeadsAbsent(t *testing.T) {
	path := writeTex(t, []byte(`\title{No heads}`))
	res, err := CheckRunningHeads(path)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, []string{path + ` has no \markboth directive`}, res.Diagnostics.Texts())
}

func TestCheckCharacters(t *testing.T) {
	path := writeTex(t, []byte("plain line\n\\author{J. Garc\u00eda}\nen dash \u2013 here\n"))

	res, err := CheckCharacters(path)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, []string{
		`Unprintable character (0xed) in .tex file at line 2 should be replaced by \'{i}`,
		"Unexpected unprintable character (0x2013) in .tex file at line 3",
	}, res.Diagnostics.Texts())
}

func TestCheckCharactersLatin1(t *testing.T) {
	path := writeTex(t, []byte("caf\xe9\n"))

	res, err := CheckCharacters(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		path + " is not UTF-8; read as ISO-8859-1",
		`Unprintable character (0xe9) in .tex file at line 1 should be replaced by \'{e}`,
	}, res.Diagnostics.Texts())
}

func TestCheckCharactersClean(t *testing.T) {
	res, err := CheckCharacters(writeTex(t, []byte("all ascii\ttabs\n")))
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Empty(t, res.Diagnostics)
}

func TestFixCharacters(t *testing.T) {
	original := []byte("Fran\xe7ois M\xfcller\xd5s code\n")
	path := writeTex(t, original)

	res, err := FixCharacters(path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Replaced)
	assert.Zero(t, res.Unknown)
	assert.Equal(t, path+fileutil.BackupSuffix, res.Backup)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `Fran\c{c}ois M\"{u}ller's code`+"\n", string(got))

	old, err := os.ReadFile(res.Backup)
	require.NoError(t, err)
	assert.Equal(t, original, old)

	again, err := FixCharacters(path)
	require.NoError(t, err)
	assert.Zero(t, again.Replaced)
	assert.Empty(t, again.Backup)
}

func TestReplacement(t *testing.T) {
	r, ok := Replacement('\u00df')
	assert.True(t, ok)
	assert.Equal(t, `{\ss}`, r)

	_, ok = Replacement('\u2013')
	assert.False(t, ok)
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
