// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package texscan

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, src string) []Command {
	t.Helper()
	var cmds []Command
	require.NoError(t, Scan(strings.NewReader(src), func(c Command) {
		cmds = append(cmds, c)
	}))
	return cmds
}

func TestScannerArguments(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantName string
		wantArgs []string
	}{
		{
			name:     "single brace argument",
			src:      `See \citep{Smith2020} for details.`,
			wantName: "citep",
			wantArgs: []string{"{Smith2020}"},
		},
		{
			name:     "optional and mandatory arguments",
			src:      `\citep[see][p.~3]{a,b}`,
			wantName: "citep",
			wantArgs: []string{"[see]", "[p.~3]", "{a,b}"},
		},
		{
			name:     "starred command",
			src:      `\citet*{Jones}`,
			wantName: "citet*",
			wantArgs: []string{"{Jones}"},
		},
		{
			name:     "nested braces kept in one group",
			src:      `\markboth{A {and} B}{Title}`,
			wantName: "markboth",
			wantArgs: []string{"{A {and} B}", "{Title}"},
		},
		{
			name:     "argument on the following line",
			src:      "\\bibitem\n{key}",
			wantName: "bibitem",
			wantArgs: []string{"{key}"},
		},
		{
			name:     "blank line ends arguments",
			src:      "\\bibitem\n\n{key}",
			wantName: "bibitem",
			wantArgs: nil,
		},
		{
			name:     "escaped brace does not close group",
			src:      `\title{a \} b}`,
			wantName: "title",
			wantArgs: []string{`{a \} b}`},
		},
		{
			name:     "no arguments",
			src:      `\maketitle text`,
			wantName: "maketitle",
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := collect(t, tt.src)
			require.NotEmpty(t, cmds)
			assert.Equal(t, tt.wantName, cmds[0].Name)
			assert.Equal(t, tt.wantArgs, cmds[0].Args)
		})
	}
}

func TestScannerNestedCommands(t *testing.T) {
	cmds := collect(t, `\footnote{see \citet{X} and \citep{Y}}`)
	var names []string
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"footnote", "citet", "citep"}, names)
	assert.Equal(t, []string{"{X}"}, cmds[1].Args)
}

func TestScannerComments(t *testing.T) {
	src := "% \\citep{Hidden}\n\\citep{Shown} % \\citet{AlsoHidden}\n50\\% of \\cite{Real}\n"
	cmds := collect(t, src)

	var names []string
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"citep", "%", "cite"}, names)
	assert.Equal(t, 2, cmds[0].Line)
	assert.Equal(t, 3, cmds[2].Line)
}

func TestScannerControlSymbols(t *testing.T) {
	cmds := collect(t, `A. Author\\*B. Other\ \'{E}mile`)
	require.Len(t, cmds, 3)
	assert.Equal(t, `\`, cmds[0].Name)
	assert.Equal(t, " ", cmds[1].Name)
	assert.Equal(t, "'", cmds[2].Name)
	assert.Equal(t, []string{"{E}"}, cmds[2].Args)
}

func TestNextEOF(t *testing.T) {
	sc, err := NewScanner(strings.NewReader("plain text only"))
	require.NoError(t, err)
	_, err = sc.Next()
	assert.Equal(t, io.EOF, err)
}

func TestCommandHelpers(t *testing.T) {
	c := Command{Name: "citep", Args: []string{"[e.g.]", "{a, b}", "{c}"}}

	arg, ok := c.FirstBraceArg()
	assert.True(t, ok)
	assert.Equal(t, "a, b", arg)
	assert.Equal(t, []string{"{a, b}", "{c}"}, c.BraceArgs())
	assert.Equal(t, `\citep [e.g.] {a, b} {c}`, c.String())

	_, ok = Command{Name: "cite", Args: []string{"[x]"}}.FirstBraceArg()
	assert.False(t, ok)
}
