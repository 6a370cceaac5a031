// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsolate(t *testing.T) {
	l, ok := isolate(`{A.~Smith\\* and B.~Jones\\ C.\ Brown \affil{X}}`)
	assert.True(t, ok)
	assert.Equal(t, `A.~Smith  and B.~Jones  C. Brown `, l.text)
	assert.Empty(t, l.notes)

	l, ok = isolate(`{A. Smith`)
	assert.False(t, ok)
	assert.Equal(t, []string{"Misformed author list"}, l.notes.Texts())
}

func TestExpandAccents(t *testing.T) {
	tests := []struct{ in, want string }{
		{`Gar\c cia`, `Gar\c{c}ia`},
		{`M\" uller and \' Etienne`, `M\"{u}ller and \'{E}tienne`},
		{`\c{c} unchanged`, `\c{c} unchanged`},
		{`\alpha and \c`, `\alpha and \c`},
	}
	for _, tt := range tests {
		l := expandAccents(list{text: tt.in}, DefaultTables().Accents)
		assert.Equal(t, tt.want, l.text)
	}
}

func TestStripMathLeavesInputUntouched(t *testing.T) {
	in := list{text: `A. Smith$^1$ B. Jones$^2$, C. Brown`}
	out := stripMath(in)

	assert.Equal(t, `A. Smith  B. Jones , C. Brown`, out.text)
	assert.Len(t, out.notes, 1)
	assert.Empty(t, in.notes)
	assert.Equal(t, `A. Smith$^1$ B. Jones$^2$, C. Brown`, in.text)
}

func TestSplitChunks(t *testing.T) {
	l := splitChunks(list{text: "A. Smith~and~B. Jones"})
	assert.Equal(t, []string{"A. Smith", "~and~B. Jones"}, l.chunks)

	l = splitChunks(list{text: "A. Smith, B. Jones, "})
	assert.Equal(t, []string{"A. Smith", " B. Jones"}, l.chunks)
	assert.Equal(t, []string{"Extraneous comma at end of author list"}, l.notes.Texts())
}

func TestSerialComma(t *testing.T) {
	l := serialComma(list{chunks: []string{"A. Smith", " B. Jones and C. Brown"}})
	assert.Equal(t, []string{"A. Smith", " B. Jones", " and C. Brown"}, l.chunks)
	assert.Len(t, l.notes, 1)

	l = serialComma(list{chunks: []string{"A. Smith", " and C. Brown"}})
	assert.Equal(t, []string{"A. Smith", " and C. Brown"}, l.chunks)
	assert.Empty(t, l.notes)
}
