// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authorindex

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/refcheck/internal/authors"
	"github.com/pdiddy/refcheck/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(types.IndexConfig{Path: filepath.Join(dir, "index", "authors.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func rec(surname string, initials ...string) types.AuthorRecord {
	r := types.AuthorRecord{Surname: surname}
	for _, in := range initials {
		r.Initials = append(r.Initials, types.Initial{Letter: in})
	}
	return r
}

func entries(es []Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Entry
	}
	return out
}

// --- tests ---

func TestNewStoreCreatesDirectory(t *testing.T) {
	store, dir := testStore(t)
	assert.Equal(t, filepath.Join(dir, "index", "authors.db"), store.Path())
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestPutAndList(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "O1-4", "O1-4.tex", []types.AuthorRecord{
		rec("Shortridge", "K"), rec("Molinaro", "M"),
	}))
	require.NoError(t, store.Put(ctx, "P2-7", "P2-7.tex", []types.AuthorRecord{
		rec(`M\"{u}ller`, "H"), rec("Adams", "J", "Q"),
	}))

	all, err := store.List(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Adams,~J.~Q.", "Molinaro,~M.", `M\"{u}ller,~H.`, "Shortridge,~K.",
	}, entries(all))
	assert.Equal(t, "mueller", all[2].SortKey)
	assert.Equal(t, "~H.", all[2].Initials)

	paper, err := store.List(ctx, Query{PaperID: "O1-4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Shortridge,~K.", "Molinaro,~M."}, entries(paper))
	assert.Equal(t, 1, paper[0].Position)

	byName, err := store.List(ctx, Query{Surname: "Mu"})
	require.NoError(t, err)
	assert.Equal(t, []string{`M\"{u}ller,~H.`}, entries(byName))

	limited, err := store.List(ctx, Query{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestPutReplaces(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "O1-4", "O1-4.tex", []types.AuthorRecord{rec("Smith", "A"), rec("Jones", "B")}))
	require.NoError(t, store.Put(ctx, "O1-4", "O1-4.tex", []types.AuthorRecord{rec("Brown", "C")}))

	got, err := store.List(ctx, Query{PaperID: "O1-4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Brown,~C."}, entries(got))

	ids, err := store.Papers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"O1-4"}, ids)
}

func TestRemove(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "O1-4", "O1-4.tex", []types.AuthorRecord{rec("Smith", "A")}))
	require.NoError(t, store.Remove(ctx, "O1-4"))
	require.NoError(t, store.Remove(ctx, "unknown"))

	got, err := store.List(ctx, Query{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListEscapesLike(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "O1-4", "O1-4.tex", []types.AuthorRecord{rec("Smith", "A")}))

	got, err := store.List(ctx, Query{Surname: "%"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteAindex(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "O1-4", "O1-4.tex", []types.AuthorRecord{
		rec("Smith", "A"), {Surname: "King", Initials: []types.Initial{{Letter: "M"}, {Letter: "L"}}, Suffix: "Jr."},
	}))

	var buf bytes.Buffer
	require.NoError(t, store.WriteAindex(ctx, &buf, Query{PaperID: "O1-4"}))
	assert.Equal(t, "\\aindex{Smith,~A.}\n\\aindex{King,~M.~L.,~Jr.}\n", buf.String())
}

func TestExportYAML(t *testing.T) {
	store, dir := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "P2-7", "P2-7.tex", []types.AuthorRecord{rec("Jones", "B")}))
	require.NoError(t, store.Put(ctx, "O1-4", "O1-4.tex", []types.AuthorRecord{rec("Smith", "A"), rec("Adams", "C")}))

	path := filepath.Join(dir, "authors.yaml")
	require.NoError(t, store.ExportYAML(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var papers []ExportPaper
	require.NoError(t, yaml.Unmarshal(data, &papers))

	require.Len(t, papers, 2)
	assert.Equal(t, "O1-4", papers[0].ID)
	assert.Equal(t, []string{"Smith,~A.", "Adams,~C."}, papers[0].Authors)
	assert.Equal(t, "P2-7.tex", papers[1].TexFile)
	assert.NotEmpty(t, papers[1].Indexed)
}

func TestIndex(t *testing.T) {
	store, dir := testStore(t)
	ctx := context.Background()

	good := filepath.Join(dir, "O1-4.tex")
	require.NoError(t, os.WriteFile(good, []byte("\\author{K.~Shortridge and M.~Molinaro\n\\affil{AAO}}\n"), 0o644))
	bare := filepath.Join(dir, "P2-7.tex")
	require.NoError(t, os.WriteFile(bare, []byte("\\title{No authors}\n"), 0o644))

	sources := []Source{
		{PaperID: "O1-4", TexFile: good},
		{PaperID: "P2-7", TexFile: bare},
		{PaperID: "P3-1", TexFile: filepath.Join(dir, "P3-1.tex")},
	}
	p := authors.NewParser(authors.DefaultTables())

	var out bytes.Buffer
	summary, err := store.Index(ctx, &out, p, sources)
	require.NoError(t, err)
	assert.Equal(t, IndexSummary{Indexed: 1, Failed: 2}, summary)
	assert.Equal(t, 3, summary.Total())
	assert.Contains(t, out.String(), "indexing O1-4 (2 authors)")
	assert.Contains(t, out.String(), "failed  P2-7: no authors found")
	assert.Contains(t, out.String(), "failed  P3-1: Cannot find main .tex file")

	out.Reset()
	summary, err = store.Index(ctx, &out, p, sources[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	assert.True(t, strings.HasPrefix(out.String(), "updated O1-4 (2 authors)"))
}

func TestIndexCancelled(t *testing.T) {
	store, _ := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Index(ctx, &bytes.Buffer{}, authors.NewParser(authors.DefaultTables()),
		[]Source{{PaperID: "O1-4", TexFile: "O1-4.tex"}})
	assert.ErrorIs(t, err, context.Canceled)
}
