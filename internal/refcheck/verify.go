// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refcheck

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/refcheck/internal/bibfile"
	"github.com/pdiddy/refcheck/internal/citations"
	"github.com/pdiddy/refcheck/internal/logger"
	"github.com/pdiddy/refcheck/pkg/types"
)

// Options configures one run of VerifyRefs.
type Options struct {
	// Paper is the paper identifier, e.g. "O1-4". TexFile defaults to
	// <Dir>/<Paper>.tex.
	Paper string

	// Dir is the paper directory. Defaults to the directory of TexFile.
	Dir string

	TexFile string

	// BibFile names the database explicitly. When empty or missing, the
	// database is located in Dir.
	BibFile string

	// StandardBibFile is the shared conference database name tried first
	// when locating.
	StandardBibFile string

	AllowInline bool

	// Families and EntryTypes override the built-in tables when set.
	Families   *citations.Families
	EntryTypes []string
}

// Refs holds the key lists a verification run collected.
type Refs struct {
	BibFile string   `json:"bib_file,omitempty" yaml:"bib_file,omitempty"`
	DB      []string `json:"db,omitempty" yaml:"db,omitempty"`
	Cited   []string `json:"cited,omitempty" yaml:"cited,omitempty"`
	Inline  []string `json:"inline,omitempty" yaml:"inline,omitempty"`
}

// TexPath returns the .tex file the options select.
func (o Options) TexPath() string {
	if o.TexFile != "" {
		return o.TexFile
	}
	return filepath.Join(o.Dir, o.Paper+".tex")
}

// VerifyRefs checks that a paper's citations and its database agree. A
// missing .tex file fails the check with a single problem. The returned
// error is reserved for files that exist but cannot be read.
func VerifyRefs(opts Options) (types.CheckResult, Refs, error) {
	var refs Refs
	texPath := opts.TexPath()
	src, err := os.ReadFile(texPath)
	if os.IsNotExist(err) {
		return types.MissingSource("refs", "main .tex file", texPath), refs, nil
	}
	if err != nil {
		return types.CheckResult{}, refs, fmt.Errorf("reading %s: %w", texPath, err)
	}

	dir := opts.Dir
	if dir == "" {
		dir = filepath.Dir(texPath)
	}
	paper := opts.Paper
	if paper == "" {
		paper = strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	}

	res := types.CheckResult{Check: "refs", OK: true}

	refs.BibFile = opts.BibFile
	if refs.BibFile == "" || !fileExists(refs.BibFile) {
		var note string
		refs.BibFile, note = bibfile.Locate(dir, paper, opts.StandardBibFile)
		if note != "" {
			res.Diagnostics.Note("%s", note)
		}
	}
	logger.Debug("refs: tex file %s, bib file %q", texPath, refs.BibFile)

	if refs.BibFile != "" {
		p, err := readDatabase(refs.BibFile, opts.EntryTypes)
		if err != nil {
			return types.CheckResult{}, refs, err
		}
		res.Diagnostics.Append(p.Diagnostics)
		refs.DB = p.Keys()
		logger.Debug("refs: %d records, %d keys", len(p.Records), len(refs.DB))
	}

	ds, err := CheckDirectives(bytes.NewReader(src), refs.BibFile)
	if err != nil {
		return types.CheckResult{}, refs, err
	}
	res.Diagnostics.Append(ds)

	families := citations.DefaultFamilies()
	if opts.Families != nil {
		families = *opts.Families
	}
	cites, err := citations.Extract(bytes.NewReader(src), families)
	if err != nil {
		return types.CheckResult{}, refs, err
	}
	res.Diagnostics.Append(cites.Diagnostics)
	refs.Cited = cites.Cited
	refs.Inline = cites.Inline
	logger.Debug("refs: %d citations, %d \\bibitem entries", len(refs.Cited), len(refs.Inline))

	ok, ds := Reconcile(refs.DB, refs.Cited, refs.Inline, opts.AllowInline)
	res.Diagnostics.Append(ds)
	res.OK = ok && !res.Diagnostics.HasProblems()
	return res, refs, nil
}

func readDatabase(path string, entryTypes []string) (bibfile.Parse, error) {
	f, err := os.Open(path)
	if err != nil {
		return bibfile.Parse{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return bibfile.NewParser(entryTypes).Parse(f)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
