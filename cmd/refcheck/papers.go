// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/report"
	"github.com/pdiddy/refcheck/pkg/types"
)

// paperRef names one paper and the directory holding its files.
type paperRef struct {
	Dir  string
	Name string
}

// TexFile returns the paper's main .tex file.
func (p paperRef) TexFile() string {
	return filepath.Join(p.Dir, p.Name+".tex")
}

// resolvePaper turns a command argument into a paperRef. The argument may
// be a bare name ("O1-4"), a file name ("O1-4.tex") or a path; a directory
// in the argument is taken relative to dir.
func resolvePaper(dir, arg string) paperRef {
	if dir == "" {
		dir = "."
	}
	name := strings.TrimSuffix(filepath.Base(arg), ".tex")
	if d := filepath.Dir(arg); d != "." {
		if filepath.IsAbs(d) {
			dir = d
		} else {
			dir = filepath.Join(dir, d)
		}
	}
	return paperRef{Dir: dir, Name: name}
}

// papersFromArgs resolves every argument. With no arguments it takes every
// .tex file in dir.
func papersFromArgs(cmd *cobra.Command, args []string) ([]paperRef, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if len(args) > 0 {
		refs := make([]paperRef, len(args))
		for i, a := range args {
			refs[i] = resolvePaper(dir, a)
		}
		return refs, nil
	}

	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading paper directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".tex") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .tex files in %s: name the paper to check", dir)
	}
	sort.Strings(names)

	refs := make([]paperRef, len(names))
	for i, n := range names {
		refs[i] = resolvePaper(dir, n)
	}
	return refs, nil
}

func newRenderer(cmd *cobra.Command) *report.Renderer {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return report.NewRenderer(cmd.OutOrStdout(), noColor)
}

// checkFunc runs one check on one paper.
type checkFunc func(p paperRef) (types.CheckResult, error)

// runEach runs check on every paper, printing each result, and fails when
// any paper fails.
func runEach(cmd *cobra.Command, args []string, check checkFunc) error {
	papers, err := papersFromArgs(cmd, args)
	if err != nil {
		return err
	}
	r := newRenderer(cmd)

	failed := 0
	for i, p := range papers {
		res, err := check(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		if len(papers) > 1 {
			if i > 0 {
				fmt.Fprintln(r.W)
			}
			fmt.Fprintf(r.W, "%s\n", p.Name)
		}
		if err := r.Render(res); err != nil {
			return err
		}
		if !res.OK {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d paper(s) failed", failed)
	}
	return nil
}
