// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/authors"
	"github.com/pdiddy/refcheck/internal/citations"
	"github.com/pdiddy/refcheck/internal/refcheck"
	"github.com/pdiddy/refcheck/internal/report"
	"github.com/pdiddy/refcheck/internal/texcheck"
	"github.com/pdiddy/refcheck/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [paper...]",
	Short: "Run every check on one or more papers",
	Long: `Check runs refs, cite, authors, packages, heads and chars on each paper
named, or on every .tex file in --dir when none is named. Text output
prints each check in turn; --format yaml writes one report for the whole
batch, suitable for other tools.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	papers, err := papersFromArgs(cmd, args)
	if err != nil {
		return err
	}

	batch := report.Batch{Conference: cfg.Conference.Number}
	for _, p := range papers {
		results, err := checkPaper(cfg, p)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		batch.Papers = append(batch.Papers, report.NewPaperReport(p.Name, results))
	}

	if cfg.Output == types.OutputYAML {
		if err := report.WriteYAML(cmd.OutOrStdout(), batch); err != nil {
			return err
		}
	} else {
		r := newRenderer(cmd)
		for i, pr := range batch.Papers {
			if i > 0 {
				fmt.Fprintln(r.W)
			}
			fmt.Fprintf(r.W, "%s\n", pr.Paper)
			if err := r.RenderAll(pr.Results); err != nil {
				return err
			}
		}
	}

	if failed := batch.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d paper(s) failed: %v", len(failed), failed)
	}
	return nil
}

// checkPaper runs every check on p in a fixed order.
func checkPaper(cfg types.Config, p paperRef) ([]types.CheckResult, error) {
	tex := p.TexFile()
	var results []types.CheckResult

	refs, _, err := refcheck.VerifyRefs(refOptions(cfg, p, ""))
	if err != nil {
		return nil, err
	}
	results = append(results, refs)

	cite, err := citations.CheckCite(tex)
	if err != nil {
		return nil, err
	}
	results = append(results, cite)

	auth, _, err := authors.GetAuthors(tex, authorParser(cfg))
	if err != nil {
		return nil, err
	}
	results = append(results, auth)

	pkgs, err := texcheck.CheckPackages(tex, cfg.Packages.Standard)
	if err != nil {
		return nil, err
	}
	results = append(results, pkgs)

	heads, err := texcheck.CheckRunningHeads(tex)
	if err != nil {
		return nil, err
	}
	results = append(results, heads)

	chars, err := texcheck.CheckCharacters(tex)
	if err != nil {
		return nil, err
	}
	results = append(results, chars)

	return results, nil
}

func init() {
	checkCmd.Flags().String("format", "text", "output format: text or yaml")

	bindFlag("output", checkCmd, "format")

	rootCmd.AddCommand(checkCmd)
}
