// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/authors"
	"github.com/pdiddy/refcheck/pkg/types"
)

var authorsCmd = &cobra.Command{
	Use:   "authors [paper...]",
	Short: "Normalize the author list for the author index",
	Long: `Authors parses each \author directive in a paper into index entries of
the form Surname,~I.~J., printing one entry per line (or one \aindex line
per author with --aindex).

The parser is heuristic: missing serial commas, unusual capitalization,
possible team credits and the like are reported as notes for an editor to
check. Notes never fail the command.`,
	RunE: runAuthors,
}

func runAuthors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	aindex, _ := cmd.Flags().GetBool("aindex")
	p := authorParser(cfg)

	return runEach(cmd, args, func(paper paperRef) (types.CheckResult, error) {
		res, recs, err := authors.GetAuthors(paper.TexFile(), p)
		if err != nil {
			return res, err
		}
		out := cmd.OutOrStdout()
		for _, e := range authors.Entries(recs) {
			if aindex {
				fmt.Fprintf(out, "\\aindex{%s}\n", e)
			} else {
				fmt.Fprintln(out, e)
			}
		}
		return res, nil
	})
}

func authorParser(cfg types.Config) *authors.Parser {
	return authors.NewParser(authors.DefaultTables().WithConfig(cfg.Authors))
}

func init() {
	authorsCmd.Flags().Bool("aindex", false, "print \\aindex{...} lines instead of bare entries")

	rootCmd.AddCommand(authorsCmd)
}
