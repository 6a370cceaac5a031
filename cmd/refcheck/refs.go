// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/refcheck"
	"github.com/pdiddy/refcheck/pkg/types"
)

var refsCmd = &cobra.Command{
	Use:   "refs [paper...]",
	Short: "Check citations against the .bib database",
	Long: `Refs reconciles the keys a paper cites with \citep, \citet and their
relatives against the keys defined in its .bib database, or in \bibitem
entries in the paper itself.

Undefined references and keys that differ only in case are problems.
Database records that are never cited are reported so they can be trimmed.
The database is the standard conference file if present, then <paper>.bib,
then any .bib file in the directory.`,
	RunE: runRefs,
}

func runRefs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bib, _ := cmd.Flags().GetString("bib")

	return runEach(cmd, args, func(p paperRef) (types.CheckResult, error) {
		res, _, err := refcheck.VerifyRefs(refOptions(cfg, p, bib))
		return res, err
	})
}

// refOptions builds the verification options for p.
func refOptions(cfg types.Config, p paperRef, bib string) refcheck.Options {
	return refcheck.Options{
		Paper:           p.Name,
		Dir:             p.Dir,
		BibFile:         bib,
		StandardBibFile: cfg.Conference.StandardBibFile(),
		AllowInline:     cfg.Refs.AllowBibitems,
	}
}

func init() {
	refsCmd.Flags().String("bib", "", "database file to use instead of locating one")
	refsCmd.Flags().Bool("allow-bibitems", true, "accept references defined with \\bibitem")

	bindFlag("refs.allow_bibitems", refsCmd, "allow-bibitems")

	rootCmd.AddCommand(refsCmd)
}
