// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/bibfile"
	"github.com/pdiddy/refcheck/internal/refcheck"
	"github.com/pdiddy/refcheck/pkg/types"
)

var trimCmd = &cobra.Command{
	Use:   "trim paper",
	Short: "Comment out or delete unused .bib records",
	Long: `Trim removes every record of a paper's .bib database that the paper
does not cite. By default records are commented out with '%' (and any '@'
in them replaced so BibTeX does not see a new record); --mode delete drops
them. The original file is kept with a .old suffix.

Use --dry-run to see the change as a line diff without writing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrim,
}

func runTrim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, _ := cmd.Flags().GetString("dir")
	bib, _ := cmd.Flags().GetString("bib")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	p := resolvePaper(dir, args[0])
	out := cmd.OutOrStdout()

	res, refs, err := refcheck.VerifyRefs(refOptions(cfg, p, bib))
	if err != nil {
		return err
	}
	if refs.BibFile == "" {
		if err := newRenderer(cmd).Render(res); err != nil {
			return err
		}
		return fmt.Errorf("%s: no .bib file to trim", p.Name)
	}

	tr, err := bibfile.Trim(refs.BibFile, refs.Cited, bibfile.TrimOptions{
		Mode:   cfg.Trim.Mode,
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}
	for _, d := range tr.Diagnostics {
		fmt.Fprintln(out, d.Text)
	}

	verb := "Commented out"
	if cfg.Trim.Mode == types.TrimDelete {
		verb = "Deleted"
	}
	switch {
	case !tr.Changed:
		fmt.Fprintf(out, "%s: all %d records are cited, nothing to trim\n", refs.BibFile, len(tr.Kept))
	case dryRun:
		fmt.Fprint(out, tr.Diff)
		fmt.Fprintf(out, "%s: would trim %d unused record(s): %s\n",
			refs.BibFile, len(tr.Removed), strings.Join(tr.Removed, " "))
	default:
		fmt.Fprintf(out, "%s %d unused record(s) in %s: %s\n",
			verb, len(tr.Removed), refs.BibFile, strings.Join(tr.Removed, " "))
		fmt.Fprintf(out, "Original saved as %s\n", tr.Backup)
	}
	return nil
}

func init() {
	trimCmd.Flags().String("bib", "", "database file to trim instead of locating one")
	trimCmd.Flags().String("mode", "comment", "what to do with unused records: comment or delete")
	trimCmd.Flags().Bool("dry-run", false, "print the change without writing it")

	bindFlag("trim.mode", trimCmd, "mode")

	rootCmd.AddCommand(trimCmd)
}
