// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/citations"
	"github.com/pdiddy/refcheck/internal/texcheck"
	"github.com/pdiddy/refcheck/pkg/types"
)

// --- cite subcommand ---

var citeCmd = &cobra.Command{
	Use:   "cite [paper...]",
	Short: "Report uses of bare \\cite",
	Long: `Cite reports every bare \cite in a paper. The proceedings style expects
\citep or \citet, which control how the reference is typeset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEach(cmd, args, func(p paperRef) (types.CheckResult, error) {
			return citations.CheckCite(p.TexFile())
		})
	},
}

// --- packages subcommand ---

var packagesCmd = &cobra.Command{
	Use:   "packages [paper...]",
	Short: "List the packages a paper loads",
	Long: `Packages lists every package a paper loads with \usepackage. Packages
the proceedings style already loads are noted; any other package is a
problem, since it may clash with the style.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runEach(cmd, args, func(p paperRef) (types.CheckResult, error) {
			return texcheck.CheckPackages(p.TexFile(), cfg.Packages.Standard)
		})
	},
}

// --- heads subcommand ---

var headsCmd = &cobra.Command{
	Use:   "heads [paper...]",
	Short: "Check the \\markboth running heads",
	Long: `Heads checks the \markboth{authors}{title} directive that sets a
paper's running heads: there must be exactly one, and neither argument may
be blank or left as the template text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEach(cmd, args, func(p paperRef) (types.CheckResult, error) {
			return texcheck.CheckRunningHeads(p.TexFile())
		})
	},
}

// --- chars subcommand ---

var charsCmd = &cobra.Command{
	Use:   "chars [paper...]",
	Short: "Find characters LaTeX will not print",
	Long: `Chars reports every character outside printable ASCII, with the LaTeX
spelling to use instead when one is known. With --fix the known characters
are replaced in place and the original is kept with a .old suffix.`,
	RunE: runChars,
}

func runChars(cmd *cobra.Command, args []string) error {
	fix, _ := cmd.Flags().GetBool("fix")
	if !fix {
		return runEach(cmd, args, func(p paperRef) (types.CheckResult, error) {
			return texcheck.CheckCharacters(p.TexFile())
		})
	}

	papers, err := papersFromArgs(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, p := range papers {
		res, err := texcheck.FixCharacters(p.TexFile())
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		if res.Backup == "" {
			fmt.Fprintf(out, "%s: nothing to replace\n", p.TexFile())
			continue
		}
		fmt.Fprintf(out, "%s: replaced %d character(s), original saved as %s\n",
			p.TexFile(), res.Replaced, res.Backup)
		if res.Unknown > 0 {
			fmt.Fprintf(out, "%s: %d character(s) have no known replacement\n", p.TexFile(), res.Unknown)
		}
	}
	return nil
}

func init() {
	charsCmd.Flags().Bool("fix", false, "replace known characters in place")

	rootCmd.AddCommand(citeCmd)
	rootCmd.AddCommand(packagesCmd)
	rootCmd.AddCommand(headsCmd)
	rootCmd.AddCommand(charsCmd)
}
