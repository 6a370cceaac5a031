// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/authorindex"
	"github.com/pdiddy/refcheck/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the author index (add, list, aindex, export)",
	Long: `Index keeps the normalized author lists of every paper in a local
SQLite database, from which the volume's author index is generated. Use
subcommands to add papers, list entries, write \aindex lines, or export.`,
}

// --- add subcommand ---

var indexAddCmd = &cobra.Command{
	Use:   "add [paper...]",
	Short: "Parse papers' author lists into the index",
	Long: `Add parses the \author directives of each paper and stores the result,
replacing anything already stored for that paper. With no paper named,
every .tex file in --dir is indexed.`,
	RunE: runIndexAdd,
}

func runIndexAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	papers, err := papersFromArgs(cmd, args)
	if err != nil {
		return err
	}

	store, err := authorindex.NewStore(cfg.Index)
	if err != nil {
		return err
	}
	defer store.Close()

	sources := make([]authorindex.Source, len(papers))
	for i, p := range papers {
		sources[i] = authorindex.Source{PaperID: p.Name, TexFile: p.TexFile()}
	}

	summary, err := store.Index(context.Background(), cmd.OutOrStdout(), authorParser(cfg), sources)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d paper(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List index entries in sort order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *authorindex.Store) error {
			entries, err := store.List(context.Background(), queryFromFlags(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries found.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%-40s  %s\n", e.Entry, e.PaperID)
			}
			fmt.Fprintf(out, "\n%d entries\n", len(entries))
			return nil
		})
	},
}

// --- aindex subcommand ---

var indexAindexCmd = &cobra.Command{
	Use:   "aindex",
	Short: "Write \\aindex lines for the index",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *authorindex.Store) error {
			return store.WriteAindex(context.Background(), cmd.OutOrStdout(), queryFromFlags(cmd))
		})
	},
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the index to YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "authors.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		return withStore(func(store *authorindex.Store) error {
			if err := store.ExportYAML(context.Background(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		})
	},
}

// --- shared helpers ---

func withStore(fn func(*authorindex.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := authorindex.NewStore(cfg.Index)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func queryFromFlags(cmd *cobra.Command) authorindex.Query {
	paper, _ := cmd.Flags().GetString("paper")
	surname, _ := cmd.Flags().GetString("surname")
	limit, _ := cmd.Flags().GetInt("limit")
	return authorindex.Query{PaperID: paper, Surname: surname, Limit: limit}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("db", types.DefaultConfig().Index.Path, "author index database file")

	for _, c := range []*cobra.Command{indexListCmd, indexAindexCmd} {
		c.Flags().String("paper", "", "restrict to one paper, in author order")
		c.Flags().String("surname", "", "restrict to surnames starting with this text")
		c.Flags().Int("limit", 0, "maximum entries (0 = all)")
	}

	// Wire subcommands.
	for _, c := range []*cobra.Command{indexAddCmd, indexListCmd, indexAindexCmd, indexExportCmd} {
		bindFlag("index.path", c, "db")
		indexCmd.AddCommand(c)
	}

	rootCmd.AddCommand(indexCmd)
}
