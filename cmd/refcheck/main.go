// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the refcheck CLI, which checks the
// papers submitted to a conference proceedings volume before they are
// typeset: citations against the .bib database, author lists, packages,
// running heads and stray characters.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/refcheck/internal/logger"
	"github.com/pdiddy/refcheck/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the refcheck CLI.
var rootCmd = &cobra.Command{
	Use:   "refcheck",
	Short: "Check proceedings papers before typesetting",
	Long: `refcheck checks the LaTeX source of papers submitted to a conference
proceedings volume. It reconciles the citations in each paper with its .bib
database, trims unused database records, normalizes the author list for
the volume's author index, and flags packages, running heads and
characters that will cause trouble at typesetting time.

Each check is a subcommand taking one or more paper names, e.g. O1-4 for
O1-4.tex. "check" runs them all.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetVerbose(verbose)
		for key, flag := range flagBindings[cmd] {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return fmt.Errorf("binding --%s: %w", flag, err)
			}
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Info("using config file %s", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./refcheck.yaml or ~/.config/refcheck/refcheck.yaml)")
	rootCmd.PersistentFlags().String("dir", "", "directory holding the papers (default: current directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log the files chosen and parsed to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "never color the output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("refcheck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "refcheck"))
		}
	}

	setDefaults(types.DefaultConfig())
	viper.SetEnvPrefix("REFCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}

// setDefaults registers every scalar setting so that REFCHECK_* environment
// variables reach it.
func setDefaults(d types.Config) {
	viper.SetDefault("conference.number", d.Conference.Number)
	viper.SetDefault("conference.editors", d.Conference.Editors)
	viper.SetDefault("conference.volume", d.Conference.Volume)
	viper.SetDefault("conference.bib_file", d.Conference.BibFile)
	viper.SetDefault("refs.allow_bibitems", d.Refs.AllowBibitems)
	viper.SetDefault("trim.mode", string(d.Trim.Mode))
	viper.SetDefault("index.path", d.Index.Path)
	viper.SetDefault("output", string(d.Output))
}

// flagBindings maps, per command, config keys to the flag overriding them.
// Several commands share a key, so binding waits until the command runs.
var flagBindings = map[*cobra.Command]map[string]string{}

func bindFlag(key string, cmd *cobra.Command, flag string) {
	if flagBindings[cmd] == nil {
		flagBindings[cmd] = map[string]string{}
	}
	flagBindings[cmd][key] = flag
}

// loadConfig returns the effective configuration: built-in defaults
// overlaid with the config file, environment and bound flags.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	switch cfg.Trim.Mode {
	case types.TrimComment, types.TrimDelete:
	default:
		return cfg, fmt.Errorf("unsupported trim mode %q: use comment or delete", cfg.Trim.Mode)
	}
	switch cfg.Output {
	case types.OutputText, types.OutputYAML:
	default:
		return cfg, fmt.Errorf("unsupported output format %q: use text or yaml", cfg.Output)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
