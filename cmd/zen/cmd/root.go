package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "zen",
	Short: "Symbolic reasoning over typed expressions",
	Long: `zen is a command-line demonstrator for the Zen embedded library:
reasoning about typed expressions via symbolic execution, BDD/SMT
decision procedures and set-transformer relational algebra.

Zen has no script language or wire protocol of its own (it is a Go
library), so this CLI drives a small catalog of built-in scenarios
rather than parsing user-supplied expression text.`,
	Version: Version,
}

// cfg is the resolved configuration: config file values, overridden by
// any CLI flag the caller actually set, the same precedence the
// teacher's cobra flags establish over their own defaults.
var cfg Config

var configPath string

// jsonOutput selects JSON-formatted results over the default text
// report, across every subcommand.
var jsonOutput bool

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&cfg.Backend, "backend", "", "solver backend: bdd or smt")
	rootCmd.PersistentFlags().IntVar(&cfg.Depth, "depth", 0, "symbolic-input generation depth")
	rootCmd.PersistentFlags().BoolVar(&cfg.Exhaustive, "exhaustive", false, "generate lists of every length up to depth rather than exactly depth")
	rootCmd.PersistentFlags().BoolVar(&cfg.Simplify, "simplify", false, "simplify a query before evaluating it")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit results as JSON instead of text")

	cobra.OnInitialize(resolveConfig)
}

// resolveConfig loads configPath (if given), then restores any field
// the caller set explicitly via a CLI flag: a flag always wins over a
// config file value, and a config file value always wins over the
// built-in default (the same override precedence the teacher's cobra
// flags establish over their own zero-value defaults).
func resolveConfig() {
	set := cfg // flags have already been parsed into cfg by this point
	if configPath == "" {
		applyDefaults(&cfg)
		return
	}
	loaded, err := LoadConfig(configPath)
	if err != nil {
		exitWithError("failed to load config %s: %v", configPath, err)
	}
	cfg = loaded
	flags := rootCmd.PersistentFlags()
	if flags.Changed("backend") {
		cfg.Backend = set.Backend
	}
	if flags.Changed("depth") {
		cfg.Depth = set.Depth
	}
	if flags.Changed("exhaustive") {
		cfg.Exhaustive = set.Exhaustive
	}
	if flags.Changed("simplify") {
		cfg.Simplify = set.Simplify
	}
	applyDefaults(&cfg)
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
