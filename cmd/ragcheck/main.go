package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrChecksFailed) {
			fmt.Fprintln(os.Stderr, "ragcheck:", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ragcheck",
	Short: "Diagnostics for the RAG stack's external dependencies",
	Long: "ragcheck runs fixed suites of checks against the services a RAG deployment depends on\n" +
		"(Python imports, Supabase, service account credentials, R2R, Postgres, embeddings).\n" +
		"Configuration comes from the environment and .env/.env.local. Running without a\n" +
		"subcommand runs every suite. Exit status is 0 only if every check succeeded.",
	Version:           Version,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadDeps,
	RunE:              runSuites(allUnits),
}
