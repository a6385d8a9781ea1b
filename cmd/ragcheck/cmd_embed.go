package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/ragcheck/pkg/embedcheck"
	"github.com/vertti/ragcheck/pkg/harness"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Generate one embedding with GEMINI_API_KEY",
	Args:  cobra.NoArgs,
	RunE:  runSuites(embedUnits),
}

func init() {
	rootCmd.AddCommand(embedCmd)
}

func embedUnits(d *deps) []harness.Unit {
	return []harness.Unit{{
		Name:  "embedding",
		Check: &embedcheck.Check{Config: d.cfg, Factory: d.embedders},
	}}
}
