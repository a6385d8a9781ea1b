package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/ragcheck/pkg/harness"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every suite (the default)",
	Args:  cobra.NoArgs,
	RunE:  runSuites(allUnits),
}

func init() {
	rootCmd.AddCommand(allCmd)
}

// suites in the order "all" runs them.
var suites = []func(*deps) []harness.Unit{
	envUnits,
	importUnits,
	supabaseUnits,
	credUnits,
	r2rUnits,
	dbUnits,
	embedUnits,
}

func allUnits(d *deps) []harness.Unit {
	var units []harness.Unit
	for _, build := range suites {
		units = append(units, build(d)...)
	}
	return units
}
