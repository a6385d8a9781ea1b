package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/ragcheck/pkg/harness"
	"github.com/vertti/ragcheck/pkg/importcheck"
)

// defaultImports are the packages the RAG services cannot start without.
var defaultImports = []string{"r2r", "psycopg", "supabase"}

var importsCmd = &cobra.Command{
	Use:   "imports",
	Short: "Check that the Python modules in RAGCHECK_IMPORTS can be imported",
	Args:  cobra.NoArgs,
	RunE:  runSuites(importUnits),
}

func init() {
	rootCmd.AddCommand(importsCmd)
}

func importUnits(d *deps) []harness.Unit {
	python := d.cfg.GetDefault("RAGCHECK_PYTHON", importcheck.DefaultPython)
	constraint, _ := d.cfg.Get("RAGCHECK_PYTHON_VERSION")

	units := []harness.Unit{{
		Name: "python: " + python,
		Check: &importcheck.InterpreterCheck{
			Python:     python,
			Constraint: constraint,
			Runner:     d.runner,
		},
	}}
	for _, module := range d.cfg.List("RAGCHECK_IMPORTS", defaultImports) {
		units = append(units, harness.Unit{
			Name: "import: " + module,
			Check: &importcheck.Check{
				Module: module,
				Python: python,
				Runner: d.runner,
			},
		})
	}
	return units
}
