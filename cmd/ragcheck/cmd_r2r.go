package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/ragcheck/pkg/harness"
	"github.com/vertti/ragcheck/pkg/r2rcheck"
)

var r2rCmd = &cobra.Command{
	Use:   "r2r",
	Short: "Smoke test the R2R deployment at R2R_BASE_URL",
	Long: "Calls health, search and document listing. Set R2R_INGEST=true to also upload\n" +
		"and delete a small text document.",
	Args: cobra.NoArgs,
	RunE: runSuites(r2rUnits),
}

func init() {
	rootCmd.AddCommand(r2rCmd)
}

func r2rUnits(d *deps) []harness.Unit {
	target := r2rcheck.Target{Config: d.cfg, HTTP: d.http}
	units := []harness.Unit{
		{Name: "r2r: health", Check: &r2rcheck.HealthCheck{Target: target}},
		{Name: "r2r: search", Check: &r2rcheck.SearchCheck{Target: target}},
		{Name: "r2r: documents", Check: &r2rcheck.DocumentsCheck{Target: target}},
	}
	if d.cfg.Bool("R2R_INGEST", false) {
		units = append(units, harness.Unit{Name: "r2r: ingest round trip", Check: &r2rcheck.IngestCheck{Target: target}})
	}
	return units
}
