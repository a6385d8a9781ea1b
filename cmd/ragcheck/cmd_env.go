package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/ragcheck/pkg/envcheck"
	"github.com/vertti/ragcheck/pkg/harness"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Check that the environment variables the other suites need are set",
	Args:  cobra.NoArgs,
	RunE:  runSuites(envUnits),
}

func init() {
	rootCmd.AddCommand(envCmd)
}

func envUnits(d *deps) []harness.Unit {
	getter := d.cfg.Env()
	checks := []*envcheck.Check{
		{Name: "R2R_BASE_URL", Match: `^https?://`},
		{Name: "R2R_API_KEY", Optional: true, MaskValue: true},
		{Name: "SUPABASE_URL", Match: `^https?://`},
		{Name: "SUPABASE_ANON_KEY", MaskValue: true},
		{Name: "SUPABASE_EMAIL"},
		{Name: "SUPABASE_PASSWORD", HideValue: true},
		{Name: "GOOGLE_SERVICE_ACCOUNT_BASE64", HideValue: true},
		{Name: "GOOGLE_APPLICATION_CREDENTIALS"},
		{Name: "DATABASE_URL", Match: `^(postgres(ql)?://|host=)`, HideValue: true},
		{Name: "GEMINI_API_KEY", StartsWith: "AIza", MaskValue: true},
	}

	units := make([]harness.Unit, 0, len(checks))
	for _, c := range checks {
		c.Getter = getter
		units = append(units, harness.Unit{Name: "env: " + c.Name, Check: c})
	}
	return units
}
