package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/ragcheck/pkg/harness"
	"github.com/vertti/ragcheck/pkg/supabasecheck"
)

var supabaseCmd = &cobra.Command{
	Use:   "supabase",
	Short: "Fetch a Supabase access token and count rows in the chunk table",
	Args:  cobra.NoArgs,
	RunE:  runSuites(supabaseUnits),
}

func init() {
	rootCmd.AddCommand(supabaseCmd)
}

func supabaseUnits(d *deps) []harness.Unit {
	return []harness.Unit{
		{
			Name:  "supabase: access token",
			Check: &supabasecheck.TokenCheck{Config: d.cfg, Connector: d.supabase, Files: d.files},
		},
		{
			Name:  "supabase: table",
			Check: &supabasecheck.TableCheck{Config: d.cfg, Connector: d.supabase},
		},
	}
}
