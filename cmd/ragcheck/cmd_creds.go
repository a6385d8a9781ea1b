package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/ragcheck/pkg/credcheck"
	"github.com/vertti/ragcheck/pkg/harness"
)

var credsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Write the base64 service account to GOOGLE_APPLICATION_CREDENTIALS",
	Args:  cobra.NoArgs,
	RunE:  runSuites(credUnits),
}

func init() {
	rootCmd.AddCommand(credsCmd)
}

func credUnits(d *deps) []harness.Unit {
	return []harness.Unit{{
		Name:  "credentials: service account",
		Check: &credcheck.Check{Config: d.cfg, FS: d.fs},
	}}
}
