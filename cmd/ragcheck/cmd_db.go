package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/ragcheck/pkg/dbcheck"
	"github.com/vertti/ragcheck/pkg/harness"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Check Postgres connectivity for DATABASE_URL",
	Args:  cobra.NoArgs,
	RunE:  runSuites(dbUnits),
}

func init() {
	rootCmd.AddCommand(dbCmd)
}

func dbUnits(d *deps) []harness.Unit {
	return []harness.Unit{
		{Name: "tcp: postgres", Check: &dbcheck.PortCheck{Config: d.cfg, Dialer: d.dialer}},
		{Name: "postgres", Check: &dbcheck.Check{Config: d.cfg, Open: d.openDB}},
	}
}
