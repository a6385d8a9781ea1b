package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vertti/ragcheck/pkg/config"
	"github.com/vertti/ragcheck/pkg/harness"
	"github.com/vertti/ragcheck/pkg/logging"
)

// ErrChecksFailed is returned when at least one check did not succeed.
// main maps it to exit status 1 without printing anything further.
var ErrChecksFailed = errors.New("checks failed")

// envGetter is replaced in tests.
var envGetter config.EnvGetter = &config.RealEnvGetter{}

var (
	current *deps
	logger  logging.Logger
)

func loadDeps(cmd *cobra.Command, _ []string) error {
	level, _ := envGetter.LookupEnv("LOG_LEVEL")
	logger = logging.NewLogger(cmd.ErrOrStderr(), level)
	cfg := config.Load(envGetter, logger)
	logger.SetLevel(logging.ParseLevel(cfg.GetDefault("LOG_LEVEL", "")))
	current = newDeps(cfg)
	return nil
}

// runSuites builds a RunE that runs the units produced by build.
func runSuites(build func(d *deps) []harness.Unit) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		h := harness.New(cmd.OutOrStdout(), logger)
		report := h.Run(build(current))
		if report.ExitCode() != 0 {
			return ErrChecksFailed
		}
		return nil
	}
}
