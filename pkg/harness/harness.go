// Package harness runs an ordered list of checks, prints each outcome and
// derives the process exit code from the aggregate.
package harness

import (
	"io"
	"time"

	"github.com/vertti/ragcheck/pkg/check"
	"github.com/vertti/ragcheck/pkg/logging"
	"github.com/vertti/ragcheck/pkg/output"
)

// Unit is one named check.
type Unit struct {
	Name  string
	Check check.Checker
}

// Harness attempts units one at a time. It is single use per Run call and
// not safe for concurrent use.
type Harness struct {
	out    io.Writer
	logger logging.Logger
}

// New returns a Harness that prints to out.
func New(out io.Writer, logger logging.Logger) *Harness {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Harness{out: out, logger: logger}
}

// Run attempts every unit in order and prints the summary. No unit's
// failure stops the run.
func (h *Harness) Run(units []Unit) Report {
	results := make([]check.Result, 0, len(units))

	for _, u := range units {
		entry := h.logger.WithField("unit", u.Name)
		entry.Debug("unit started")
		start := time.Now()

		result := h.attempt(u)

		entry.WithFields(logging.Fields{
			"status":   result.Status,
			"duration": time.Since(start).Round(time.Millisecond),
		}).Debug("unit finished")
		if result.Status == check.StatusError {
			entry.WithError(result.Err).Warn("unit errored")
		}

		output.PrintResult(h.out, result)
		results = append(results, result)
	}

	report := Report{results: results}
	output.PrintSummary(h.out, report.Passed(), report.Total(), report.Failed(), report.Errored())
	return report
}

func (h *Harness) attempt(u Unit) (result check.Result) {
	defer func() {
		if p := recover(); p != nil {
			result = check.Attempt(u.Name, func() (check.Metadata, error) { panic(p) })
		}
	}()

	if u.Check == nil {
		r := check.Result{Name: u.Name}
		return r.Error(check.Faultf("ConfigurationError", "no check configured for %s", u.Name))
	}

	result = u.Check.Run()
	if result.Name == "" {
		result.Name = u.Name
	}
	if result.Status == "" {
		result.Status = check.StatusFail
		result.AddDetail("check returned no status")
	}
	return result
}
