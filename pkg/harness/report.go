package harness

import "github.com/vertti/ragcheck/pkg/check"

// Report is the ordered outcome of a harness run.
type Report struct {
	results []check.Result
}

// Results returns a copy of the results in unit order.
func (r Report) Results() []check.Result {
	out := make([]check.Result, len(r.results))
	copy(out, r.results)
	return out
}

func (r Report) Total() int { return len(r.results) }

func (r Report) Passed() int { return r.count(check.StatusOK) }

func (r Report) Failed() int { return r.count(check.StatusFail) }

func (r Report) Errored() int { return r.count(check.StatusError) }

// OK reports whether every unit succeeded. An empty run is OK.
func (r Report) OK() bool {
	return r.Passed() == r.Total()
}

// ExitCode is 0 when every unit succeeded and 1 otherwise.
func (r Report) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}

func (r Report) count(s check.Status) int {
	n := 0
	for _, res := range r.results {
		if res.Status == s {
			n++
		}
	}
	return n
}
