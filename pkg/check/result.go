package check

// Status represents the outcome of a check.
type Status string

const (
	StatusOK    Status = "OK"
	StatusFail  Status = "FAIL"
	StatusError Status = "ERROR"
)

// Metadata is whatever a collaborator handed back on success: paths, versions,
// counts, masked tokens. Keys are free-form.
type Metadata map[string]string

// Result holds the outcome of a single check.
type Result struct {
	Name     string   // e.g., "import: r2r", "env: DATABASE_URL"
	Status   Status   // OK, FAIL or ERROR
	Details  []string // human-readable details
	Metadata Metadata // collaborator data reported on success
	Err      error    // underlying error for failures
}

// OK returns true if the check passed.
func (r Result) OK() bool {
	return r.Status == StatusOK
}
