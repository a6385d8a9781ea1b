package importcheck

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/vertti/ragcheck/pkg/check"
)

// pythonVersion captures the release triple and any suffix such as "rc1" or "+".
var pythonVersion = regexp.MustCompile(`^Python (\d+\.\d+\.\d+)(\S*)`)

// InterpreterCheck verifies the Python interpreter exists and optionally
// satisfies a semver constraint such as ">= 3.10".
type InterpreterCheck struct {
	Python     string
	Constraint string
	Runner     Runner
}

// Run executes the interpreter check.
func (c *InterpreterCheck) Run() check.Result {
	python := c.Python
	if python == "" {
		python = DefaultPython
	}
	result := check.Result{Name: "python: " + python}

	path, err := c.Runner.LookPath(python)
	if err != nil {
		return result.Complete(check.Absent("interpreter "+python, err.Error()))
	}
	result.Set("path", path)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	stdout, stderr, err := c.Runner.RunCommandContext(ctx, python, "--version")
	if err != nil {
		return result.Error(fmt.Errorf("%s --version: %w", python, err))
	}
	// Python 2 prints its version on stderr.
	out := strings.TrimSpace(stdout)
	if out == "" {
		out = strings.TrimSpace(stderr)
	}

	m := pythonVersion.FindStringSubmatch(out)
	if m == nil {
		return result.Failf("could not parse version from %q", out)
	}
	// Constraints apply to the release triple, so 3.13.0rc1 counts as 3.13.0.
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return result.Failf("could not parse version from %q: %v", out, err)
	}
	result.Set("version", m[1]+m[2])

	if c.Constraint != "" {
		constraint, err := semver.NewConstraint(c.Constraint)
		if err != nil {
			return result.Failf("invalid version constraint %q: %v", c.Constraint, err)
		}
		if !constraint.Check(v) {
			return result.Failf("version %s does not satisfy %s", v, c.Constraint)
		}
	}

	result.Status = check.StatusOK
	return result
}
