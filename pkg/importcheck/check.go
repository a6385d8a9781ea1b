// Package importcheck verifies that Python modules used by the RAG services
// can be imported by the interpreter the services run under.
package importcheck

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vertti/ragcheck/pkg/check"
)

// DefaultPython is the interpreter used when none is configured.
const DefaultPython = "python3"

// DefaultTimeout bounds a single interpreter invocation.
const DefaultTimeout = 30 * time.Second

// resultMarker separates anything the module prints while importing from
// the file and version lines that follow it.
const resultMarker = "--ragcheck-import-result--"

// importScript sends import-time output to stderr, then prints the marker,
// the module's file and its version.
const importScript = `import contextlib, importlib, sys
with contextlib.redirect_stdout(sys.stderr):
    m = importlib.import_module(sys.argv[1])
print("` + resultMarker + `")
print(getattr(m, "__file__", None) or "")
print(getattr(m, "__version__", None) or "")`

// exceptionLine matches the final "Type: message" line of a Python traceback.
var exceptionLine = regexp.MustCompile(`^([A-Za-z_][\w.]*(?:Error|Exception|Exit|Interrupt|Warning)):\s?(.*)$`)

// Check verifies that a Python module can be imported.
type Check struct {
	Module  string        // dotted module name, e.g. "r2r" or "core.base.api"
	Python  string        // interpreter (default: python3)
	Timeout time.Duration // per invocation (default: 30s)
	Runner  Runner        // injected for testing
}

// Run executes the import check.
func (c *Check) Run() check.Result {
	return check.Attempt("import: "+c.Module, c.attempt)
}

func (c *Check) attempt() (check.Metadata, error) {
	python := c.Python
	if python == "" {
		python = DefaultPython
	}
	if _, err := c.Runner.LookPath(python); err != nil {
		return nil, check.Absent("interpreter "+python, err.Error())
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stdout, stderr, err := c.Runner.RunCommandContext(ctx, python, "-c", importScript, c.Module)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, check.Faultf("TimeoutError", "import did not finish within %s", timeout)
		}
		return nil, classifyFailure(c.Module, stderr, err)
	}

	path, version := parseResult(stdout)
	md := check.Metadata{"path": "(built-in)"}
	if path != "" {
		md["path"] = path
	}
	if version != "" {
		md["version"] = version
	}
	return md, nil
}

// parseResult reads the two lines following the last result marker.
func parseResult(stdout string) (path, version string) {
	lines := strings.Split(stdout, "\n")
	start := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == resultMarker {
			start = i + 1
		}
	}
	if start < 0 {
		return "", ""
	}
	if start < len(lines) {
		path = strings.TrimSpace(lines[start])
	}
	if start+1 < len(lines) {
		version = strings.TrimSpace(lines[start+1])
	}
	return path, version
}

// classifyFailure turns a failed interpreter run into an absence (the module,
// or something it imports, is not installed) or a fault carrying the Python
// exception type.
func classifyFailure(module, stderr string, runErr error) error {
	last := lastLine(stderr)
	m := exceptionLine.FindStringSubmatch(last)
	if m == nil {
		if last == "" {
			return fmt.Errorf("interpreter failed: %w", runErr)
		}
		return check.Faultf("ExecError", "%s", last)
	}

	typ, msg := m[1], m[2]
	switch typ {
	case "ModuleNotFoundError", "ImportError":
		return check.Absent("module "+module, last)
	default:
		return &check.Fault{Type: typ, Msg: msg}
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
