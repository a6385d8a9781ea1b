package envcheck

import (
	"fmt"
	"strings"

	"github.com/vertti/ragcheck/pkg/check"
	"github.com/vertti/ragcheck/pkg/config"
)

// Check verifies that an environment variable meets requirements.
type Check struct {
	Name       string           // env var name
	Optional   bool             // unset is reported but passes
	Match      string           // regex pattern
	StartsWith string           // value must start with this
	HideValue  bool             // don't show value in output
	MaskValue  bool             // show first/last 3 chars
	Getter     config.EnvGetter // injected for testing
}

// Run executes the environment variable check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: fmt.Sprintf("env: %s", c.Name),
	}

	// Trimmed the same way config.Get trims, so both agree on the value.
	value, exists := c.Getter.LookupEnv(c.Name)
	value = strings.TrimSpace(value)

	if !exists || value == "" {
		if c.Optional {
			result.Status = check.StatusOK
			result.AddDetail("not set (optional)")
			return result
		}
		return result.Complete(&check.MissingConfigError{Key: c.Name})
	}

	if c.Match != "" {
		re, err := check.CompileRegex(c.Match)
		if err != nil {
			return result.Failf("invalid regex pattern: %v", err)
		}
		if !re.MatchString(value) {
			return result.Failf("value does not match pattern %q", c.Match)
		}
	}

	if c.StartsWith != "" && !strings.HasPrefix(value, c.StartsWith) {
		return result.Failf("value does not start with %q", c.StartsWith)
	}

	result.Status = check.StatusOK
	result.AddDetailf("value: %s", c.formatValue(value))
	return result
}

func (c *Check) formatValue(value string) string {
	if c.HideValue {
		return "[hidden]"
	}
	if c.MaskValue {
		return MaskValue(value)
	}
	return value
}

// MaskValue keeps the first and last three characters of long values.
func MaskValue(value string) string {
	if len(value) <= 6 {
		return "•••"
	}
	return value[:3] + "•••" + value[len(value)-3:]
}
