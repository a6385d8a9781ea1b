package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vertti/ragcheck/pkg/check"
	"github.com/vertti/ragcheck/pkg/logging"
)

// EnvFiles are loaded, in order, into the process environment.
// Values already present in the process environment win.
var EnvFiles = []string{".env.local", ".env"}

// Config reads settings through an EnvGetter once Load has merged the env
// files. Checks take it explicitly instead of calling os.Getenv.
type Config struct {
	env EnvGetter
}

// Load reads the env files (if present) into the process environment and
// returns a Config backed by getter.
func Load(getter EnvGetter, logger logging.Logger) *Config {
	var loaded []string
	for _, file := range EnvFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			logger.WithError(err).Warnf("failed to load %s", file)
			continue
		}
		loaded = append(loaded, file)
	}
	if len(loaded) == 0 {
		logger.Debug("no env files loaded; using process environment")
	} else {
		logger.Debugf("loaded env files: %s", strings.Join(loaded, ", "))
	}
	return New(getter)
}

// New returns a Config backed by getter.
func New(getter EnvGetter) *Config {
	return &Config{env: getter}
}

// FromMap returns a Config backed by a fixed map.
func FromMap(vars map[string]string) *Config {
	return New(MapEnv(vars))
}

// Get returns the trimmed value of key and whether it is set and non-empty.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.env.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// GetDefault returns the value of key, or def when unset.
func (c *Config) GetDefault(key, def string) string {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// Require returns the values of keys in order. The first unset key is
// reported as a *check.MissingConfigError.
func (c *Config) Require(keys ...string) ([]string, error) {
	values := make([]string, 0, len(keys))
	for _, key := range keys {
		v, ok := c.Get(key)
		if !ok {
			return nil, &check.MissingConfigError{Key: key}
		}
		values = append(values, v)
	}
	return values, nil
}

// Bool parses key as a boolean, falling back to def.
func (c *Config) Bool(key string, def bool) bool {
	if v, ok := c.Get(key); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// Int parses key as an integer, falling back to def.
func (c *Config) Int(key string, def int) int {
	if v, ok := c.Get(key); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

// Duration parses key as a time.Duration, falling back to def.
func (c *Config) Duration(key string, def time.Duration) time.Duration {
	if v, ok := c.Get(key); ok {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

// List splits a comma-separated value, dropping empty entries.
func (c *Config) List(key string, def []string) []string {
	v, ok := c.Get(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// Env exposes the underlying getter for checks that report raw values.
func (c *Config) Env() EnvGetter {
	return c.env
}
