// Package credcheck materializes a base64-encoded Google service account
// into the file GOOGLE_APPLICATION_CREDENTIALS points at.
package credcheck

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/vertti/ragcheck/pkg/check"
	"github.com/vertti/ragcheck/pkg/config"
)

const (
	// SourceVar holds the base64 payload.
	SourceVar = "GOOGLE_SERVICE_ACCOUNT_BASE64"
	// TargetVar names the output file.
	TargetVar = "GOOGLE_APPLICATION_CREDENTIALS"
)

// requiredKeys must be present in a usable service account file.
var requiredKeys = []string{"type", "project_id", "client_email", "private_key"}

// Check decodes the service account, validates it and writes it out.
type Check struct {
	Config *config.Config
	FS     FileSystem
}

// Run executes the materialization.
func (c *Check) Run() check.Result {
	return check.Attempt("credentials: service account", c.attempt)
}

func (c *Check) attempt() (check.Metadata, error) {
	values, err := c.Config.Require(SourceVar, TargetVar)
	if err != nil {
		return nil, err
	}
	payload, path := values[0], values[1]

	data, err := Decode(payload)
	if err != nil {
		return nil, check.Faultf("DecodeError", "%s is not valid base64: %v", SourceVar, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, check.Faultf("JSONError", "decoded %s is not valid JSON", SourceVar)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, check.Faultf("JSONError", "decoded %s is not a JSON object", SourceVar)
	}
	for _, key := range requiredKeys {
		if !doc.Get(key).Exists() {
			return nil, check.Absent("service account field "+key, "key missing from decoded JSON")
		}
	}
	if typ := doc.Get("type").String(); typ != "service_account" {
		return nil, check.Faultf("JSONError", "type is %q, want \"service_account\"", typ)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := c.FS.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := c.FS.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	return check.Metadata{
		"path":         path,
		"project_id":   doc.Get("project_id").String(),
		"client_email": doc.Get("client_email").String(),
		"bytes":        strconv.Itoa(len(data)),
		"sha256":       sha256Hex(data),
	}, nil
}

// Decode accepts standard or URL-safe base64, padded or not, and ignores
// whitespace introduced by line wrapping.
func Decode(payload string) ([]byte, error) {
	payload = strings.Join(strings.Fields(payload), "")
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var firstErr error
	for _, enc := range encodings {
		data, err := enc.DecodeString(payload)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// sha256Hex returns the hex SHA-256 digest of data.
func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
