// Package supabasecheck exercises a Supabase project: a password-grant token
// fetch through GoTrue and a count query through PostgREST.
package supabasecheck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/supabase-community/gotrue-go/types"

	"github.com/vertti/ragcheck/pkg/check"
	"github.com/vertti/ragcheck/pkg/config"
	"github.com/vertti/ragcheck/pkg/envcheck"
)

// TokenCheck signs in with email and password and reports the access token.
// When SUPABASE_TOKEN_FILE is set the raw token is written there.
type TokenCheck struct {
	Config    *config.Config
	Connector Connector
	Files     FileWriter
}

// Run executes the token fetch.
func (c *TokenCheck) Run() check.Result {
	return check.Attempt("supabase: access token", c.attempt)
}

func (c *TokenCheck) attempt() (check.Metadata, error) {
	values, err := c.Config.Require("SUPABASE_URL", "SUPABASE_ANON_KEY", "SUPABASE_EMAIL", "SUPABASE_PASSWORD")
	if err != nil {
		return nil, err
	}
	url, key, email, password := values[0], values[1], values[2], values[3]

	client, err := c.Connector.Connect(url, key)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}

	resp, err := client.Token(types.TokenRequest{
		GrantType: "password",
		Email:     email,
		Password:  password,
	})
	if err != nil {
		if isInvalidCredentials(err) {
			return nil, check.Absent("supabase user "+email, "invalid login credentials")
		}
		return nil, fmt.Errorf("token request: %w", err)
	}
	if resp == nil || resp.AccessToken == "" {
		return nil, check.Faultf("AuthError", "token response carried no access token")
	}

	md := check.Metadata{
		"token":      envcheck.MaskValue(resp.AccessToken),
		"token_type": resp.TokenType,
		"expires_in": strconv.Itoa(resp.ExpiresIn) + "s",
		"user":       email,
	}

	if path, ok := c.Config.Get("SUPABASE_TOKEN_FILE"); ok {
		if err := c.Files.WriteFile(path, []byte(resp.AccessToken+"\n"), 0o600); err != nil {
			return md, fmt.Errorf("write token file: %w", err)
		}
		md["token_file"] = path
	}
	return md, nil
}

func isInvalidCredentials(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid login credentials") || strings.Contains(msg, "invalid_grant")
}
