package supabasecheck

import (
	"os"

	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
)

// Client is the subset of the Supabase client the checks use.
type Client interface {
	Token(req types.TokenRequest) (*types.TokenResponse, error)
	Count(table string) (int64, error)
}

// Connector opens Supabase clients.
type Connector interface {
	Connect(url, key string) (Client, error)
}

// RealConnector builds clients with supabase-go.
type RealConnector struct{}

// Connect creates a Supabase client for the project at url.
func (RealConnector) Connect(url, key string) (Client, error) {
	c, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, err
	}
	return &realClient{c: c}, nil
}

type realClient struct {
	c *supabase.Client
}

func (r *realClient) Token(req types.TokenRequest) (*types.TokenResponse, error) {
	return r.c.Auth.Token(req)
}

// Count reads the exact row count from Content-Range. It uses GET with a
// one-row limit: a HEAD response carries no body, so PostgREST errors
// could not be decoded.
func (r *realClient) Count(table string) (int64, error) {
	_, count, err := r.c.From(table).Select("*", "exact", false).Limit(1, "").Execute()
	return count, err
}

// FileWriter abstracts file writes for testing.
type FileWriter interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// RealFileWriter writes to the real file system.
type RealFileWriter struct{}

func (RealFileWriter) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}
