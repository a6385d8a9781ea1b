// Package r2rcheck holds the R2R smoke tests: health, search, document
// listing and an optional ingest/delete round trip.
package r2rcheck

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vertti/ragcheck/pkg/check"
	"github.com/vertti/ragcheck/pkg/config"
	"github.com/vertti/ragcheck/pkg/r2r"
)

// DefaultTimeout bounds each request when RAGCHECK_TIMEOUT is unset.
const DefaultTimeout = 10 * time.Second

// Target carries what every R2R check needs.
type Target struct {
	Config *config.Config
	HTTP   r2r.HTTPClient // nil means a real client with the configured timeout
}

func (t Target) connect() (*r2r.Client, context.Context, context.CancelFunc, error) {
	values, err := t.Config.Require("R2R_BASE_URL")
	if err != nil {
		return nil, nil, nil, err
	}
	timeout := t.Config.Duration("RAGCHECK_TIMEOUT", DefaultTimeout)
	httpClient := t.HTTP
	if httpClient == nil {
		httpClient = r2r.NewHTTPClient(timeout)
	}
	apiKey, _ := t.Config.Get("R2R_API_KEY")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return r2r.New(values[0], apiKey, httpClient), ctx, cancel, nil
}

// HealthCheck calls GET /v3/health.
type HealthCheck struct {
	Target
}

func (c *HealthCheck) Run() check.Result {
	return check.Attempt("r2r: health", func() (check.Metadata, error) {
		client, ctx, cancel, err := c.connect()
		if err != nil {
			return nil, err
		}
		defer cancel()

		msg, err := client.Health(ctx)
		if err != nil {
			return nil, err
		}
		return check.Metadata{"message": msg}, nil
	})
}

// SearchCheck runs one retrieval search. A search that completes with no
// chunks passes unless R2R_REQUIRE_RESULTS is true; the result count is
// always reported so the two cases stay distinguishable.
type SearchCheck struct {
	Target
}

func (c *SearchCheck) Run() check.Result {
	query := c.Config.GetDefault("R2R_QUERY", "test")
	return check.Attempt(fmt.Sprintf("r2r: search %q", query), func() (check.Metadata, error) {
		client, ctx, cancel, err := c.connect()
		if err != nil {
			return nil, err
		}
		defer cancel()

		chunks, err := client.Search(ctx, query, c.Config.Int("R2R_SEARCH_LIMIT", 5))
		if err != nil {
			return nil, err
		}

		md := check.Metadata{"results": strconv.Itoa(len(chunks))}
		if len(chunks) == 0 {
			if c.Config.Bool("R2R_REQUIRE_RESULTS", false) {
				return md, check.Absent("search results", "search completed but returned no chunks")
			}
			md["note"] = "search completed but returned no chunks"
			return md, nil
		}
		md["top_score"] = strconv.FormatFloat(chunks[0].Score, 'f', 3, 64)
		md["top_document"] = chunks[0].DocumentID
		return md, nil
	})
}

// DocumentsCheck lists documents to confirm the collection is reachable.
type DocumentsCheck struct {
	Target
}

func (c *DocumentsCheck) Run() check.Result {
	return check.Attempt("r2r: documents", func() (check.Metadata, error) {
		client, ctx, cancel, err := c.connect()
		if err != nil {
			return nil, err
		}
		defer cancel()

		total, err := client.CountDocuments(ctx)
		if err != nil {
			return nil, err
		}
		return check.Metadata{"documents": strconv.FormatInt(total, 10)}, nil
	})
}

// IngestCheck uploads a small text document and deletes it again.
type IngestCheck struct {
	Target
	Now func() time.Time
}

func (c *IngestCheck) Run() check.Result {
	return check.Attempt("r2r: ingest round trip", func() (md check.Metadata, err error) {
		client, ctx, cancel, err := c.connect()
		if err != nil {
			return nil, err
		}
		defer cancel()

		now := time.Now
		if c.Now != nil {
			now = c.Now
		}
		stamp := now().UTC().Format(time.RFC3339)
		text := "ragcheck smoke test document created at " + stamp

		id, err := client.IngestText(ctx, text, map[string]string{"source": "ragcheck", "created_at": stamp})
		if err != nil {
			return nil, fmt.Errorf("ingest: %w", err)
		}
		md = check.Metadata{"document_id": id}

		if err := client.DeleteDocument(ctx, id); err != nil {
			return md, fmt.Errorf("delete %s: %w", id, err)
		}
		md["deleted"] = "true"
		return md, nil
	})
}
