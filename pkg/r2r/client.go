// Package r2r is a thin client for the handful of R2R v3 endpoints the
// smoke tests touch. Responses are read with gjson so the checks do not
// depend on the full response schema.
package r2r

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/vertti/ragcheck/pkg/check"
)

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// HTTPClient abstracts HTTP requests for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns an *http.Client with the given timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is makes a 404 match check.ErrAbsent.
func (e *StatusError) Is(target error) bool {
	return target == check.ErrAbsent && e.Code == http.StatusNotFound
}

// Chunk is one vector search hit.
type Chunk struct {
	ID         string
	DocumentID string
	Score      float64
	Text       string
}

// Client talks to an R2R deployment.
type Client struct {
	baseURL string
	apiKey  string
	http    HTTPClient
}

// New returns a Client for baseURL. apiKey may be empty for unauthenticated
// deployments.
func New(baseURL, apiKey string, httpClient HTTPClient) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// Health returns the message from GET /v3/health.
func (c *Client) Health(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/v3/health", nil, "")
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(body, "results.message").String(), nil
}

type searchRequest struct {
	Query          string         `json:"query"`
	SearchSettings searchSettings `json:"search_settings"`
}

type searchSettings struct {
	Limit int `json:"limit"`
}

// Search runs a retrieval search and returns the chunk hits.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Chunk, error) {
	payload, err := json.Marshal(searchRequest{Query: query, SearchSettings: searchSettings{Limit: limit}})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/v3/retrieval/search", bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}

	res := gjson.GetBytes(body, "results.chunk_search_results")
	if !res.Exists() {
		return nil, fmt.Errorf("search response has no results.chunk_search_results")
	}
	var chunks []Chunk
	res.ForEach(func(_, v gjson.Result) bool {
		chunks = append(chunks, Chunk{
			ID:         v.Get("id").String(),
			DocumentID: v.Get("document_id").String(),
			Score:      v.Get("score").Float(),
			Text:       v.Get("text").String(),
		})
		return true
	})
	return chunks, nil
}

// CountDocuments returns total_entries from the documents listing.
func (c *Client) CountDocuments(ctx context.Context) (int64, error) {
	body, err := c.do(ctx, http.MethodGet, "/v3/documents?offset=0&limit=1", nil, "")
	if err != nil {
		return 0, err
	}
	total := gjson.GetBytes(body, "total_entries")
	if !total.Exists() {
		return 0, fmt.Errorf("documents response has no total_entries")
	}
	return total.Int(), nil
}

// IngestText uploads raw text as a new document and returns its id.
func (c *Client) IngestText(ctx context.Context, text string, metadata map[string]string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("raw_text", text); err != nil {
		return "", err
	}
	if len(metadata) > 0 {
		md, err := json.Marshal(metadata)
		if err != nil {
			return "", fmt.Errorf("marshal metadata: %w", err)
		}
		if err := mw.WriteField("metadata", string(md)); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	body, err := c.do(ctx, http.MethodPost, "/v3/documents", &buf, mw.FormDataContentType())
	if err != nil {
		return "", err
	}
	id := gjson.GetBytes(body, "results.document_id").String()
	if id == "" {
		return "", fmt.Errorf("ingest response has no results.document_id")
	}
	return id, nil
}

// DeleteDocument removes a document by id.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/v3/documents/"+url.PathEscape(id), nil, "")
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, check.Faultf("TimeoutError", "%s %s did not finish in time: %v", method, path, err)
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: summarize(data)}
	}
	if len(data) > 0 && !gjson.ValidBytes(data) {
		return nil, errors.New("response is not valid JSON")
	}
	return data, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// summarize prefers R2R's "detail" message and truncates anything else.
func summarize(body []byte) string {
	if d := gjson.GetBytes(body, "detail"); d.Exists() {
		if d.Type == gjson.String {
			return d.String()
		}
		if m := d.Get("message"); m.Exists() {
			return m.String()
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "… (" + strconv.Itoa(len(body)) + " bytes)"
	}
	return s
}
