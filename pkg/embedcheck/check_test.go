package embedcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/vertti/ragcheck/pkg/check"
	"github.com/vertti/ragcheck/pkg/config"
	"github.com/vertti/ragcheck/pkg/testutil"
)

type mockEmbedder struct {
	EmbedFunc func(ctx context.Context, model, text string) ([]float32, error)
	closed    bool
}

func (m *mockEmbedder) Embed(ctx context.Context, model, text string) ([]float32, error) {
	return m.EmbedFunc(ctx, model, text)
}

func (m *mockEmbedder) Close() error {
	m.closed = true
	return nil
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		embed      func(ctx context.Context, model, text string) ([]float32, error)
		factoryErr error
		wantStatus check.Status
		wantName   string
		wantDims   string
		wantDetail string
	}{
		{
			name: "embedding generated",
			env:  map[string]string{"GEMINI_API_KEY": "key-a"},
			embed: func(ctx context.Context, model, text string) ([]float32, error) {
				return make([]float32, 768), nil
			},
			wantStatus: check.StatusOK,
			wantName:   "embedding: text-embedding-004",
			wantDims:   "768",
		},
		{
			name: "configured model",
			env:  map[string]string{"GEMINI_API_KEY": "key-a", "EMBEDDING_MODEL": "gemini-embedding-001"},
			embed: func(ctx context.Context, model, text string) ([]float32, error) {
				if model != "gemini-embedding-001" {
					t.Errorf("model = %q", model)
				}
				return make([]float32, 3072), nil
			},
			wantStatus: check.StatusOK,
			wantName:   "embedding: gemini-embedding-001",
			wantDims:   "3072",
		},
		{
			name:       "missing key fails",
			env:        map[string]string{},
			wantStatus: check.StatusFail,
			wantName:   "embedding: text-embedding-004",
			wantDetail: "missing environment variable GEMINI_API_KEY",
		},
		{
			name:       "blank first key fails",
			env:        map[string]string{"GEMINI_API_KEY": " ,key-b"},
			wantStatus: check.StatusFail,
			wantName:   "embedding: text-embedding-004",
		},
		{
			name: "empty vector fails",
			env:  map[string]string{"GEMINI_API_KEY": "key-a"},
			embed: func(ctx context.Context, model, text string) ([]float32, error) {
				return nil, nil
			},
			wantStatus: check.StatusFail,
			wantName:   "embedding: text-embedding-004",
		},
		{
			name: "unknown model fails",
			env:  map[string]string{"GEMINI_API_KEY": "key-a"},
			embed: func(ctx context.Context, model, text string) ([]float32, error) {
				return nil, errors.New("googleapi: Error 404: models/text-embedding-004 is not found")
			},
			wantStatus: check.StatusFail,
			wantName:   "embedding: text-embedding-004",
		},
		{
			name: "api error errors",
			env:  map[string]string{"GEMINI_API_KEY": "key-a"},
			embed: func(ctx context.Context, model, text string) ([]float32, error) {
				return nil, errors.New("googleapi: Error 400: API key not valid")
			},
			wantStatus: check.StatusError,
			wantName:   "embedding: text-embedding-004",
			wantDetail: "API key not valid",
		},
		{
			name:       "client creation error errors",
			env:        map[string]string{"GEMINI_API_KEY": "key-a"},
			factoryErr: errors.New("transport"),
			wantStatus: check.StatusError,
			wantName:   "embedding: text-embedding-004",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emb := &mockEmbedder{EmbedFunc: tt.embed}
			c := Check{
				Config: config.FromMap(tt.env),
				Factory: func(ctx context.Context, apiKey string) (Embedder, error) {
					if tt.factoryErr != nil {
						return nil, tt.factoryErr
					}
					return emb, nil
				},
			}

			result := c.Run()

			if result.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v (details: %v)", result.Status, tt.wantStatus, result.Details)
			}
			if result.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", result.Name, tt.wantName)
			}
			if tt.wantDims != "" && result.Metadata["dimensions"] != tt.wantDims {
				t.Errorf("dimensions = %q, want %q", result.Metadata["dimensions"], tt.wantDims)
			}
			if tt.wantDetail != "" && !testutil.ContainsDetail(result.Details, tt.wantDetail) {
				t.Errorf("Details = %v, want substring %q", result.Details, tt.wantDetail)
			}
			if tt.embed != nil && !emb.closed {
				t.Error("embedder was not closed")
			}
		})
	}
}

func TestCheckUsesFirstKey(t *testing.T) {
	var got string
	c := Check{
		Config: config.FromMap(map[string]string{"GEMINI_API_KEY": "key-a, key-b"}),
		Factory: func(ctx context.Context, apiKey string) (Embedder, error) {
			got = apiKey
			return &mockEmbedder{EmbedFunc: func(context.Context, string, string) ([]float32, error) {
				return []float32{0.1}, nil
			}}, nil
		},
	}

	c.Run()

	if got != "key-a" {
		t.Errorf("apiKey = %q, want key-a", got)
	}
}
