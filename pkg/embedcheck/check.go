// Package embedcheck generates a single embedding to confirm the embedding
// provider key and model are usable.
package embedcheck

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/vertti/ragcheck/pkg/check"
	"github.com/vertti/ragcheck/pkg/config"
)

const (
	// DefaultModel matches the model the ingest worker embeds chunks with.
	DefaultModel = "text-embedding-004"
	// DefaultTimeout bounds the embedding call when RAGCHECK_TIMEOUT is unset.
	DefaultTimeout = 30 * time.Second
	sampleText     = "ragcheck embedding sample"
)

// Embedder returns the embedding of one text.
type Embedder interface {
	Embed(ctx context.Context, model, text string) ([]float32, error)
	Close() error
}

// Factory creates an Embedder for an API key.
type Factory func(ctx context.Context, apiKey string) (Embedder, error)

// NewGeminiEmbedder is the Factory backed by the Gemini API.
func NewGeminiEmbedder(ctx context.Context, apiKey string) (Embedder, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &geminiEmbedder{client: client}, nil
}

type geminiEmbedder struct {
	client *genai.Client
}

func (g *geminiEmbedder) Embed(ctx context.Context, model, text string) ([]float32, error) {
	res, err := g.client.EmbeddingModel(model).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	if res == nil || res.Embedding == nil {
		return nil, nil
	}
	return res.Embedding.Values, nil
}

func (g *geminiEmbedder) Close() error {
	return g.client.Close()
}

// Check embeds a fixed sample string.
type Check struct {
	Config  *config.Config
	Factory Factory // injected for testing
}

// Run executes the embedding check.
func (c *Check) Run() check.Result {
	model := c.Config.GetDefault("EMBEDDING_MODEL", DefaultModel)
	return check.Attempt("embedding: "+model, func() (check.Metadata, error) {
		values, err := c.Config.Require("GEMINI_API_KEY")
		if err != nil {
			return nil, err
		}
		// Several keys may be configured for rotation; the first one is used.
		apiKey := strings.TrimSpace(strings.Split(values[0], ",")[0])
		if apiKey == "" {
			return nil, &check.MissingConfigError{Key: "GEMINI_API_KEY"}
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.Config.Duration("RAGCHECK_TIMEOUT", DefaultTimeout))
		defer cancel()

		embedder, err := c.Factory(ctx, apiKey)
		if err != nil {
			return nil, fmt.Errorf("create client: %w", err)
		}
		defer func() { _ = embedder.Close() }()

		vec, err := embedder.Embed(ctx, model, sampleText)
		if err != nil {
			if isUnknownModel(err) {
				return nil, check.Absent("model "+model, err.Error())
			}
			return nil, err
		}
		if len(vec) == 0 {
			return nil, check.Absent("embedding values", "provider returned an empty vector")
		}
		return check.Metadata{
			"model":      model,
			"dimensions": strconv.Itoa(len(vec)),
		}, nil
	})
}

func isUnknownModel(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "404") && strings.Contains(strings.ToLower(msg), "model")
}
