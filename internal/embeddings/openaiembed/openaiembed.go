// Package openaiembed is an optional embeddings.Provider backed by
// OpenAI's embedding models. It is never the analyzer's default (see
// internal/embeddings/local): wiring it in means accepting a live network
// dependency on an LLM provider, which the core analysis pipeline excludes
// from its own behavior by default. Operators opt in via config
// (embedding.provider: openai) when they want higher semantic recall than
// the local hashing embedder and accept that tradeoff.
package openaiembed

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/syrin-labs/mcplint/internal/embeddings"
)

// Provider implements embeddings.Provider using OpenAI's embeddings API.
type Provider struct {
	client *openai.Client
	model  string
}

var _ embeddings.Provider = (*Provider)(nil)

// Config configures the OpenAI-backed provider.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string // e.g. text-embedding-3-small
}

// New constructs a Provider, defaulting Model to text-embedding-3-small.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openaiembed: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return "openai" }

// Embed requests a single embedding and projects it to the analyzer's
// fixed Dimension so it stays comparable (by cosine similarity) with
// vectors produced by any other Provider in this repo: OpenAI's models
// return 1536 or 3072 dimensions, wider than embeddings.Dimension, so the
// response is folded down by summing equally-spaced chunks rather than
// truncated, to avoid discarding the tail of the vector entirely.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openaiembed: create embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openaiembed: no embedding returned")
	}

	return foldToDimension(resp.Data[0].Embedding, embeddings.Dimension), nil
}

func foldToDimension(v []float32, dim int) []float32 {
	if len(v) == dim {
		return v
	}
	out := make([]float32, dim)
	if len(v) == 0 {
		return out
	}
	for i, x := range v {
		out[i%dim] += x
	}
	return out
}
