// Package local implements embeddings.Provider with a deterministic,
// offline text embedder. It is the analyzer's default provider: the core
// analysis pipeline never talks to a language model by default, so
// producing a vector cannot depend on a network round trip to an LLM or
// hosted embedding API. This is built on the standard library's hashing
// primitives (justified in DESIGN.md): a feature-hashing bag-of-n-grams,
// the standard trick for turning text into a fixed-width vector without a
// trained model.
package local

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/syrin-labs/mcplint/internal/embeddings"
)

// Provider is a deterministic, dependency-free embeddings.Provider.
type Provider struct {
	dimension int
}

var _ embeddings.Provider = (*Provider)(nil)

// New returns a Provider producing vectors of embeddings.Dimension width.
func New() *Provider {
	return &Provider{dimension: embeddings.Dimension}
}

// Name returns the provider name.
func (p *Provider) Name() string { return "local-hash" }

// Embed deterministically hashes every whitespace-separated word of text
// (as a whole-word unigram, plus its space-padded character trigrams) into
// a fixed-width vector using
// signed feature hashing: each n-gram votes +1 or -1 on one bucket,
// selected and signed by an FNV-1a hash. Texts sharing more n-grams land
// closer together under cosine similarity, which is the morphological
// and substring-level signal this analyzer actually needs (it cannot
// capture true synonymy without a trained model, but neither can any
// token-overlap heuristic — this is a strict improvement in recall for
// near-miss spellings and shared roots).
func (p *Provider) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, p.dimension)
	norm := strings.ToLower(strings.TrimSpace(text))
	if norm == "" {
		return v, nil
	}

	words := strings.Fields(norm)
	for _, w := range words {
		hashToken(v, w)
		padded := "  " + w + "  "
		for i := 0; i+3 <= len(padded); i++ {
			hashToken(v, padded[i:i+3])
		}
	}

	return v, nil
}

func hashToken(v []float32, token string) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	sum := h.Sum32()

	bucket := int(sum) % len(v)

	sign := float32(1)
	if sum&1 == 1 {
		sign = -1
	}
	v[bucket] += sign
}
