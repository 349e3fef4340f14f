// Package embeddings provides the analyzer's semantic-indexing service: a
// fixed-dimensional text embedding with a per-Service cache, plus a table
// of named concept anchors ("does this embedding semantically match
// concept C at threshold tau?").
//
// The service never talks to a language model by default: the default
// Provider is a deterministic local embedder
// (internal/embeddings/local). A network-backed Provider can be plugged
// in explicitly (internal/embeddings/openaiembed) by an operator who
// accepts that tradeoff for better semantic recall; the service itself is
// agnostic to which Provider it holds.
package embeddings

import (
	"context"
	"math"
	"strings"
	"sync"
)

// Dimension is the fixed embedding width every Provider in this repo
// produces. Keeping it a single constant lets cosine similarity assume
// equal-length vectors are comparable across providers that agree on it;
// providers that use a different native dimension (e.g. a real OpenAI
// model) are responsible for projecting or truncating to this width.
const Dimension = 384

// Provider maps text to a vector. Implementations need not cache or
// normalize; the Service wraps any Provider with both.
type Provider interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Name returns the provider name, used in logs and metrics.
	Name() string
}

// CacheMetrics receives a Service's cache hit/miss counts. Kept narrow so
// this package never has to import a metrics backend directly.
type CacheMetrics interface {
	RecordCacheHit()
	RecordCacheMiss()
}

// Service wraps a Provider with a cache and a concept-anchor table. Both
// belong to the Service and live as long as it does; they are not shared
// between Services. The zero value is not usable; construct with New.
type Service struct {
	provider Provider

	mu    sync.RWMutex
	cache map[string][]float32

	anchorsOnce sync.Once
	anchorsErr  error
	anchors     map[string][][]float32

	cacheMetrics CacheMetrics
}

// New wraps provider in a Service with an empty cache and uninitialized
// concept anchors.
func New(provider Provider) *Service {
	return &Service{
		provider: provider,
		cache:    make(map[string][]float32),
	}
}

// ProviderName reports which Provider backs this Service, for logs/metrics.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// WithCacheMetrics attaches a cache hit/miss recorder and returns the same
// Service for chaining. Most callers can leave this unset.
func (s *Service) WithCacheMetrics(m CacheMetrics) *Service {
	s.cacheMetrics = m
	return s
}

// Embed returns the cached embedding for text if present, otherwise asks
// the Provider, L2-normalizes the result, and caches it under the
// trimmed+lowercased key. A Provider failure yields an empty vector rather
// than propagating the error, so downstream semantic checks degrade to
// "no match" instead of aborting the analysis.
func (s *Service) Embed(ctx context.Context, text string) []float32 {
	key := normalizeKey(text)
	if key == "" {
		return nil
	}

	s.mu.RLock()
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		if s.cacheMetrics != nil {
			s.cacheMetrics.RecordCacheHit()
		}
		return v
	}
	s.mu.RUnlock()

	if s.cacheMetrics != nil {
		s.cacheMetrics.RecordCacheMiss()
	}

	v, err := s.provider.Embed(ctx, key)
	if err != nil || len(v) == 0 {
		return nil
	}
	v = l2Normalize(v)

	s.mu.Lock()
	s.cache[key] = v
	s.mu.Unlock()

	return v
}

func normalizeKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Cosine returns the cosine similarity of a and b. It is zero when either
// vector is empty or their lengths differ; otherwise it is their dot
// product, since Embed always returns L2-normalized vectors.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

func l2Normalize(v []float32) []float32 {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	if sumSq == 0 {
		return v
	}
	norm := math.Sqrt(sumSq)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// InitConceptAnchors embeds every phrase in every named concept group
// exactly once. It is idempotent and safe to call from multiple goroutines.
func (s *Service) InitConceptAnchors(ctx context.Context) error {
	s.anchorsOnce.Do(func() {
		anchors := make(map[string][][]float32, len(ConceptGroups))
		for name, phrases := range ConceptGroups {
			vectors := make([][]float32, 0, len(phrases))
			for _, phrase := range phrases {
				if v := s.Embed(ctx, phrase); len(v) > 0 {
					vectors = append(vectors, v)
				}
			}
			anchors[name] = vectors
		}
		s.anchors = anchors
	})
	return s.anchorsErr
}

// IsConceptMatch reports whether v's cosine similarity to any phrase
// vector in concept meets or exceeds tau. It returns false if v is empty
// or concept anchors have not been initialized.
func (s *Service) IsConceptMatch(v []float32, concept string, tau float64) bool {
	if len(v) == 0 || s.anchors == nil {
		return false
	}
	for _, anchor := range s.anchors[concept] {
		if Cosine(v, anchor) >= tau {
			return true
		}
	}
	return false
}

// FindBestMatchingField returns the field name with the highest cosine
// against v among fieldMap's entries, provided that best score also meets
// tau. It returns ok=false if v is empty or no candidate clears tau.
func (s *Service) FindBestMatchingField(v []float32, fieldMap map[string][]float32, tau float64) (name string, ok bool) {
	if len(v) == 0 {
		return "", false
	}
	best := -1.0
	for candidate, vec := range fieldMap {
		score := Cosine(v, vec)
		if score > best {
			best = score
			name = candidate
		}
	}
	if best < tau {
		return "", false
	}
	return name, true
}
