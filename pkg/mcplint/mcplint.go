// Package mcplint is the public entry point for analyzing a batch of MCP
// tool contracts: wire up a Loader and an embedding Provider, call
// Analyse, get back a model.AnalysisResult.
package mcplint

import (
	"context"
	"log/slog"

	"github.com/syrin-labs/mcplint/internal/config"
	"github.com/syrin-labs/mcplint/internal/embeddings"
	"github.com/syrin-labs/mcplint/internal/embeddings/local"
	"github.com/syrin-labs/mcplint/internal/embeddings/openaiembed"
	"github.com/syrin-labs/mcplint/internal/model"
	"github.com/syrin-labs/mcplint/internal/observability"
	"github.com/syrin-labs/mcplint/internal/orchestrator"
	"github.com/syrin-labs/mcplint/internal/rules"
)

// Loader is the RawTool source an Analyser pulls from. orchestrator.Loader,
// internal/mcploader's Loader/MultiLoader, and internal/loader's
// PreCheckingLoader all satisfy it.
type Loader interface {
	Load(ctx context.Context) ([]model.RawTool, error)
}

// Analyser runs the full analysis pipeline against one Loader.
type Analyser struct {
	orch *orchestrator.Orchestrator
}

// Options configures an Analyser's construction.
type Options struct {
	// Config supplies analysis/embedding/logging settings. A nil Config
	// uses config.Default().
	Config *config.Config

	// Logger receives pipeline logs. A nil Logger uses slog.Default().
	Logger *slog.Logger

	// Metrics, when non-nil, records per-rule diagnostic and panic
	// counts. Most callers can leave this nil.
	Metrics *observability.Metrics
}

// New builds an Analyser over loader, selecting an embeddings.Provider
// per cfg.Embedding.Provider.
func New(loader Loader, opts Options) (*Analyser, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	provider, err := buildProvider(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	embedSvc := embeddings.New(provider)
	if opts.Metrics != nil {
		embedSvc = embedSvc.WithCacheMetrics(observability.NewEmbeddingCacheMetricsAdapter(opts.Metrics))
	}

	orch := orchestrator.New(orchestrator.LoaderFunc(loader.Load), embedSvc, rules.DefaultRuleset(), logger)
	if opts.Metrics != nil {
		orch = orch.WithMetrics(observability.NewRuleMetricsAdapter(opts.Metrics))
		orch = orch.WithPipelineMetrics(observability.NewOrchestratorMetricsAdapter(opts.Metrics))
	}

	return &Analyser{orch: orch}, nil
}

func buildProvider(cfg config.EmbeddingConfig) (embeddings.Provider, error) {
	switch cfg.Provider {
	case "openai":
		return openaiembed.New(openaiembed.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model})
	default:
		return local.New(), nil
	}
}

// Analyse runs the pipeline with the given analysis settings and returns
// the synthesized result.
func (a *Analyser) Analyse(ctx context.Context, cfg config.AnalysisConfig) (*model.AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	return a.orch.Analyse(ctx, orchestrator.Options{
		Strict:    cfg.Strict,
		Selectors: cfg.Rules,
	})
}
