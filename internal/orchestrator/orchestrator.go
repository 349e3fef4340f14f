// Package orchestrator sequences the analysis pipeline — load, concept
// anchor initialization, normalize, index, infer, run rules, synthesize
// verdict — under a single overall deadline.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/syrin-labs/mcplint/internal/depgraph"
	"github.com/syrin-labs/mcplint/internal/embeddings"
	"github.com/syrin-labs/mcplint/internal/index"
	"github.com/syrin-labs/mcplint/internal/model"
	"github.com/syrin-labs/mcplint/internal/rules"
	"github.com/syrin-labs/mcplint/internal/schema"
	"github.com/syrin-labs/mcplint/internal/verdict"
)

// Loader produces the raw tool list the pipeline normalizes. It is the one
// collaborator boundary the core does not implement itself.
type Loader interface {
	Load(ctx context.Context) ([]model.RawTool, error)
}

// LoaderFunc adapts a plain function to a Loader.
type LoaderFunc func(ctx context.Context) ([]model.RawTool, error)

func (f LoaderFunc) Load(ctx context.Context) ([]model.RawTool, error) { return f(ctx) }

// Metrics receives pipeline-level timing and outcome counts from an
// Orchestrator: stage durations, stage failures by kind, completed-analysis
// counts by verdict, and the tool count seen per run. Every method takes
// only primitive types so this package never has to import a metrics
// backend to declare or satisfy it.
type Metrics interface {
	RecordStage(stage string, duration time.Duration)
	RecordStageError(stage, kind string)
	RecordAnalysis(verdict string, duration time.Duration)
	RecordToolsAnalyzed(n int)
}

// Options configures a single Analyse call.
type Options struct {
	Strict    bool
	Selectors []string
}

// Orchestrator wires a Loader and an embedding Service into the full
// pipeline. Construct with New; the zero value is not usable.
type Orchestrator struct {
	loader          Loader
	embeddings      *embeddings.Service
	ruleset         []rules.Rule
	logger          *slog.Logger
	metricsRecorder rules.MetricsRecorder
	metrics         Metrics
}

// New builds an Orchestrator. A nil ruleset falls back to
// rules.DefaultRuleset(); a nil logger falls back to slog.Default().
func New(loader Loader, embeddingService *embeddings.Service, ruleset []rules.Rule, logger *slog.Logger) *Orchestrator {
	if ruleset == nil {
		ruleset = rules.DefaultRuleset()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{loader: loader, embeddings: embeddingService, ruleset: ruleset, logger: logger}
}

// WithMetrics attaches a rule-diagnostic metrics recorder and returns the
// same Orchestrator for chaining.
func (o *Orchestrator) WithMetrics(recorder rules.MetricsRecorder) *Orchestrator {
	o.metricsRecorder = recorder
	return o
}

// WithPipelineMetrics attaches a pipeline-level metrics recorder (stage
// durations, stage errors, completed-analysis counts) and returns the same
// Orchestrator for chaining.
func (o *Orchestrator) WithPipelineMetrics(metrics Metrics) *Orchestrator {
	o.metrics = metrics
	return o
}

// Analyse runs the full pipeline under ctx's deadline. A timeout or
// cancellation at any stage aborts the whole call: no partial
// AnalysisResult is ever returned.
func (o *Orchestrator) Analyse(ctx context.Context, opts Options) (*model.AnalysisResult, error) {
	runStart := time.Now()

	loadStart := time.Now()
	rawTools, err := o.loadAndInitAnchors(ctx)
	if err != nil {
		o.recordStageError("load", err)
		return nil, err
	}
	o.recordStage("load", loadStart)

	if err := ctx.Err(); err != nil {
		timeoutErr := o.timeoutErr("load", err)
		o.recordStageError("load", timeoutErr)
		return nil, timeoutErr
	}

	if err := validateRawTools(rawTools); err != nil {
		stageErr := &StageError{Stage: "load", Kind: KindConfiguration, Cause: err}
		o.recordStageError("load", stageErr)
		return nil, stageErr
	}

	normalizeStart := time.Now()
	tools := o.normalize(rawTools)
	o.embedTools(ctx, tools)
	o.recordStage("normalize", normalizeStart)

	indexStart := time.Now()
	idx := index.Build(tools)
	o.recordStage("index", indexStart)

	inferStart := time.Now()
	deps := depgraph.Infer(tools)
	o.recordStage("infer", inferStart)

	rulesStart := time.Now()
	engine := rules.NewEngine(o.logger, o.ruleset, o.metricsRecorder)
	analysisCtx := &rules.AnalysisContext{Tools: tools, Dependencies: deps, Indexes: idx, Embeddings: o.embeddings}
	diagnostics := engine.Run(analysisCtx, rules.ParseSelectors(opts.Selectors))
	o.recordStage("rules", rulesStart)

	verdictStart := time.Now()
	v, errs, warns := verdict.Synthesize(diagnostics, opts.Strict)
	o.recordStage("verdict", verdictStart)

	if o.metrics != nil {
		o.metrics.RecordAnalysis(string(v), time.Since(runStart))
		o.metrics.RecordToolsAnalyzed(len(tools))
	}

	return &model.AnalysisResult{
		RunID:        uuid.NewString(),
		Verdict:      v,
		Diagnostics:  diagnostics,
		Errors:       errs,
		Warnings:     warns,
		Dependencies: deps,
		ToolCount:    len(tools),
	}, nil
}

// recordStage reports how long a completed stage took, when pipeline
// metrics are configured.
func (o *Orchestrator) recordStage(stage string, start time.Time) {
	if o.metrics != nil {
		o.metrics.RecordStage(stage, time.Since(start))
	}
}

// recordStageError reports a stage failure by the kind carried on err's
// *StageError, when pipeline metrics are configured.
func (o *Orchestrator) recordStageError(stage string, err error) {
	if o.metrics == nil {
		return
	}
	var stageErr *StageError
	kind := string(KindTransport)
	if errors.As(err, &stageErr) {
		kind = string(stageErr.Kind)
	}
	o.metrics.RecordStageError(stage, kind)
}

// loadAndInitAnchors races the loader's I/O against concept-anchor
// initialization: both block, so running them concurrently hides whichever
// is faster behind the slower one instead of paying for both in series.
func (o *Orchestrator) loadAndInitAnchors(ctx context.Context) ([]model.RawTool, error) {
	type loadResult struct {
		tools []model.RawTool
		err   error
	}

	loadCh := make(chan loadResult, 1)
	go func() {
		tools, err := o.loader.Load(ctx)
		loadCh <- loadResult{tools: tools, err: err}
	}()

	var anchorErr error
	if o.embeddings != nil {
		anchorErr = o.embeddings.InitConceptAnchors(ctx)
	}

	select {
	case res := <-loadCh:
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) || errors.Is(res.err, context.Canceled) {
				return nil, o.timeoutErr("load", res.err)
			}
			return nil, &StageError{Stage: "load", Kind: KindTransport, Cause: res.err}
		}
		if anchorErr != nil {
			return nil, &StageError{Stage: "embed-init", Kind: KindConfiguration, Cause: anchorErr}
		}
		return res.tools, nil
	case <-ctx.Done():
		return nil, o.timeoutErr("load", ctx.Err())
	}
}

func (o *Orchestrator) normalize(raw []model.RawTool) []model.ToolSpec {
	normalizer := schema.Normalizer{}
	tools := make([]model.ToolSpec, len(raw))
	for i, rt := range raw {
		tools[i] = normalizer.Tool(rt)
	}
	return tools
}

// embedTools fills in description and field embeddings when an embedding
// service is configured; it is a no-op otherwise, so callers that never
// wired one still get a fully functional token-based analysis.
func (o *Orchestrator) embedTools(ctx context.Context, tools []model.ToolSpec) {
	if o.embeddings == nil {
		return
	}
	for i := range tools {
		t := &tools[i]
		t.DescriptionEmbedding = o.embeddings.Embed(ctx, t.Name+" "+t.Description)

		t.InputEmbeddings = make(map[string][]float32, len(t.Inputs))
		for _, f := range t.Inputs {
			t.InputEmbeddings[f.Name] = o.embeddings.Embed(ctx, f.Name+" "+f.Description)
		}

		t.OutputEmbeddings = make(map[string][]float32, len(t.Outputs))
		for _, f := range t.Outputs {
			t.OutputEmbeddings[f.Name] = o.embeddings.Embed(ctx, f.Name+" "+f.Description)
		}
	}
}

func (o *Orchestrator) timeoutErr(stage string, cause error) error {
	return &StageError{Stage: stage, Kind: KindTimeout, Cause: fmt.Errorf("deadline exceeded: %w", cause)}
}

// validateRawTools enforces the loader boundary: every tool must have a
// non-empty name, or the whole batch is rejected naming the offending
// index.
func validateRawTools(raw []model.RawTool) error {
	for i, t := range raw {
		if t.Name == "" {
			return fmt.Errorf("tool at index %d has no name", i)
		}
	}
	return nil
}
