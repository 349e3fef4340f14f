package rules

import (
	"fmt"
	"log/slog"

	"github.com/syrin-labs/mcplint/internal/model"
)

// MetricsRecorder receives per-rule counts from an Engine run. It is a
// narrow interface rather than a direct dependency on the metrics package
// so this package stays decoupled from Prometheus specifics.
type MetricsRecorder interface {
	RecordDiagnostic(code string)
	RecordPanic(code string)
}

// Engine holds a fixed registration-order list of rules and runs them over
// an AnalysisContext, collecting diagnostics and isolating per-rule
// failures so one broken rule never aborts the others.
type Engine struct {
	rules   []Rule
	logger  *slog.Logger
	metrics MetricsRecorder
}

// NewEngine builds an engine from an ordered rule list. Passing nil for
// logger falls back to slog.Default(), so callers never have to thread a
// logger through a constructor that rarely fails. metrics may be nil.
func NewEngine(logger *slog.Logger, ruleset []Rule, metrics MetricsRecorder) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{rules: ruleset, logger: logger, metrics: metrics}
}

// Run executes every rule the selector allows, in registration order, and
// returns the concatenated diagnostic list.
func (e *Engine) Run(ctx *AnalysisContext, selectors Filter) []model.Diagnostic {
	var out []model.Diagnostic
	for _, r := range e.rules {
		if !selectors.Allows(r.Code()) {
			continue
		}
		out = append(out, e.runOne(r, ctx)...)
	}
	return out
}

// runOne invokes a single rule with panic isolation: a rule that panics is
// logged with its code and contributes no diagnostics, but does not stop
// the remaining rules from running.
func (e *Engine) runOne(r Rule, ctx *AnalysisContext) (diags []model.Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("rule panicked", "code", r.Code(), "recovered", fmt.Sprint(rec))
			if e.metrics != nil {
				e.metrics.RecordPanic(r.Code())
			}
			diags = nil
		}
	}()
	diags = r.Check(ctx)
	if e.metrics != nil {
		for range diags {
			e.metrics.RecordDiagnostic(r.Code())
		}
	}
	return diags
}

// Rules exposes the registered rule list, e.g. for documentation/listing
// commands that enumerate every known code.
func (e *Engine) Rules() []Rule {
	return e.rules
}
