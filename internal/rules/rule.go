package rules

import "github.com/syrin-labs/mcplint/internal/model"

// Rule is one diagnostic check in the catalog. Implementations must be
// side-effect free and deterministic: the same AnalysisContext always
// produces the same diagnostics.
type Rule interface {
	Code() string
	Severity() model.Severity
	Name() string
	Description() string
	Check(ctx *AnalysisContext) []model.Diagnostic
}

// Func adapts a plain function into a Rule: a small function-valued
// building block in place of a one-method interface implementation
// wherever a struct would carry no extra state.
type Func struct {
	code        string
	severity    model.Severity
	name        string
	description string
	fn          func(ctx *AnalysisContext) []model.Diagnostic
}

// NewFunc builds a Func-backed Rule. fn may be nil, in which case Check
// always returns an empty slice — used for the behavioral catalog entries
// that are registered (and therefore selectable, countable, and
// documented) but have no static-analysis-time check.
func NewFunc(code string, severity model.Severity, name, description string, fn func(ctx *AnalysisContext) []model.Diagnostic) *Func {
	return &Func{code: code, severity: severity, name: name, description: description, fn: fn}
}

func (r *Func) Code() string        { return r.code }
func (r *Func) Severity() model.Severity { return r.severity }
func (r *Func) Name() string        { return r.name }
func (r *Func) Description() string { return r.description }

func (r *Func) Check(ctx *AnalysisContext) []model.Diagnostic {
	if r.fn == nil {
		return nil
	}
	return r.fn(ctx)
}

// diag is a small constructor helper used throughout the catalog files to
// keep each rule's Check body to the lines that actually compute the
// finding.
func diag(code string, severity model.Severity, toolName, field, message string) model.Diagnostic {
	return model.Diagnostic{
		Code:     code,
		Severity: severity,
		Tool:     toolName,
		Field:    field,
		Message:  message,
	}
}

// diagSuggest is diag plus a remediation suggestion.
func diagSuggest(code string, severity model.Severity, toolName, field, message, suggestion string) model.Diagnostic {
	d := diag(code, severity, toolName, field, message)
	d.Suggestion = suggestion
	return d
}
