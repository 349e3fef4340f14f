package rules

import (
	"fmt"

	"github.com/syrin-labs/mcplint/internal/model"
)

// Behavioral rules have no static signal: their check is registered as a
// no-op so the codes are countable and documented, and they instead expose
// a typed context acceptor that an external test orchestrator calls once
// it has actually executed a tool. None of this package runs that
// orchestrator; it only knows how to turn its reported facts into
// Diagnostics.

// ToolNotFoundContext backs E000.
type ToolNotFoundContext struct {
	ToolName   string
	ScriptName string
}

func (c ToolNotFoundContext) Diagnose() model.Diagnostic {
	return diag("E000", model.SeverityError, c.ToolName, "",
		fmt.Sprintf("script %q references tool %q, which was not found", c.ScriptName, c.ToolName))
}

// InputValidationContext backs E200.
type InputValidationContext struct {
	ToolName    string
	TestName    string
	TestInput   any
	Error       string
	ParsedError string
}

func (c InputValidationContext) Diagnose() model.Diagnostic {
	d := diag("E200", model.SeverityError, c.ToolName, "",
		fmt.Sprintf("input validation failed: %s", c.Error))
	d.Context = map[string]any{"testName": c.TestName, "testInput": c.TestInput, "parsedError": c.ParsedError}
	return d
}

// OutputValidationContext backs E300.
type OutputValidationContext struct {
	ToolName             string
	TestName             string
	TestInput            any
	ExpectedOutputSchema any
	Error                string
	Details              any
}

func (c OutputValidationContext) Diagnose() model.Diagnostic {
	d := diag("E300", model.SeverityError, c.ToolName, "",
		fmt.Sprintf("output validation failed: %s", c.Error))
	d.Context = map[string]any{
		"testName": c.TestName, "testInput": c.TestInput,
		"expectedOutputSchema": c.ExpectedOutputSchema, "details": c.Details,
	}
	return d
}

// OutputExplosionContext backs E301.
type OutputExplosionContext struct {
	ToolName    string
	ActualSize  int
	MaxSize     int
	LimitString string
}

func (c OutputExplosionContext) Diagnose() model.Diagnostic {
	d := diag("E301", model.SeverityError, c.ToolName, "",
		fmt.Sprintf("output size %d exceeds limit %d (%s)", c.ActualSize, c.MaxSize, c.LimitString))
	d.Context = map[string]any{"actualSize": c.ActualSize, "maxSize": c.MaxSize, "limitString": c.LimitString}
	return d
}

// ExecutionFailedContext backs E400.
type ExecutionFailedContext struct {
	ToolName string
	Errors   []string
}

func (c ExecutionFailedContext) Diagnose() model.Diagnostic {
	d := diag("E400", model.SeverityError, c.ToolName, "", "tool execution failed")
	d.Context = map[string]any{"errors": c.Errors}
	return d
}

// UnboundedExecutionContext backs E403.
type UnboundedExecutionContext struct {
	ToolName        string
	TimedOut        bool
	DeclaredTimeout *int
	ActualTimeoutMs *int
	Errors          []string
}

func (c UnboundedExecutionContext) Diagnose() model.Diagnostic {
	d := diag("E403", model.SeverityError, c.ToolName, "", "tool execution was not bounded by its declared timeout")
	d.Context = map[string]any{
		"timedOut": c.TimedOut, "declaredTimeout": c.DeclaredTimeout,
		"actualTimeoutMs": c.ActualTimeoutMs, "errors": c.Errors,
	}
	return d
}

// SideEffectOperation is one observed side effect within E500's context.
type SideEffectOperation struct {
	Operation string
	Path      string
}

// SideEffectDetectedContext backs E500.
type SideEffectDetectedContext struct {
	ToolName    string
	SideEffects []SideEffectOperation
}

func (c SideEffectDetectedContext) Diagnose() model.Diagnostic {
	d := diag("E500", model.SeverityError, c.ToolName, "",
		fmt.Sprintf("tool performed %d undeclared side effect(s)", len(c.SideEffects)))
	d.Context = map[string]any{"sideEffects": c.SideEffects}
	return d
}

// HiddenDependencyObservation names a tool invoked without being declared.
type HiddenDependencyObservation struct {
	ToolName  string
	Timestamp string
}

// HiddenDependencyContext backs E501.
type HiddenDependencyContext struct {
	ToolName             string
	HiddenDependencies   []HiddenDependencyObservation
	MissingDependencies  []string
	DeclaredDependencies []string
}

func (c HiddenDependencyContext) Diagnose() model.Diagnostic {
	d := diag("E501", model.SeverityError, c.ToolName, "",
		fmt.Sprintf("observed %d call(s) to tools not in the declared dependency list", len(c.HiddenDependencies)))
	d.Context = map[string]any{
		"hiddenDependencies": c.HiddenDependencies, "missingDependencies": c.MissingDependencies,
		"declaredDependencies": c.DeclaredDependencies,
	}
	return d
}

// UnexpectedTestResultContext backs E600.
type UnexpectedTestResultContext struct {
	ToolName          string
	TestName          string
	ExpectedOutcome   string
	ActualOutcome     string
	ExpectedErrorType string
	ActualErrorType   string
	ExpectedErrorCode string
	ActualErrorCode   string
}

func (c UnexpectedTestResultContext) Diagnose() model.Diagnostic {
	d := diag("E600", model.SeverityError, c.ToolName, "",
		fmt.Sprintf("test %q expected outcome %q but got %q", c.TestName, c.ExpectedOutcome, c.ActualOutcome))
	d.Context = map[string]any{
		"testName": c.TestName, "expectedOutcome": c.ExpectedOutcome, "actualOutcome": c.ActualOutcome,
		"expectedErrorType": c.ExpectedErrorType, "actualErrorType": c.ActualErrorType,
		"expectedErrorCode": c.ExpectedErrorCode, "actualErrorCode": c.ActualErrorCode,
	}
	return d
}

// WeakSchemaContext backs W110.
type WeakSchemaContext struct {
	ToolName        string
	SchemasMatch    bool
	MismatchDetails any
}

func (c WeakSchemaContext) Diagnose() model.Diagnostic {
	d := diag("W110", model.SeverityWarning, c.ToolName, "",
		"declared output schema does not match observed output shape")
	d.Context = map[string]any{"schemasMatch": c.SchemasMatch, "mismatchDetails": c.MismatchDetails}
	return d
}

// HighEntropyOutputContext backs W300.
type HighEntropyOutputContext struct {
	ToolName         string
	EntropyScore     float64
	Reason           string
	EntropyThreshold *float64
}

func (c HighEntropyOutputContext) Diagnose() model.Diagnostic {
	threshold := 0.7
	if c.EntropyThreshold != nil {
		threshold = *c.EntropyThreshold
	}
	score := clampUnit(c.EntropyScore)
	d := diag("W300", model.SeverityWarning, c.ToolName, "",
		fmt.Sprintf("output entropy %.2f exceeds threshold %.2f", score, threshold))
	d.Context = map[string]any{"entropyScore": score, "reason": c.Reason, "entropyThreshold": threshold}
	return d
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// UnstableField names one field W301 found non-deterministic across runs.
type UnstableField struct {
	FieldName string
	Reason    string
}

// UnstableDefaultsContext backs W301.
type UnstableDefaultsContext struct {
	ToolName       string
	UnstableFields []UnstableField
}

func (c UnstableDefaultsContext) Diagnose() model.Diagnostic {
	d := diag("W301", model.SeverityWarning, c.ToolName, "",
		fmt.Sprintf("%d field(s) produced unstable default values across runs", len(c.UnstableFields)))
	d.Context = map[string]any{"unstableFields": c.UnstableFields}
	return d
}
