// Package model holds the data types shared by every stage of the analysis
// pipeline: raw loader output, the normalized tool representation, inferred
// dependencies, diagnostics, and the final result. Later pipeline stages are
// pure functions of earlier ones, so these types carry no behavior beyond
// small accessors — the verbs live in the stage packages (schema, index,
// depgraph, rules, verdict).
package model

// RawTool is the loader's output for a single tool before normalization.
type RawTool struct {
	Name string

	// Description is the tool's natural-language description, verbatim.
	Description string

	// InputSchema and OutputSchema are opaque JSON Schema fragments, decoded
	// into map[string]any (or nil when the tool declared none).
	InputSchema  map[string]any
	OutputSchema map[string]any
}

// FieldType is the normalizer's flat type vocabulary: a JSON Schema
// primitive, the sentinel "any", or a "|"-joined union with null stripped.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
	TypeNull    FieldType = "null"
	TypeAny     FieldType = "any"
)

// FieldSpec is a single flattened field produced by the normalizer.
type FieldSpec struct {
	Tool string
	Name string

	Type FieldType

	Required    bool
	Nullable    bool
	Description string

	Enum    []string
	Pattern string
	Format  string
	Example any

	// Properties holds the nested fields for object-typed fields and for
	// array fields (the merged field list of the array's item schema(s)).
	Properties []FieldSpec
}

// ToolSpec is a fully normalized tool.
type ToolSpec struct {
	Name        string
	Description string

	Inputs  []FieldSpec
	Outputs []FieldSpec

	// DescriptionTokens are lowercase alphanumeric tokens of length >= 3
	// drawn from name + description.
	DescriptionTokens []string

	// DescriptionEmbedding is nil until the embedding stage runs.
	DescriptionEmbedding []float32

	// InputEmbeddings and OutputEmbeddings map field name to vector, one
	// map per direction. Nil until the embedding stage runs.
	InputEmbeddings  map[string][]float32
	OutputEmbeddings map[string][]float32
}

// InputField looks up an input field by name, returning ok=false if absent.
func (t *ToolSpec) InputField(name string) (FieldSpec, bool) {
	for _, f := range t.Inputs {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// OutputField looks up an output field by name, returning ok=false if absent.
func (t *ToolSpec) OutputField(name string) (FieldSpec, bool) {
	for _, f := range t.Outputs {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Dependency is a directed edge: an output field of one tool probably feeds
// an input field of another.
type Dependency struct {
	FromTool  string
	FromField string
	ToTool    string
	ToField   string

	Confidence float64
}

// Severity classifies a Diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single machine-readable finding.
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string

	Tool       string
	Field      string
	Suggestion string

	// Context holds structured, code-specific detail (cycle members, the
	// other tool in a pairwise comparison, etc).
	Context map[string]any
}

// Verdict is the single-word summary of an analysis.
type Verdict string

const (
	VerdictPass             Verdict = "pass"
	VerdictPassWithWarnings Verdict = "pass-with-warnings"
	VerdictFail             Verdict = "fail"
)

// AnalysisResult is the pipeline's final output.
type AnalysisResult struct {
	RunID   string
	Verdict Verdict

	Diagnostics []Diagnostic
	Errors      []Diagnostic
	Warnings    []Diagnostic

	Dependencies []Dependency
	ToolCount    int
}
