package rules

import "github.com/syrin-labs/mcplint/internal/model"

// DefaultRuleset returns the full catalog in registration order: E1xx
// static and relational checks, the behavioral E-codes (registered as
// no-ops here — see catalog_behavioral.go for their context acceptors),
// then W1xx checks, then the behavioral W-codes.
func DefaultRuleset() []Rule {
	return []Rule{
		NewFunc("E100", model.SeverityError, "Missing Output Schema",
			"a tool with no output fields appears to return data or accept inputs", e100MissingOutputSchema),
		NewFunc("E101", model.SeverityError, "Missing Tool Description",
			"a tool has no description", e101MissingDescription),
		NewFunc("E102", model.SeverityError, "Underspecified Required Input",
			"an input has a broad type with no description, enum, pattern, or example", e102UnderspecifiedInput),
		NewFunc("E103", model.SeverityError, "Unsafe Tool Chaining: Type Mismatch",
			"a high-confidence dependency connects incompatible types", e103TypeMismatch),
		NewFunc("E104", model.SeverityError, "Required Input Not Mentioned in Description",
			"a required input is not referenced by the tool description", e104RequiredInputNotDescribed),
		NewFunc("E105", model.SeverityError, "Unsafe Tool Chaining: Free-Text Propagation",
			"a high-confidence dependency propagates unconstrained free text", e105FreeTextPropagation),
		NewFunc("E106", model.SeverityError, "Output Not Guaranteed",
			"an optional or nullable output feeds a required, non-nullable input", e106OutputNotGuaranteed),
		NewFunc("E107", model.SeverityError, "Circular Tool Dependency",
			"tools form a dependency cycle", e107CircularDependency),
		NewFunc("E108", model.SeverityError, "Implicit User Input",
			"a required input looks user-supplied with no upstream producer", e108ImplicitUserInput),
		NewFunc("E109", model.SeverityError, "Non-Serializable Output",
			"an output declares a non-serializable type", e109NonSerializableOutput),
		NewFunc("E110", model.SeverityError, "Hard Tool Ambiguity",
			"two tools are difficult to distinguish by description and schema", e110HardAmbiguity),
		NewFunc("E112", model.SeverityError, "Sensitive Parameter Detection",
			"an input looks like a credential or secret", e112SensitiveParameter),
		NewFunc("E113", model.SeverityError, "Duplicate Tool Names",
			"two or more tools share a name, ignoring case", e113DuplicateNames),

		NewFunc("E000", model.SeverityError, "Tool Not Found", "a test referenced a tool that does not exist", nil),
		NewFunc("E200", model.SeverityError, "Input Validation Failed", "observed input failed schema validation", nil),
		NewFunc("E300", model.SeverityError, "Output Validation Failed", "observed output failed schema validation", nil),
		NewFunc("E301", model.SeverityError, "Output Explosion", "observed output exceeded its size limit", nil),
		NewFunc("E400", model.SeverityError, "Tool Execution Failed", "a tool invocation failed", nil),
		NewFunc("E403", model.SeverityError, "Unbounded Execution", "a tool exceeded its declared timeout", nil),
		NewFunc("E500", model.SeverityError, "Side Effect Detected", "a tool performed an undeclared side effect", nil),
		NewFunc("E501", model.SeverityError, "Hidden Dependency", "a tool called another tool it did not declare", nil),
		NewFunc("E600", model.SeverityError, "Unexpected Test Result", "a behavioral test produced an unexpected outcome", nil),

		NewFunc("W100", model.SeverityWarning, "Implicit Dependency",
			"a mid-confidence dependency's source tool is unmentioned downstream", w100ImplicitDependency),
		NewFunc("W101", model.SeverityWarning, "Free-text output without normalization",
			"an output is unconstrained free text", w101FreeTextOutput),
		NewFunc("W102", model.SeverityWarning, "Missing Examples",
			"a user-facing input has no example", w102MissingExamples),
		NewFunc("W103", model.SeverityWarning, "Overloaded Responsibility",
			"a description suggests more than one responsibility", w103OverloadedResponsibility),
		NewFunc("W104", model.SeverityWarning, "Generic Description",
			"a description is vague with no concrete noun", w104GenericDescription),
		NewFunc("W105", model.SeverityWarning, "Optional Used As Required Downstream",
			"a high-confidence dependency's source is optional/nullable but required downstream", w105OptionalAsRequiredDownstream),
		NewFunc("W106", model.SeverityWarning, "Broad Output Schema",
			"an output has an unconstrained any/object schema", w106BroadOutputSchema),
		NewFunc("W107", model.SeverityWarning, "Multiple Entry Points",
			"multiple tools require the same domain concept as input", w107MultipleEntryPoints),
		NewFunc("W108", model.SeverityWarning, "Hidden Side Effects",
			"a tool looks like a mutation but its outputs do not indicate state change", w108HiddenSideEffects),
		NewFunc("W109", model.SeverityWarning, "Output Not Reusable",
			"every output of a tool is display-only text", w109OutputNotReusable),
		NewFunc("W111", model.SeverityWarning, "Description quality",
			"a description is too short or too long", w111DescriptionQuality),
		NewFunc("W112", model.SeverityWarning, "Tool count",
			"the server exposes more than 20 tools", w112ToolCount),
		NewFunc("W113", model.SeverityWarning, "Optional Parameter Missing Example",
			"an optional input has no example and no enum", w113OptionalParameterMissingExample),
		NewFunc("W114", model.SeverityWarning, "Schema Depth",
			"a field nests more than 3 levels deep", w114SchemaDepth),
		NewFunc("W115", model.SeverityWarning, "Token Cost",
			"estimated prompt token cost exceeds 1000", w115TokenCost),
		NewFunc("W116", model.SeverityWarning, "Schema-Description Drift",
			"at least half of a tool's schema fields are unmentioned in its description", w116SchemaDescriptionDrift),
		NewFunc("W117", model.SeverityWarning, "Idempotency Signal Missing",
			"a mutation description carries no idempotency signal", w117IdempotencySignalMissing),

		NewFunc("W110", model.SeverityWarning, "Weak Schema", "observed output shape diverges from the declared schema", nil),
		NewFunc("W300", model.SeverityWarning, "High Entropy Output", "observed output entropy exceeded threshold", nil),
		NewFunc("W301", model.SeverityWarning, "Unstable Defaults", "observed defaults were not stable across runs", nil),
	}
}
