package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/syrin-labs/mcplint/internal/embeddings"
	"github.com/syrin-labs/mcplint/internal/model"
)

const (
	midConfidenceLow  = 0.6
	midConfidenceHigh = 0.8
)

func w100ImplicitDependency(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, d := range ctx.Dependencies {
		if d.Confidence < midConfidenceLow || d.Confidence >= midConfidenceHigh {
			continue
		}
		toTool, ok := ctx.ToolByName(d.ToTool)
		if !ok {
			continue
		}
		upstreamTokens := splitIdentifier(d.FromTool)
		descTokens := toTokenSet(splitIdentifier(toTool.Description)...)
		if containsAllTokens(upstreamTokens, descTokens) {
			continue
		}
		out = append(out, diag("W100", model.SeverityWarning, d.ToTool, d.ToField,
			fmt.Sprintf("mid-confidence dependency on %s is not mentioned in %s's description", d.FromTool, d.ToTool)))
	}
	return out
}

func containsAllTokens(tokens []string, set map[string]bool) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if !set[t] {
			return false
		}
	}
	return true
}

func w101FreeTextOutput(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		for _, f := range flatten(t.Outputs) {
			if f.Type == model.TypeString && len(f.Enum) == 0 && strings.TrimSpace(f.Pattern) == "" && strings.TrimSpace(f.Description) == "" {
				out = append(out, diag("W101", model.SeverityWarning, t.Name, f.Name,
					fmt.Sprintf("output %q is free text with no enum, pattern, or description", f.Name)))
			}
		}
	}
	return out
}

func w102MissingExamples(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		for _, f := range flatten(t.Inputs) {
			if f.Example != nil {
				continue
			}
			if nameOrDescriptionMentions(f, userInputTokens) {
				out = append(out, diag("W102", model.SeverityWarning, t.Name, f.Name,
					fmt.Sprintf("user-facing input %q has no example", f.Name)))
			}
		}
	}
	return out
}

var descriptionVerbs = toTokenSet("get", "fetch", "create", "update", "delete", "list",
	"check", "send", "process", "manage", "retrieve", "set", "remove", "build", "generate")

func w103OverloadedResponsibility(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		verbCount := 0
		for _, tok := range splitIdentifier(t.Description) {
			if descriptionVerbs[tok] {
				verbCount++
			}
		}
		splitCount := strings.Count(strings.ToLower(t.Description), " and ") +
			strings.Count(strings.ToLower(t.Description), " or ") +
			strings.Count(t.Description, ",")
		if verbCount > 3 || splitCount > 2 {
			out = append(out, diag("W103", model.SeverityWarning, t.Name, "",
				"description suggests the tool has more than one responsibility"))
		}
	}
	return out
}

func w104GenericDescription(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		tokens := splitIdentifier(t.Description)
		hasVague := containsAnyToken(tokens, vagueVerbs)
		hasConcrete := containsAnyToken(tokens, concreteNouns)
		if hasVague && !hasConcrete {
			out = append(out, diag("W104", model.SeverityWarning, t.Name, "",
				"description uses a vague verb with no concrete noun"))
		}
	}
	return out
}

func w105OptionalAsRequiredDownstream(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, d := range ctx.Dependencies {
		if d.Confidence < highConfidence {
			continue
		}
		fromTool, ok := ctx.ToolByName(d.FromTool)
		if !ok {
			continue
		}
		toTool, ok := ctx.ToolByName(d.ToTool)
		if !ok {
			continue
		}
		outField, ok := fromTool.OutputField(d.FromField)
		if !ok {
			continue
		}
		inField, ok := toTool.InputField(d.ToField)
		if !ok {
			continue
		}
		if (!outField.Required || outField.Nullable) && inField.Required {
			out = append(out, diag("W105", model.SeverityWarning, d.ToTool, d.ToField,
				fmt.Sprintf("%s.%s is optional/nullable but feeds required %s.%s", d.FromTool, d.FromField, d.ToTool, d.ToField)))
		}
	}
	return out
}

func w106BroadOutputSchema(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		for _, f := range t.Outputs {
			if f.Type == model.TypeAny || (f.Type == model.TypeObject && len(f.Properties) == 0) {
				out = append(out, diag("W106", model.SeverityWarning, t.Name, f.Name,
					fmt.Sprintf("output %q has an unconstrained schema (%s)", f.Name, f.Type)))
			}
		}
	}
	return out
}

func w107MultipleEntryPoints(ctx *AnalysisContext) []model.Diagnostic {
	groups := map[string]map[string]bool{}
	for _, t := range ctx.Tools {
		seen := map[string]bool{}
		for _, f := range t.Inputs {
			if !f.Required {
				continue
			}
			concept := domainConceptOf(f.Name)
			if concept == "" || seen[concept] {
				continue
			}
			seen[concept] = true
			if groups[concept] == nil {
				groups[concept] = map[string]bool{}
			}
			groups[concept][t.Name] = true
		}
	}

	var out []model.Diagnostic
	concepts := make([]string, 0, len(groups))
	for concept := range groups {
		concepts = append(concepts, concept)
	}
	sort.Strings(concepts)
	for _, concept := range concepts {
		tools := groups[concept]
		if len(tools) < 2 {
			continue
		}
		names := make([]string, 0, len(tools))
		for n := range tools {
			names = append(names, n)
		}
		out = append(out, diag("W107", model.SeverityWarning, "", "",
			fmt.Sprintf("multiple tools require a %q input: %s", concept, strings.Join(sortedCopy(names), ", "))))
	}
	return out
}

func w108HiddenSideEffects(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		tokens := append(splitIdentifier(t.Name), splitIdentifier(t.Description)...)
		if !containsAnyToken(tokens, mutationVerbs) {
			continue
		}
		if len(t.Outputs) == 0 {
			continue
		}
		stateChange := false
		for _, f := range t.Outputs {
			if containsAnyToken(splitIdentifier(f.Name), stateChangeTokens) {
				stateChange = true
				break
			}
		}
		if !stateChange {
			out = append(out, diag("W108", model.SeverityWarning, t.Name, "",
				"tool looks like a mutation but outputs do not indicate the resulting state"))
		}
	}
	return out
}

func w109OutputNotReusable(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		if len(t.Outputs) == 0 {
			continue
		}
		allDisplayOnly := true
		for _, f := range t.Outputs {
			if f.Type != model.TypeString || !nameOrDescriptionMentions(f, displayOnlyTokens) {
				allDisplayOnly = false
				break
			}
		}
		if allDisplayOnly {
			out = append(out, diag("W109", model.SeverityWarning, t.Name, "",
				"every output looks display-only; nothing here is reusable by another tool"))
		}
	}
	return out
}

func w111DescriptionQuality(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		n := len(strings.TrimSpace(t.Description))
		if n < 20 || n > 500 {
			out = append(out, diag("W111", model.SeverityWarning, t.Name, "",
				fmt.Sprintf("description length %d is outside the healthy 20-500 char range", n)))
		}
	}
	return out
}

func w112ToolCount(ctx *AnalysisContext) []model.Diagnostic {
	if len(ctx.Tools) > 20 {
		return []model.Diagnostic{diag("W112", model.SeverityWarning, "", "",
			fmt.Sprintf("server exposes %d tools, more than the recommended 20", len(ctx.Tools)))}
	}
	return nil
}

func w113OptionalParameterMissingExample(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		for _, f := range flatten(t.Inputs) {
			if f.Required || f.Example != nil || len(f.Enum) > 0 {
				continue
			}
			out = append(out, diag("W113", model.SeverityWarning, t.Name, f.Name,
				fmt.Sprintf("optional input %q has no example and no enum", f.Name)))
		}
	}
	return out
}

func w114SchemaDepth(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		for _, f := range append(append([]model.FieldSpec{}, t.Inputs...), t.Outputs...) {
			if d := schemaDepth(f); d > 3 {
				out = append(out, diag("W114", model.SeverityWarning, t.Name, f.Name,
					fmt.Sprintf("field %q nests %d levels deep", f.Name, d)))
			}
		}
	}
	return out
}

func w115TokenCost(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		chars := len(t.Description)
		numFields := len(t.Inputs) + len(t.Outputs)
		for _, f := range flatten(t.Inputs) {
			chars += len(f.Description)
		}
		for _, f := range flatten(t.Outputs) {
			chars += len(f.Description)
		}
		estimate := chars/4 + 20*numFields
		if estimate > 1000 {
			out = append(out, diag("W115", model.SeverityWarning, t.Name, "",
				fmt.Sprintf("estimated token cost %d exceeds 1000", estimate)))
		}
	}
	return out
}

func w116SchemaDescriptionDrift(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		descTokens := toTokenSet(t.DescriptionTokens...)
		all := append(append([]model.FieldSpec{}, flatten(t.Inputs)...), flatten(t.Outputs)...)
		var eligible, unmentioned int
		for _, f := range all {
			if len(f.Name) <= 3 {
				continue
			}
			eligible++
			if !containsAnyToken(splitIdentifier(f.Name), descTokens) {
				unmentioned++
			}
		}
		if eligible > 0 && unmentioned*2 >= eligible {
			out = append(out, diag("W116", model.SeverityWarning, t.Name, "",
				fmt.Sprintf("%d of %d schema fields are unmentioned in the description", unmentioned, eligible)))
		}
	}
	return out
}

var idempotentKeywords = toTokenSet("idempotent", "repeatable", "safe", "retry")

func w117IdempotencySignalMissing(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		mutation := false
		if ctx.Embeddings != nil {
			mutation = ctx.Embeddings.IsConceptMatch(t.DescriptionEmbedding, embeddings.ConceptMutation, 0.45)
		}
		if !mutation {
			mutation = containsAnyToken(splitIdentifier(t.Description), mutationVerbs)
		}
		if !mutation {
			continue
		}
		idempotent := false
		if ctx.Embeddings != nil {
			idempotent = ctx.Embeddings.IsConceptMatch(t.DescriptionEmbedding, embeddings.ConceptIdempotent, 0.45)
		}
		if !idempotent {
			idempotent = containsAnyToken(splitIdentifier(t.Description), idempotentKeywords)
		}
		if !idempotent {
			out = append(out, diag("W117", model.SeverityWarning, t.Name, "",
				"description describes a mutation with no idempotency signal"))
		}
	}
	return out
}

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}
