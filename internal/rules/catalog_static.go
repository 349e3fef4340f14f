package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/syrin-labs/mcplint/internal/embeddings"
	"github.com/syrin-labs/mcplint/internal/model"
)

// highConfidence and cycleConfidence are the two dependency-confidence
// gates the relational rules use: most relational checks only look at
// edges that clear 0.8, while cycle detection (E107) and the mid-band
// implicit-dependency warning (W100) use the lower gates the catalog
// describes separately.
const (
	highConfidence  = 0.8
	cycleConfidence = 0.65
)

var safeWidenings = map[[2]model.FieldType]bool{
	{model.TypeNumber, model.TypeString}:  true,
	{model.TypeInteger, model.TypeString}: true,
	{model.TypeArray, model.TypeString}:   true,
	{model.TypeObject, model.TypeString}:  true,
}

func typeCompatible(out, in model.FieldType) bool {
	return out == in || safeWidenings[[2]model.FieldType{out, in}]
}

func e100MissingOutputSchema(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		if len(t.Outputs) != 0 {
			continue
		}
		returnsData := ctx.Embeddings != nil && ctx.Embeddings.IsConceptMatch(t.DescriptionEmbedding, embeddings.ConceptReturnsData, 0.45)
		if returnsData || len(t.Inputs) > 0 {
			out = append(out, diag("E100", model.SeverityError, t.Name, "",
				"tool has no output fields but appears to return data or accepts inputs"))
		}
	}
	return out
}

func e101MissingDescription(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		if strings.TrimSpace(t.Description) == "" {
			out = append(out, diag("E101", model.SeverityError, t.Name, "", "tool has no description"))
		}
	}
	return out
}

func e102UnderspecifiedInput(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		for _, f := range flatten(t.Inputs) {
			if !isBroadType(f.Type) || hasConstraint(f) {
				continue
			}
			if f.Required {
				out = append(out, diag("E102", model.SeverityError, t.Name, f.Name,
					fmt.Sprintf("required input %q has a broad type (%s) with no description, enum, pattern, or example", f.Name, f.Type)))
			} else {
				out = append(out, diag("E102", model.SeverityWarning, t.Name, f.Name,
					fmt.Sprintf("optional input %q has a broad type (%s) with no description, enum, pattern, or example", f.Name, f.Type)))
			}
		}
	}
	return out
}

func e103TypeMismatch(ctx *AnalysisContext) []model.Diagnostic {
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
		if !typeCompatible(outField.Type, inField.Type) {
			out = append(out, diag("E103", model.SeverityError, d.ToTool, d.ToField,
				fmt.Sprintf("%s.%s (%s) flows into %s.%s (%s) with incompatible types",
					d.FromTool, d.FromField, outField.Type, d.ToTool, d.ToField, inField.Type)))
		}
	}
	return out
}

func e104RequiredInputNotDescribed(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		for _, f := range flatten(t.Inputs) {
			if !f.Required {
				continue
			}
			if containsAnyToken(splitIdentifier(f.Name), toTokenSet(t.DescriptionTokens...)) {
				continue
			}
			if ctx.Embeddings != nil {
				fieldVec := t.InputEmbeddings[f.Name]
				if embeddings.Cosine(fieldVec, t.DescriptionEmbedding) >= 0.5 {
					continue
				}
			}
			out = append(out, diag("E104", model.SeverityError, t.Name, f.Name,
				fmt.Sprintf("required input %q is not mentioned in the tool description", f.Name)))
		}
	}
	return out
}

func e105FreeTextPropagation(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, d := range ctx.Dependencies {
		if d.Confidence < highConfidence {
			continue
		}
		fromTool, ok := ctx.ToolByName(d.FromTool)
		if !ok {
			continue
		}
		outField, ok := fromTool.OutputField(d.FromField)
		if !ok {
			continue
		}
		if outField.Type == model.TypeString && len(outField.Enum) == 0 && strings.TrimSpace(outField.Pattern) == "" {
			out = append(out, diag("E105", model.SeverityError, d.FromTool, d.FromField,
				fmt.Sprintf("%s.%s flows into %s.%s as unconstrained free text", d.FromTool, d.FromField, d.ToTool, d.ToField)))
		}
	}
	return out
}

func e106OutputNotGuaranteed(ctx *AnalysisContext) []model.Diagnostic {
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
		if (!outField.Required || outField.Nullable) && inField.Required && !inField.Nullable {
			out = append(out, diag("E106", model.SeverityError, d.ToTool, d.ToField,
				fmt.Sprintf("%s.%s is optional or nullable but %s.%s requires it", d.FromTool, d.FromField, d.ToTool, d.ToField)))
		}
	}
	return out
}

func e107CircularDependency(ctx *AnalysisContext) []model.Diagnostic {
	adj := map[string]map[string]bool{}
	for _, d := range ctx.Dependencies {
		if d.Confidence < cycleConfidence {
			continue
		}
		if adj[d.FromTool] == nil {
			adj[d.FromTool] = map[string]bool{}
		}
		adj[d.FromTool][d.ToTool] = true
	}

	seenCycles := map[string]bool{}
	var out []model.Diagnostic

	var path []string
	onPath := map[string]bool{}
	var visit func(node string)
	visit = func(node string) {
		path = append(path, node)
		onPath[node] = true
		nexts := make([]string, 0, len(adj[node]))
		for next := range adj[node] {
			nexts = append(nexts, next)
		}
		sort.Strings(nexts)
		for _, next := range nexts {
			if onPath[next] {
				cycle := cycleFrom(path, next)
				key := canonicalCycleKey(cycle)
				if !seenCycles[key] {
					seenCycles[key] = true
					out = append(out, diag("E107", model.SeverityError, "", "",
						fmt.Sprintf("circular dependency among tools: %s", strings.Join(cycle, ", "))))
				}
				continue
			}
			visit(next)
		}
		path = path[:len(path)-1]
		onPath[node] = false
	}

	var nodes []string
	for _, t := range ctx.Tools {
		nodes = append(nodes, t.Name)
	}
	for _, node := range nodes {
		if !onPath[node] {
			visit(node)
		}
	}
	return out
}

// cycleFrom extracts the cycle suffix of path starting at the first
// occurrence of target.
func cycleFrom(path []string, target string) []string {
	for i, n := range path {
		if n == target {
			cycle := make([]string, len(path)-i)
			copy(cycle, path[i:])
			return cycle
		}
	}
	return []string{target}
}

func canonicalCycleKey(cycle []string) string {
	members := append([]string(nil), cycle...)
	sort.Strings(members)
	return strings.Join(members, "\x00")
}

func e108ImplicitUserInput(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		for _, f := range t.Inputs {
			if !f.Required {
				continue
			}
			var fieldVec []float32
			if ctx.Embeddings != nil {
				fieldVec = t.InputEmbeddings[f.Name]
			}
			if hasUpstreamProducer(ctx, t.Name, f.Name, fieldVec, 0.6) {
				continue
			}
			if hasHighConfidenceTarget(ctx, t.Name, f.Name, 0.6) {
				continue
			}
			userData := false
			if ctx.Embeddings != nil {
				fieldVec := t.InputEmbeddings[f.Name]
				userData = ctx.Embeddings.IsConceptMatch(fieldVec, embeddings.ConceptUserData, 0.35)
			}
			if !userData {
				continue
			}
			out = append(out, diag("E108", model.SeverityError, t.Name, f.Name,
				fmt.Sprintf("required input %q looks like implicit user data with no upstream producer", f.Name)))
		}
	}
	return out
}

func hasUpstreamProducer(ctx *AnalysisContext, toolName, fieldName string, fieldVec []float32, tau float64) bool {
	for _, other := range ctx.Tools {
		if other.Name == toolName {
			continue
		}
		for _, out := range other.Outputs {
			var score float64
			if len(fieldVec) > 0 {
				score = embeddings.Cosine(other.OutputEmbeddings[out.Name], fieldVec)
			}
			if score == 0 {
				score = jaccardTokens(splitIdentifier(out.Name), splitIdentifier(fieldName))
			}
			if score > tau {
				return true
			}
		}
	}
	return false
}

func hasHighConfidenceTarget(ctx *AnalysisContext, toolName, fieldName string, tau float64) bool {
	for _, d := range ctx.Dependencies {
		if d.ToTool == toolName && d.ToField == fieldName && d.Confidence >= tau {
			return true
		}
	}
	return false
}

func jaccardTokens(a, b []string) float64 {
	setA := toTokenSet(a...)
	setB := toTokenSet(b...)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}
	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

var nonSerializableTypes = toTokenSet("function", "undefined", "symbol", "bigint")

func e109NonSerializableOutput(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		for _, f := range flatten(t.Outputs) {
			if nonSerializableTypes[string(f.Type)] {
				out = append(out, diag("E109", model.SeverityError, t.Name, f.Name,
					fmt.Sprintf("output %q has non-serializable type %q", f.Name, f.Type)))
			}
		}
	}
	return out
}

func e110HardAmbiguity(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	tools := ctx.Tools
	for i := 0; i < len(tools); i++ {
		for j := i + 1; j < len(tools); j++ {
			a, b := tools[i], tools[j]
			descSim := jaccardTokens(a.DescriptionTokens, b.DescriptionTokens)
			inOverlap := jaccardTokens(fieldNames(a.Inputs), fieldNames(b.Inputs))
			outOverlap := jaccardTokens(fieldNames(a.Outputs), fieldNames(b.Outputs))
			schemaOverlap := (inOverlap + outOverlap) / 2
			if descSim > 0.6 && schemaOverlap > 0.5 {
				out = append(out, diag("E110", model.SeverityError, a.Name, "",
					fmt.Sprintf("%s and %s are hard to distinguish: similar descriptions and schemas", a.Name, b.Name)))
			}
		}
	}
	return out
}

func fieldNames(fields []model.FieldSpec) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.ToLower(f.Name)
	}
	return names
}

func e112SensitiveParameter(ctx *AnalysisContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, t := range ctx.Tools {
		for _, f := range flatten(t.Inputs) {
			matched := false
			if ctx.Embeddings != nil {
				matched = ctx.Embeddings.IsConceptMatch(t.InputEmbeddings[f.Name], embeddings.ConceptSensitive, 0.45)
			}
			if !matched {
				matched = containsAnyToken(splitIdentifier(f.Name), sensitiveKeywords)
			}
			if matched {
				out = append(out, diag("E112", model.SeverityError, t.Name, f.Name,
					fmt.Sprintf("input %q looks like a sensitive credential", f.Name)))
			}
		}
	}
	return out
}

func e113DuplicateNames(ctx *AnalysisContext) []model.Diagnostic {
	groups := map[string][]string{}
	for _, t := range ctx.Tools {
		key := strings.ToLower(t.Name)
		groups[key] = append(groups[key], t.Name)
	}

	var keys []string
	for k, v := range groups {
		if len(v) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var out []model.Diagnostic
	for _, k := range keys {
		out = append(out, diag("E113", model.SeverityError, groups[k][0], "",
			fmt.Sprintf("duplicate tool name (case-insensitive): %s", strings.Join(groups[k], ", "))))
	}
	return out
}
