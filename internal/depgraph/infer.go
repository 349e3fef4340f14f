// Package depgraph infers a weighted directed graph of probable data flows
// between tools. For every output field of every tool and
// every input field of every other tool, it computes a confidence score
// from three signals (name similarity, type compatibility, description
// token overlap) plus an exact-match bonus, and keeps the edges whose
// confidence clears the 0.6 threshold.
package depgraph

import (
	"regexp"
	"strings"

	"github.com/syrin-labs/mcplint/internal/model"
)

// Threshold is the minimum confidence an edge must have to be retained.
const Threshold = 0.6

var wordPattern = regexp.MustCompile(`\w+`)

// safeWidenings lists (outputType, inputType) pairs where the output can
// be safely accepted by the input despite not matching exactly.
var safeWidenings = map[[2]model.FieldType]bool{
	{model.TypeNumber, model.TypeString}:  true,
	{model.TypeInteger, model.TypeString}: true,
	{model.TypeArray, model.TypeString}:   true,
	{model.TypeObject, model.TypeString}:  true,
}

// incompatiblePairs lists (outputType, inputType) pairs known to be
// unsafe: a value of the output's type cannot satisfy the input's type.
var incompatiblePairs = map[[2]model.FieldType]bool{
	{model.TypeString, model.TypeNumber}:  true,
	{model.TypeNumber, model.TypeBoolean}: true,
}

// Infer computes the dependency set over a normalized tool set. Iteration
// order is the order tools and fields appear in the slices, so the result
// is deterministic given deterministic input.
func Infer(tools []model.ToolSpec) []model.Dependency {
	var deps []model.Dependency

	for _, a := range tools {
		for _, b := range tools {
			if a.Name == b.Name {
				continue
			}
			descJaccard := jaccard(a.DescriptionTokens, b.DescriptionTokens)

			for _, out := range a.Outputs {
				for _, in := range b.Inputs {
					confidence := score(out, in, descJaccard)
					if confidence >= Threshold {
						deps = append(deps, model.Dependency{
							FromTool:   a.Name,
							FromField:  out.Name,
							ToTool:     b.Name,
							ToField:    in.Name,
							Confidence: confidence,
						})
					}
				}
			}
		}
	}

	return deps
}

// score computes one field pair's confidence. Type-compatibility and
// description-Jaccard contributions are the weighted values directly (the
// enumerated 0.3/0.2/-0.5/0 and jaccard*0.3 ARE the contributions, not raw
// signals awaiting a further multiply), while name similarity's raw [0,1]
// score is scaled by its 0.4 weight.
func score(out, in model.FieldSpec, descJaccard float64) float64 {
	nameSim := nameSimilarity(out.Name, in.Name)
	typeContribution := typeCompatibility(out.Type, in.Type)
	descContribution := descJaccard * 0.3

	confidence := nameSim*0.4 + typeContribution + descContribution

	if nameSim == 1.0 && typeContribution > 0 {
		confidence += 0.15
	}

	return clamp01(confidence)
}

// nameSimilarity scores how related two field names are.
func nameSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}

	short, long := a, b
	if len(a) > len(b) {
		short, long = b, a
	}
	if strings.Contains(long, short) {
		if len(short) >= 3 {
			return 0.8
		}
		return 0.7
	}

	return jaccard(words(a), words(b))
}

// typeCompatibility returns the type-compatibility contribution for an
// output type flowing into an input type.
func typeCompatibility(outType, inType model.FieldType) float64 {
	if outType == inType {
		return 0.3
	}
	pair := [2]model.FieldType{outType, inType}
	if safeWidenings[pair] {
		return 0.2
	}
	if incompatiblePairs[pair] {
		return -0.5
	}
	return 0
}

// words tokenizes on non-word characters and keeps tokens of length > 2.
func words(s string) []string {
	raw := wordPattern.FindAllString(s, -1)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if len(w) > 2 {
			out = append(out, strings.ToLower(w))
		}
	}
	return out
}

// jaccard computes the Jaccard index of two token lists treated as sets.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	setA := toSet(a)
	setB := toSet(b)

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
