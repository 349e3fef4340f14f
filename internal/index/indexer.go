// Package index builds the read-only lookup tables the rule engine queries:
// tool name to ToolSpec, field name to the FieldSpec occurrences across every
// tool (kept separate for inputs and outputs), and keyword to the set of
// tools mentioning it. All keys are lowercased; building is linear in the
// total field count and lookups are constant-time.
package index

import (
	"regexp"
	"strings"

	"github.com/syrin-labs/mcplint/internal/model"
)

var wordPattern = regexp.MustCompile(`[A-Za-z0-9]+`)

// Indexes holds the derived lookup maps rules use to resolve tools, fields,
// and keywords without re-scanning the full tool list on every check.
type Indexes struct {
	byName    map[string]*model.ToolSpec
	byInput   map[string][]model.FieldSpec
	byOutput  map[string][]model.FieldSpec
	byKeyword map[string]map[string]struct{}
}

// Build constructs the indexes over a normalized tool set. Tools are
// iterated in the order given; that order is preserved implicitly by
// downstream consumers that re-walk the original tool slice rather than
// the index, keeping diagnostic ordering deterministic.
func Build(tools []model.ToolSpec) *Indexes {
	idx := &Indexes{
		byName:    make(map[string]*model.ToolSpec, len(tools)),
		byInput:   make(map[string][]model.FieldSpec),
		byOutput:  make(map[string][]model.FieldSpec),
		byKeyword: make(map[string]map[string]struct{}),
	}

	for i := range tools {
		t := &tools[i]
		key := strings.ToLower(t.Name)
		// First tool with a given lowercased name wins the name index slot;
		// duplicate-name detection itself is a rule (E113), not an indexer
		// concern, so later duplicates are simply not addressable by name
		// here.
		if _, exists := idx.byName[key]; !exists {
			idx.byName[key] = t
		}

		for _, f := range t.Inputs {
			fk := strings.ToLower(f.Name)
			idx.byInput[fk] = append(idx.byInput[fk], f)
		}
		for _, f := range t.Outputs {
			fk := strings.ToLower(f.Name)
			idx.byOutput[fk] = append(idx.byOutput[fk], f)
		}

		for _, kw := range keywordsOf(t.Name, t.Description) {
			set, ok := idx.byKeyword[kw]
			if !ok {
				set = make(map[string]struct{})
				idx.byKeyword[kw] = set
			}
			set[t.Name] = struct{}{}
		}
	}

	return idx
}

// ToolByName resolves a tool by case-insensitive name.
func (idx *Indexes) ToolByName(name string) (*model.ToolSpec, bool) {
	t, ok := idx.byName[strings.ToLower(name)]
	return t, ok
}

// InputsNamed returns every input field (across all tools) with this name.
func (idx *Indexes) InputsNamed(name string) []model.FieldSpec {
	return idx.byInput[strings.ToLower(name)]
}

// OutputsNamed returns every output field (across all tools) with this name.
func (idx *Indexes) OutputsNamed(name string) []model.FieldSpec {
	return idx.byOutput[strings.ToLower(name)]
}

// ToolsForKeyword returns the set of tool names whose name+description
// mentions the given keyword (case-insensitive, already lowercased key).
func (idx *Indexes) ToolsForKeyword(keyword string) map[string]struct{} {
	return idx.byKeyword[strings.ToLower(keyword)]
}

// keywordsOf extracts alphanumeric words of length >= 3 from name+description,
// lowercased. The normalizer's tokensOf applies the same rule when it builds
// ToolSpec.DescriptionTokens; it does not call this function.
func keywordsOf(name, description string) []string {
	text := name + " " + description
	raw := wordPattern.FindAllString(text, -1)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if len(w) >= 3 {
			out = append(out, strings.ToLower(w))
		}
	}
	return out
}

// Keywords exposes the indexer's tokenizer (keywordsOf) outside the package.
func Keywords(name, description string) []string {
	return keywordsOf(name, description)
}
