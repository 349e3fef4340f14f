package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/syrin-labs/mcplint/internal/model"
)

var tokenPattern = regexp.MustCompile(`[A-Za-z0-9]+`)

// maxDepth bounds recursion against pathological self-referential schemas;
// it is far beyond any legitimate nesting depth W114 would flag as a
// problem (> 3), so it never fires in practice.
const maxDepth = 64

// Normalizer flattens raw JSON Schema fragments into FieldSpec lists. It
// holds no mutable state; a zero-value Normalizer is ready to use.
type Normalizer struct{}

// Tool normalizes one RawTool into a ToolSpec. It never errors: a schema
// that cannot be sensibly interpreted yields an empty field list rather
// than aborting the batch.
func (n Normalizer) Tool(raw model.RawTool) model.ToolSpec {
	spec := model.ToolSpec{
		Name:        raw.Name,
		Description: raw.Description,
	}
	spec.DescriptionTokens = tokensOf(raw.Name, raw.Description)

	spec.Inputs = n.Fields(raw.InputSchema, "input", false)
	spec.Outputs = n.Fields(raw.OutputSchema, "output", true)

	for i := range spec.Inputs {
		spec.Inputs[i].Tool = raw.Name
	}
	for i := range spec.Outputs {
		spec.Outputs[i].Tool = raw.Name
	}

	return spec
}

// Fields flattens a single top-level schema fragment (an input or output
// schema) into a FieldSpec list. pseudoName names the single pseudo-field
// emitted when the top-level node is not a keyed object.
// defaultRequired governs required-ness when the object node declares no
// "required" array at all: inputs default to false, outputs default to
// true (an output with no "required" array is conceptually required —
// callers cannot opt out of receiving it).
func (n Normalizer) Fields(raw map[string]any, pseudoName string, defaultRequired bool) []model.FieldSpec {
	if len(raw) == 0 {
		return nil
	}
	w := walker{root: raw}
	return w.walk(raw, pseudoName, defaultRequired, 0)
}

// walker threads the top-level schema document through recursion so that
// "$ref" pointers can be resolved against $defs/definitions declared at
// the root, regardless of how deeply nested the reference appears.
type walker struct {
	root map[string]any
}

func (w walker) walk(raw map[string]any, pseudoName string, defaultRequired bool, depth int) []model.FieldSpec {
	if depth > maxDepth {
		return nil
	}

	node := Classify(w.dereference(raw))

	switch node.Kind {
	case KindUnion:
		var out []model.FieldSpec
		for _, branch := range node.Branches {
			out = append(out, w.walk(branch, pseudoName, defaultRequired, depth+1)...)
		}
		return out

	case KindObject:
		required := node.Required
		if !node.RequiredSpecified && defaultRequired {
			required = node.PropertyOrder
		}
		requiredSet := toSet(required)

		out := make([]model.FieldSpec, 0, len(node.PropertyOrder))
		for _, name := range node.PropertyOrder {
			out = append(out, w.property(name, node.Properties[name], requiredSet[name], depth))
		}
		return out

	case KindArray, KindPrimitive, KindRef:
		// A non-object top-level schema (or an unresolved $ref) becomes one
		// pseudo-field carrying the node's own type/constraints.
		f := fieldFromPrimitiveLike(pseudoName, node)
		if node.Kind == KindArray {
			f.Type = model.TypeArray
			f.Properties = w.itemProperties(node.Items, depth)
		}
		return []model.FieldSpec{f}
	}
	return nil
}

// property normalizes a single named property of an object schema.
func (w walker) property(name string, raw map[string]any, required bool, depth int) model.FieldSpec {
	node := Classify(w.dereference(raw))

	f := fieldFromPrimitiveLike(name, node)
	f.Required = required
	if depth > maxDepth {
		return f
	}

	switch node.Kind {
	case KindObject:
		requiredSet := toSet(node.Required)
		nested := make([]model.FieldSpec, 0, len(node.PropertyOrder))
		for _, childName := range node.PropertyOrder {
			nested = append(nested, w.property(childName, node.Properties[childName], requiredSet[childName], depth+1))
		}
		f.Type = model.TypeObject
		f.Properties = nested

	case KindArray:
		f.Type = model.TypeArray
		f.Properties = w.itemProperties(node.Items, depth+1)

	case KindUnion:
		var nested []model.FieldSpec
		for _, branch := range node.Branches {
			nested = append(nested, w.branchAsProperty(branch, depth+1)...)
		}
		f.Properties = nested
		if f.Type == "" {
			f.Type = model.TypeAny
		}
	}

	return f
}

// branchAsProperty classifies a union branch the same way a property
// would be, for when a property's type is itself oneOf/anyOf/allOf.
func (w walker) branchAsProperty(raw map[string]any, depth int) []model.FieldSpec {
	node := Classify(w.dereference(raw))
	switch node.Kind {
	case KindObject:
		requiredSet := toSet(node.Required)
		out := make([]model.FieldSpec, 0, len(node.PropertyOrder))
		for _, name := range node.PropertyOrder {
			out = append(out, w.property(name, node.Properties[name], requiredSet[name], depth+1))
		}
		return out
	default:
		return nil
	}
}

// itemProperties normalizes the schema(s) of an array's "items" (a single
// schema or a tuple list) by unioning their field lists, matching the
// oneOf/anyOf union-not-reconcile behavior.
func (w walker) itemProperties(items []map[string]any, depth int) []model.FieldSpec {
	var out []model.FieldSpec
	for _, item := range items {
		out = append(out, w.branchAsProperty(item, depth)...)
	}
	return out
}

// fieldFromPrimitiveLike builds the scalar portion of a FieldSpec (type,
// nullable, enum, pattern, format, example) common to every Kind.
func fieldFromPrimitiveLike(name string, node Node) model.FieldSpec {
	return model.FieldSpec{
		Name:     name,
		Type:     normalizeType(node.Types),
		Nullable: node.Nullable,
		Enum:     stringifyEnum(node.Enum),
		Pattern:  node.Pattern,
		Format:   node.Format,
		Example:  node.Example,
	}
}

// normalizeType collapses a raw type list into the flat FieldType
// vocabulary: a single string passes through, an array drops "null" and
// joins the rest with "|"; an empty type list collapses to "any", and a
// type list that was only ["null"] is preserved as the literal null type
// (sole-null means "must be null", not "nullable").
func normalizeType(types []string) model.FieldType {
	if len(types) == 0 {
		return model.TypeAny
	}
	if len(types) == 1 {
		return model.FieldType(types[0])
	}

	kept := make([]string, 0, len(types))
	for _, t := range types {
		if t != "null" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return model.TypeNull
	}
	return model.FieldType(strings.Join(kept, "|"))
}

func stringifyEnum(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// dereference resolves an internal "$ref" against $defs/definitions at the
// root of the schema document this walker was built with. Anything it
// cannot resolve — cross-document refs, exotic pointer shapes, a dangling
// name — is swallowed and the original node is returned unchanged.
func (w walker) dereference(raw map[string]any) map[string]any {
	ref, ok := raw["$ref"].(string)
	if !ok || ref == "" {
		return raw
	}

	defs, ok := w.root["$defs"].(map[string]any)
	if !ok {
		defs, ok = w.root["definitions"].(map[string]any)
		if !ok {
			return raw
		}
	}

	resolved, ok := resolvePointer(ref, defs)
	if !ok {
		return raw
	}
	return resolved
}

// resolvePointer handles the common "#/$defs/Name" / "#/definitions/Name"
// shape; anything more exotic falls through to the swallowed-failure path
// in dereference.
func resolvePointer(ref string, defs map[string]any) (map[string]any, bool) {
	trimmed := strings.TrimPrefix(ref, "#/$defs/")
	trimmed = strings.TrimPrefix(trimmed, "#/definitions/")
	if trimmed == ref {
		return nil, false
	}
	v, ok := defs[trimmed]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

func tokensOf(name, description string) []string {
	text := name + " " + description
	raw := tokenPattern.FindAllString(text, -1)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if len(w) >= 3 {
			out = append(out, strings.ToLower(w))
		}
	}
	return out
}
