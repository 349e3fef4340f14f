// Package schema turns arbitrary JSON Schema fragments into FieldSpec lists.
// The fragment is first classified into a small sum type (ast.go) and then
// walked by a match over that sum (normalize.go), rather than treated as an
// untyped tree.
package schema

import "sort"

// Kind classifies a schema fragment into exactly one of the variants the
// normalizer knows how to walk.
type Kind int

const (
	// KindRef is a node carrying a non-empty "$ref" string (any sibling
	// keywords stay only in Raw).
	KindRef Kind = iota
	// KindUnion is a node carrying a non-empty oneOf/anyOf/allOf.
	KindUnion
	// KindObject is a node of type "object" (or untyped but carrying
	// "properties").
	KindObject
	// KindArray is a node of type "array" (or untyped but carrying "items").
	KindArray
	// KindPrimitive is anything else: string/number/integer/boolean/null/any.
	KindPrimitive
)

// UnionOp names which combinator produced a KindUnion node, kept for
// diagnostics and tests even though the normalizer treats all three alike
// (union, no reconciliation of duplicate names across branches).
type UnionOp string

const (
	UnionOneOf UnionOp = "oneOf"
	UnionAnyOf UnionOp = "anyOf"
	UnionAllOf UnionOp = "allOf"
)

// Node is the classified view of one raw JSON Schema fragment (a
// map[string]any decoded from JSON). It does not recurse; Branches/Items/
// Properties hold the raw, not-yet-classified children, which the
// normalizer classifies in turn as it descends.
type Node struct {
	Kind Kind
	Raw  map[string]any

	// KindRef
	RefPath string

	// KindUnion
	UnionOp  UnionOp
	Branches []map[string]any

	// KindObject
	Properties map[string]map[string]any
	// PropertyOrder preserves declaration order; Go maps have none.
	PropertyOrder []string
	Required      []string
	// RequiredSpecified is true iff the raw node carried a "required" key
	// at all (even an empty array), distinguishing "explicitly no required
	// fields" from "required-ness left to the caller's default".
	RequiredSpecified bool

	// KindArray
	Items []map[string]any

	// KindPrimitive (and also populated as supplementary detail on Object
	// nodes that carry these keywords directly, e.g. a bare "type":"string")
	Types   []string // raw type list/scalar, not yet null-stripped
	Enum    []any
	Pattern string
	Format  string
	Example any
	// Nullable is true iff the raw node declared nullable:true or listed
	// "null" as one of several entries in a type array (a sole "null" type
	// means "must be null", which is NOT nullable).
	Nullable bool
}

// Classify inspects a raw schema fragment and returns its Node. It never
// errors: an unrecognized or malformed fragment classifies as KindPrimitive
// with an empty Types list, which the normalizer treats as "any".
func Classify(raw map[string]any) Node {
	if raw == nil {
		return Node{Kind: KindPrimitive}
	}

	if ref, ok := raw["$ref"].(string); ok && ref != "" {
		return Node{Kind: KindRef, Raw: raw, RefPath: ref}
	}

	for _, key := range []UnionOp{UnionOneOf, UnionAnyOf, UnionAllOf} {
		if branches := asSchemaList(raw[string(key)]); len(branches) > 0 {
			return Node{Kind: KindUnion, Raw: raw, UnionOp: key, Branches: branches}
		}
	}

	types, nullableFromType := classifyTypes(raw["type"])
	nullable := nullableFromType || asBool(raw["nullable"])

	example := raw["example"]
	if examples, ok := raw["examples"].([]any); ok && len(examples) > 0 {
		example = examples[0]
	}

	if props, hasProps := raw["properties"].(map[string]any); hasProps || isObjectType(types) {
		_, requiredSpecified := raw["required"]
		n := Node{
			Kind:              KindObject,
			Raw:               raw,
			Properties:        make(map[string]map[string]any, len(props)),
			Required:          asStringList(raw["required"]),
			RequiredSpecified: requiredSpecified,
			Types:             types,
			Enum:              asAnyList(raw["enum"]),
			Pattern:           asString(raw["pattern"]),
			Format:            asString(raw["format"]),
			Example:           example,
			Nullable:          nullable,
		}
		order := make([]string, 0, len(props))
		for name, v := range props {
			if m, ok := v.(map[string]any); ok {
				n.Properties[name] = m
			} else {
				n.Properties[name] = map[string]any{}
			}
			order = append(order, name)
		}
		// JSON decoded into map[string]any has already lost declaration
		// order; sort alphabetically so the normalizer's output (and
		// therefore the whole AnalysisResult) is deterministic across runs
		// on the same input.
		sort.Strings(order)
		n.PropertyOrder = order
		return n
	}

	if items, hasItems := raw["items"]; hasItems || isArrayType(types) {
		return Node{
			Kind:     KindArray,
			Raw:      raw,
			Items:    asSchemaList(items),
			Types:    types,
			Nullable: nullable,
		}
	}

	return Node{
		Kind:     KindPrimitive,
		Raw:      raw,
		Types:    types,
		Enum:     asAnyList(raw["enum"]),
		Pattern:  asString(raw["pattern"]),
		Format:   asString(raw["format"]),
		Example:  example,
		Nullable: nullable,
	}
}

// classifyTypes normalizes the raw "type" keyword (string, list, or
// missing) into a list of type strings, and reports whether a "null"
// member alongside other types makes the field nullable. A sole "null"
// type is left in Types and nullableFromType is false: "must be null" is
// not read as "nullable".
func classifyTypes(raw any) (types []string, nullableFromType bool) {
	switch v := raw.(type) {
	case string:
		if v != "" {
			types = []string{v}
		}
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				types = append(types, s)
			}
		}
		if len(types) > 1 {
			for _, t := range types {
				if t == "null" {
					nullableFromType = true
					break
				}
			}
		}
	}
	return types, nullableFromType
}

func isObjectType(types []string) bool {
	for _, t := range types {
		if t == "object" {
			return true
		}
	}
	return false
}

func isArrayType(types []string) bool {
	for _, t := range types {
		if t == "array" {
			return true
		}
	}
	return false
}

func asSchemaList(v any) []map[string]any {
	switch val := v.(type) {
	case []any:
		out := make([]map[string]any, 0, len(val))
		for _, e := range val {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		return []map[string]any{val}
	default:
		return nil
	}
}

func asStringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asAnyList(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	return list
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
