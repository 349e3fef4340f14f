package schema

import (
	"testing"

	"github.com/syrin-labs/mcplint/internal/model"
)

func mustField(t *testing.T, fields []model.FieldSpec, name string) model.FieldSpec {
	t.Helper()
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not found in %+v", name, fields)
	return model.FieldSpec{}
}

func TestNormalizer_SimpleObject(t *testing.T) {
	n := Normalizer{}
	raw := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"userId": map[string]any{"type": "integer"},
			"name":   map[string]any{"type": "string", "description": "display name"},
		},
		"required": []any{"userId"},
	}

	fields := n.Fields(raw, "input", false)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	userID := mustField(t, fields, "userId")
	if !userID.Required || userID.Type != model.TypeInteger {
		t.Errorf("userId = %+v, want required integer", userID)
	}

	name := mustField(t, fields, "name")
	if name.Required {
		t.Errorf("name should not be required")
	}
}

func TestNormalizer_NullableUnion(t *testing.T) {
	n := Normalizer{}
	raw := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"note": map[string]any{"type": []any{"string", "null"}},
			"gone": map[string]any{"type": []any{"null"}},
		},
	}

	fields := n.Fields(raw, "input", false)
	note := mustField(t, fields, "note")
	if !note.Nullable || note.Type != model.TypeString {
		t.Errorf("note = %+v, want nullable string", note)
	}

	gone := mustField(t, fields, "gone")
	if gone.Nullable {
		t.Errorf("a sole null type must NOT be nullable, got %+v", gone)
	}
	if gone.Type != model.TypeNull {
		t.Errorf("gone.Type = %q, want null", gone.Type)
	}
}

func TestNormalizer_OneOfUnionsFields(t *testing.T) {
	n := Normalizer{}
	raw := map[string]any{
		"oneOf": []any{
			map[string]any{
				"type":       "object",
				"properties": map[string]any{"a": map[string]any{"type": "string"}},
				"required":   []any{"a"},
			},
			map[string]any{
				"type":       "object",
				"properties": map[string]any{"b": map[string]any{"type": "number"}},
			},
		},
	}

	fields := n.Fields(raw, "input", false)
	if len(fields) != 2 {
		t.Fatalf("expected union of both branches (2 fields), got %d: %+v", len(fields), fields)
	}
}

func TestNormalizer_ArrayItems(t *testing.T) {
	n := Normalizer{}
	raw := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tags": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{"type": "string"},
					},
					"required": []any{"id"},
				},
			},
		},
	}

	fields := n.Fields(raw, "input", false)
	tags := mustField(t, fields, "tags")
	if tags.Type != model.TypeArray {
		t.Fatalf("tags.Type = %q, want array", tags.Type)
	}
	id := mustField(t, tags.Properties, "id")
	if !id.Required || id.Type != model.TypeString {
		t.Errorf("nested id = %+v", id)
	}
}

func TestNormalizer_RefDereference(t *testing.T) {
	n := Normalizer{}
	raw := map[string]any{
		"type": "object",
		"$defs": map[string]any{
			"User": map[string]any{
				"type":       "object",
				"properties": map[string]any{"id": map[string]any{"type": "string"}},
				"required":   []any{"id"},
			},
		},
		"properties": map[string]any{
			"user": map[string]any{"$ref": "#/$defs/User"},
		},
	}

	fields := n.Fields(raw, "input", false)
	user := mustField(t, fields, "user")
	if user.Type != model.TypeObject {
		t.Fatalf("user.Type = %q, want object (dereferenced)", user.Type)
	}
	id := mustField(t, user.Properties, "id")
	if !id.Required {
		t.Errorf("dereferenced id should be required")
	}
}

func TestNormalizer_UnresolvableRefSwallowed(t *testing.T) {
	n := Normalizer{}
	raw := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"thing": map[string]any{"$ref": "https://example.com/other.json#/Foo"},
		},
	}

	fields := n.Fields(raw, "input", false)
	thing := mustField(t, fields, "thing")
	if thing.Type != model.TypeAny {
		t.Errorf("unresolvable ref should fall back to any-typed field, got %+v", thing)
	}
}

func TestNormalizer_OutputsConceptuallyRequired(t *testing.T) {
	n := Normalizer{}
	raw := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status": map[string]any{"type": "string"},
		},
	}

	fields := n.Fields(raw, "output", true)
	status := mustField(t, fields, "status")
	if !status.Required {
		t.Errorf("outputs with no declared required array should default to conceptually required")
	}
}

func TestNormalizer_TopLevelPrimitiveBecomesPseudoField(t *testing.T) {
	n := Normalizer{}
	raw := map[string]any{"type": "string", "format": "uri"}

	fields := n.Fields(raw, "output", true)
	if len(fields) != 1 || fields[0].Name != "output" {
		t.Fatalf("expected single pseudo-field named 'output', got %+v", fields)
	}
	if fields[0].Format != "uri" {
		t.Errorf("format not preserved: %+v", fields[0])
	}
}

func TestNormalizer_EmptySchemaYieldsNoFields(t *testing.T) {
	n := Normalizer{}
	if fields := n.Fields(nil, "input", false); fields != nil {
		t.Errorf("nil schema should yield no fields, got %+v", fields)
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	n := Normalizer{}
	raw := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"userId": map[string]any{"type": "integer"},
		},
		"required": []any{"userId"},
	}

	first := n.Fields(raw, "input", false)

	// Round-trip: rebuild a minimal schema from the field list and
	// renormalize; the field list must be stable under repeated
	// normalization.
	rebuilt := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []any{},
	}
	props := rebuilt["properties"].(map[string]any)
	var required []any
	for _, f := range first {
		props[f.Name] = map[string]any{"type": string(f.Type)}
		if f.Required {
			required = append(required, f.Name)
		}
	}
	rebuilt["required"] = required

	second := n.Fields(rebuilt, "input", false)
	if len(first) != len(second) {
		t.Fatalf("idempotence broken: %d fields then %d fields", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name || first[i].Type != second[i].Type || first[i].Required != second[i].Required {
			t.Errorf("field %d mismatch: %+v vs %+v", i, first[i], second[i])
		}
	}
}
