package loader

import (
	"context"
	"testing"

	"github.com/syrin-labs/mcplint/internal/model"
)

func TestSchemaValidator_WellFormed(t *testing.T) {
	v := NewSchemaValidator()

	if !v.WellFormed("empty", nil) {
		t.Error("a nil schema should be vacuously well-formed")
	}

	valid := map[string]any{
		"type":       "object",
		"properties": map[string]any{"id": map[string]any{"type": "string"}},
	}
	if !v.WellFormed("valid", valid) {
		t.Error("expected a well-formed object schema to compile")
	}

	malformed := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{"type": "not-a-real-type"},
		},
	}
	if v.WellFormed("malformed", malformed) {
		t.Error("expected an invalid type keyword to fail compilation")
	}
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := NewSchemaValidator()
	schema := map[string]any{"type": "string"}

	if !v.WellFormed("first", schema) {
		t.Fatal("expected schema to compile on first call")
	}
	if _, ok := v.cache.Load(`{"type":"string"}`); !ok {
		t.Error("expected the compiled schema to be cached by its serialized form")
	}
	if !v.WellFormed("second", schema) {
		t.Fatal("expected schema to compile on second (cached) call")
	}
}

type stubSource struct {
	tools []model.RawTool
	err   error
}

func (s stubSource) Load(ctx context.Context) ([]model.RawTool, error) {
	return s.tools, s.err
}

func TestPreCheckingLoader_DropsMalformedSchemas(t *testing.T) {
	inner := stubSource{tools: []model.RawTool{
		{
			Name:        "broken_tool",
			InputSchema: map[string]any{"type": "object", "properties": map[string]any{"x": map[string]any{"type": "bogus"}}},
		},
		{
			Name:         "fine_tool",
			InputSchema:  map[string]any{"type": "object"},
			OutputSchema: map[string]any{"type": "string"},
		},
	}}

	loader := NewPreCheckingLoader(inner, nil)
	tools, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if tools[0].InputSchema != nil {
		t.Error("expected the malformed input schema to be dropped to nil")
	}
	if tools[1].InputSchema == nil || tools[1].OutputSchema == nil {
		t.Error("expected the well-formed tool's schemas to survive untouched")
	}
}

func TestPreCheckingLoader_PropagatesInnerError(t *testing.T) {
	boom := context.DeadlineExceeded
	loader := NewPreCheckingLoader(stubSource{err: boom}, nil)
	if _, err := loader.Load(context.Background()); err != boom {
		t.Errorf("expected the inner error to propagate unchanged, got %v", err)
	}
}
