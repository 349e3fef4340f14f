// Package loader wraps a RawTool source with an optional JSON Schema
// well-formedness pre-check, so a malformed schema fragment is caught and
// downgraded before it ever reaches the normalizer rather than silently
// producing an empty field list.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/syrin-labs/mcplint/internal/model"
)

// Source is the narrow RawTool-producing boundary this package decorates.
// orchestrator.Loader, mcploader.Loader, and mcploader.MultiLoader all
// satisfy it structurally without either package importing the other.
type Source interface {
	Load(ctx context.Context) ([]model.RawTool, error)
}

// SchemaValidator compiles JSON Schema fragments and caches the result,
// mirroring pkg/pluginsdk's compileSchema pattern: the same schema text
// recompiled across many tools (a shared "pagination" or "error" shape,
// for instance) only pays the compile cost once per process.
type SchemaValidator struct {
	cache sync.Map // serialized schema -> *jsonschema.Schema
}

// NewSchemaValidator returns a validator with an empty cache.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{}
}

// WellFormed reports whether schema compiles as JSON Schema. A nil or
// empty schema is vacuously well-formed: the normalizer already treats
// "no schema" as "no fields", which is a modeling choice, not a defect.
func (v *SchemaValidator) WellFormed(name string, schema map[string]any) bool {
	if len(schema) == 0 {
		return true
	}
	_, err := v.compile(name, schema)
	return err == nil
}

func (v *SchemaValidator) compile(name string, schema map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	key := string(raw)
	if cached, ok := v.cache.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	compiled, err := jsonschema.CompileString(name+".schema.json", key)
	if err != nil {
		return nil, err
	}
	v.cache.Store(key, compiled)
	return compiled, nil
}

// PreCheckingLoader decorates a Source with the schema well-formedness
// check. A malformed input or output schema is logged and dropped (set to
// nil) rather than aborting the whole batch: the tool itself is still
// diagnosable, just with an empty field list where the bad schema was; a
// dropped output schema can then surface as E100.
type PreCheckingLoader struct {
	inner     Source
	validator *SchemaValidator
	logger    *slog.Logger
}

// NewPreCheckingLoader wraps inner with a fresh SchemaValidator.
func NewPreCheckingLoader(inner Source, logger *slog.Logger) *PreCheckingLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreCheckingLoader{inner: inner, validator: NewSchemaValidator(), logger: logger}
}

// Load delegates to the wrapped Source, then checks each tool's schemas.
func (l *PreCheckingLoader) Load(ctx context.Context) ([]model.RawTool, error) {
	raw, err := l.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range raw {
		if !l.validator.WellFormed(raw[i].Name+".input", raw[i].InputSchema) {
			l.logger.Warn("dropping malformed input schema", "tool", raw[i].Name)
			raw[i].InputSchema = nil
		}
		if !l.validator.WellFormed(raw[i].Name+".output", raw[i].OutputSchema) {
			l.logger.Warn("dropping malformed output schema", "tool", raw[i].Name)
			raw[i].OutputSchema = nil
		}
	}
	return raw, nil
}
