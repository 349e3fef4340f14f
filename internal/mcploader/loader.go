package mcploader

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/syrin-labs/mcplint/internal/model"
)

// Loader connects to one MCP server, lists its tools, and converts them
// into the RawTool batch the orchestrator normalizes. It satisfies
// orchestrator.Loader.
type Loader struct {
	config *ServerConfig
	logger *slog.Logger
}

// New returns a Loader for the given server. cfg is validated lazily, on
// the first Load call, so construction never fails.
func New(cfg ServerConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{config: &cfg, logger: logger.With("mcp_server", cfg.ID)}
}

// Load connects, performs the initialize handshake, lists tools, and
// disconnects. Each call opens and tears down its own connection: a
// one-shot analysis run has no use for a cached, long-lived session.
func (l *Loader) Load(ctx context.Context) ([]model.RawTool, error) {
	if err := l.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	t := newTransport(l.config)
	if err := t.Connect(ctx); err != nil {
		return nil, fmt.Errorf("transport connect: %w", err)
	}
	defer t.Close()

	result, err := t.Call(ctx, "initialize", map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "mcplint", "version": "1.0.0"},
	})
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	var init initializeResult
	if err := json.Unmarshal(result, &init); err != nil {
		return nil, fmt.Errorf("parse initialize result: %w", err)
	}
	l.logger.Info("connected to MCP server", "name", init.ServerInfo.Name, "version", init.ServerInfo.Version)

	result, err = t.Call(ctx, "tools/list", nil)
	if err != nil {
		return nil, fmt.Errorf("tools/list: %w", err)
	}
	var listed listToolsResult
	if err := json.Unmarshal(result, &listed); err != nil {
		return nil, fmt.Errorf("parse tools/list result: %w", err)
	}

	raw := make([]model.RawTool, len(listed.Tools))
	for i, tool := range listed.Tools {
		raw[i] = model.RawTool{
			Name:         tool.Name,
			Description:  tool.Description,
			InputSchema:  decodeSchema(tool.InputSchema),
			OutputSchema: decodeSchema(tool.OutputSchema),
		}
	}
	l.logger.Debug("loaded tools", "count", len(raw))
	return raw, nil
}

// decodeSchema turns a raw JSON Schema document into the map form the
// normalizer walks. A missing or malformed schema yields nil rather than
// an error: the normalizer treats a nil schema as "declares no fields",
// which is itself diagnosable (a tool left with no output fields can draw
// E100) rather than a load failure.
func decodeSchema(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	return decoded
}
