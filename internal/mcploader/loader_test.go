package mcploader

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// fakeServerScript is a minimal stdio MCP server: it replies to initialize
// and tools/list with a fixed, valid response and ignores everything else.
// It is intentionally dependency-free so the test has no external fixture
// to keep in sync.
const fakeServerScript = `
import json
import sys

def write(msg):
    sys.stdout.write(json.dumps(msg) + "\n")
    sys.stdout.flush()

for line in sys.stdin:
    line = line.strip()
    if not line:
        continue
    req = json.loads(line)
    method = req.get("method")
    if method == "initialize":
        write({
            "jsonrpc": "2.0", "id": req["id"],
            "result": {
                "protocolVersion": "2024-11-05",
                "serverInfo": {"name": "fake-server", "version": "0.0.1"},
            },
        })
    elif method == "tools/list":
        write({
            "jsonrpc": "2.0", "id": req["id"],
            "result": {
                "tools": [
                    {
                        "name": "get_user",
                        "description": "Fetch a user profile by id.",
                        "inputSchema": {
                            "type": "object",
                            "properties": {"user_id": {"type": "string"}},
                            "required": ["user_id"],
                        },
                        "outputSchema": {
                            "type": "object",
                            "properties": {"name": {"type": "string"}},
                        },
                    }
                ]
            },
        })
    elif method == "notifications/initialized":
        continue
`

func writeFakeServer(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake_server.py")
	if err := os.WriteFile(path, []byte(fakeServerScript), 0o700); err != nil {
		t.Fatalf("failed to write fake server script: %v", err)
	}
	return path
}

func TestLoader_Load_StdioHappyPath(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}

	script := writeFakeServer(t)
	loader := New(ServerConfig{
		ID:        "fake",
		Transport: TransportStdio,
		Command:   "python3",
		Args:      []string{script},
		Timeout:   5 * time.Second,
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := loader.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(tools) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(tools))
	}
	got := tools[0]
	if got.Name != "get_user" {
		t.Errorf("expected tool name get_user, got %q", got.Name)
	}
	if got.Description == "" {
		t.Error("expected a non-empty description")
	}
	if got.InputSchema == nil {
		t.Error("expected a decoded input schema")
	}
	if got.OutputSchema == nil {
		t.Error("expected a decoded output schema")
	}
}

func TestLoader_Load_InvalidConfigFailsFast(t *testing.T) {
	loader := New(ServerConfig{Transport: TransportStdio}, nil)
	if _, err := loader.Load(context.Background()); err == nil {
		t.Error("expected an error for a config missing both id and command")
	}
}

func TestDecodeSchema_NilOnEmptyOrMalformed(t *testing.T) {
	if decodeSchema(nil) != nil {
		t.Error("expected nil for an empty schema")
	}
	if decodeSchema([]byte("not json")) != nil {
		t.Error("expected nil for a malformed schema")
	}
	decoded := decodeSchema([]byte(`{"type":"object"}`))
	if decoded["type"] != "object" {
		t.Errorf("expected decoded type object, got %+v", decoded)
	}
}
