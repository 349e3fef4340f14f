package mcploader

import (
	"context"
	"testing"
	"time"
)

func TestNewTransport_StdioDefault(t *testing.T) {
	cfg := &ServerConfig{ID: "t", Command: "echo"}
	tr := newTransport(cfg)
	if _, ok := tr.(*stdioTransport); !ok {
		t.Errorf("expected *stdioTransport as the default, got %T", tr)
	}
}

func TestNewTransport_HTTP(t *testing.T) {
	cfg := &ServerConfig{ID: "t", Transport: TransportHTTP, URL: "https://example.com/mcp"}
	tr := newTransport(cfg)
	if _, ok := tr.(*httpTransport); !ok {
		t.Errorf("expected *httpTransport, got %T", tr)
	}
}

func TestNewStdioTransport_CarriesConfig(t *testing.T) {
	cfg := &ServerConfig{
		ID:      "test-stdio",
		Command: "mcp-server",
		Args:    []string{"--config", "test.yaml"},
		Timeout: 30 * time.Second,
	}
	tr := newStdioTransport(cfg)
	if tr.config != cfg {
		t.Error("expected config to be retained")
	}
	if tr.pending == nil {
		t.Error("expected pending call tracker to be initialized")
	}
	if tr.connected.Load() {
		t.Error("expected connected to be false before Connect")
	}
}

func TestHTTPTransport_CallBeforeConnectFails(t *testing.T) {
	tr := newHTTPTransport(&ServerConfig{ID: "t", URL: "https://example.com/mcp"})
	if _, err := tr.Call(context.Background(), "tools/list", nil); err == nil {
		t.Error("expected an error calling before Connect")
	}
}
