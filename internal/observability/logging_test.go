package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		config LogConfig
	}{
		{name: "json format", config: LogConfig{Level: "info", Format: "json"}},
		{name: "text format", config: LogConfig{Level: "debug", Format: "text"}},
		{name: "defaults", config: LogConfig{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.config)
			if logger == nil || logger.logger == nil {
				t.Fatal("NewLogger returned an unusable logger")
			}
		})
	}
}

func TestLogLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"}, {"info", "INFO"}, {"warn", "WARN"}, {"warning", "WARN"},
		{"error", "ERROR"}, {"bogus", "INFO"},
	}
	for _, tt := range tests {
		if got := LogLevelFromString(tt.in).String(); got != tt.want {
			t.Errorf("LogLevelFromString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLogger_RedactsSecretsInMessageAndArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Format: "json", Output: &buf})

	logger.Info(context.Background(), "describing tool", "api_key", "sk-ant-"+strings.Repeat("a", 100))

	out := buf.String()
	if strings.Contains(out, "sk-ant-aaaa") {
		t.Errorf("expected the API key to be redacted, got: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Errorf("expected a redaction marker in output: %s", out)
	}
}

func TestLogger_RedactsSensitiveMapKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Format: "json", Output: &buf})

	logger.Info(context.Background(), "input example", "example", map[string]any{
		"password": "hunter2", "username": "alice",
	})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	example, ok := line["example"].(map[string]any)
	if !ok {
		t.Fatalf("expected example field to be a map, got %T", line["example"])
	}
	if example["password"] != "[REDACTED]" {
		t.Errorf("password should be redacted, got %v", example["password"])
	}
	if example["username"] != "alice" {
		t.Errorf("username should pass through unredacted, got %v", example["username"])
	}
}

func TestWithRunID_TagsLogLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Format: "json", Output: &buf})
	ctx := WithRunID(context.Background(), "run-123")

	logger.Info(ctx, "analysis complete")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if line["run_id"] != "run-123" {
		t.Errorf("expected run_id=run-123 in log line, got %v", line["run_id"])
	}
}
