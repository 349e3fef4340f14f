package mcploader

import (
	"context"
	"encoding/json"
)

// transport is the narrow request/response surface a loader needs: unlike
// a long-lived agent client, it never has to field server-initiated
// requests (sampling, elicitation), so it drops everything client.go in
// the platform this was adapted from needed only for that.
type transport interface {
	Connect(ctx context.Context) error
	Close() error
	Call(ctx context.Context, method string, params any) (json.RawMessage, error)
}

func newTransport(cfg *ServerConfig) transport {
	switch cfg.Transport {
	case TransportHTTP:
		return newHTTPTransport(cfg)
	default:
		return newStdioTransport(cfg)
	}
}
