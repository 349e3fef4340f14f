package mcploader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/syrin-labs/mcplint/internal/model"
)

// MultiLoader loads tools from several MCP servers concurrently and
// concatenates the results. It also satisfies orchestrator.Loader, so an
// Orchestrator never has to know whether it is analyzing one server or a
// whole fleet.
type MultiLoader struct {
	loaders []*Loader
}

// NewMulti builds a MultiLoader, one Loader per server config.
func NewMulti(configs []ServerConfig, logger *slog.Logger) *MultiLoader {
	loaders := make([]*Loader, len(configs))
	for i, cfg := range configs {
		loaders[i] = New(cfg, logger)
	}
	return &MultiLoader{loaders: loaders}
}

type loadResult struct {
	serverID string
	tools    []model.RawTool
	err      error
}

// Load runs every server's Load concurrently and returns the union of
// their tools. The first server error cancels the rest and is returned,
// wrapped with the offending server's ID.
func (m *MultiLoader) Load(ctx context.Context) ([]model.RawTool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan loadResult, len(m.loaders))
	var wg sync.WaitGroup
	for _, l := range m.loaders {
		l := l
		wg.Add(1)
		go func() {
			defer wg.Done()
			tools, err := l.Load(ctx)
			results <- loadResult{serverID: l.config.ID, tools: tools, err: err}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var all []model.RawTool
	for res := range results {
		if res.err != nil {
			cancel()
			return nil, fmt.Errorf("server %s: %w", res.serverID, res.err)
		}
		all = append(all, res.tools...)
	}
	return all, nil
}
