// Command mcplint analyzes a live MCP server's tool contracts for schema
// and dependency defects.
//
// # Basic usage
//
//	mcplint analyze --server mcp-server.yaml
//	mcplint analyze --server mcp-server.yaml --config mcplint.yaml --strict --format json
//
// This binary is the CLI surface around the analysis core in
// internal/orchestrator: it wires a stdio/HTTP MCP loader (internal/mcploader)
// into the pipeline and renders the result. The core itself never spawns a
// process or opens a socket; this command exists only so the core is
// reachable as a program.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	rootCmd := buildRootCmd()
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mcplint",
		Short:        "mcplint - static and behavioral analyzer for MCP tool contracts",
		Long:         `mcplint loads a server's MCP tool listing, normalizes its schemas, infers likely tool-chaining dependencies, and runs a rule catalog over the result to produce a pass/warn/fail verdict.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
	}
	rootCmd.AddCommand(buildAnalyzeCmd())
	return rootCmd
}

// Build information, populated by ldflags during build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
