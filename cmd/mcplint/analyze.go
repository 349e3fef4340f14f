package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syrin-labs/mcplint/internal/config"
	"github.com/syrin-labs/mcplint/internal/loader"
	"github.com/syrin-labs/mcplint/internal/mcploader"
	"github.com/syrin-labs/mcplint/internal/observability"
	"github.com/syrin-labs/mcplint/pkg/mcplint"
)

func buildAnalyzeCmd() *cobra.Command {
	var (
		configPath string
		serverPath string
		strict     bool
		rules      string
		timeout    time.Duration
		format     string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze an MCP server's tool contracts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, analyzeFlags{
				configPath: configPath,
				serverPath: serverPath,
				strict:     strict,
				rules:      rules,
				timeout:    timeout,
				format:     format,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to mcplint YAML configuration file (optional)")
	cmd.Flags().StringVar(&serverPath, "server", "", "Path to an MCP server YAML descriptor (required)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Promote warnings to errors before computing the verdict")
	cmd.Flags().StringVar(&rules, "rules", "", "Comma-separated rule selectors, e.g. E100,-W112")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Overrides the configured analysis deadline")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json")
	_ = cmd.MarkFlagRequired("server")

	return cmd
}

type analyzeFlags struct {
	configPath string
	serverPath string
	strict     bool
	rules      string
	timeout    time.Duration
	format     string
}

func runAnalyze(cmd *cobra.Command, flags analyzeFlags) error {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if flags.strict {
		cfg.Analysis.Strict = true
	}
	if flags.rules != "" {
		cfg.Analysis.Rules = strings.Split(flags.rules, ",")
	}
	if flags.timeout > 0 {
		cfg.Analysis.Timeout = flags.timeout
	}

	servers, err := loadServerConfigs(flags.serverPath)
	if err != nil {
		return fmt.Errorf("load server descriptor: %w", err)
	}

	logger := slog.Default()
	var src mcplint.Loader = mcploader.NewMulti(servers, logger)
	src = loader.NewPreCheckingLoader(src, logger)

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
		metricsServer, err := observability.ServeMetrics(cfg.Metrics.Addr, logger)
		if err != nil {
			return fmt.Errorf("serve metrics: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	analyser, err := mcplint.New(src, mcplint.Options{Config: cfg, Logger: logger, Metrics: metrics})
	if err != nil {
		return fmt.Errorf("build analyser: %w", err)
	}

	result, err := analyser.Analyse(context.Background(), cfg.Analysis)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	var out string
	switch flags.format {
	case "json":
		out, err = FormatJSON(result)
	default:
		out = FormatText(result)
	}
	if err != nil {
		return fmt.Errorf("format result: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	if result.Verdict == "fail" {
		os.Exit(1)
	}
	return nil
}

// loadServerConfigs reads a YAML file holding either a single server under
// a top-level "server" key or a list under "servers", so a single-server
// descriptor doesn't need to be wrapped in a one-element list.
func loadServerConfigs(path string) ([]mcploader.ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Server  *mcploader.ServerConfig  `yaml:"server"`
		Servers []mcploader.ServerConfig `yaml:"servers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse server descriptor: %w", err)
	}

	servers := doc.Servers
	if doc.Server != nil {
		servers = append(servers, *doc.Server)
	}
	if len(servers) == 0 {
		return nil, fmt.Errorf("server descriptor declares no servers")
	}
	for i := range servers {
		if err := servers[i].Validate(); err != nil {
			return nil, err
		}
	}
	return servers, nil
}
