package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/syrin-labs/mcplint/internal/model"
)

// FormatJSON renders an AnalysisResult as indented JSON.
func FormatJSON(result *model.AnalysisResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(data), nil
}

// FormatText renders an AnalysisResult as a human-readable report: a
// summary line, then errors, then warnings, each sorted by tool name so
// output is deterministic across runs.
func FormatText(result *model.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "verdict: %s (%d tool(s), %d error(s), %d warning(s))\n",
		result.Verdict, result.ToolCount, len(result.Errors), len(result.Warnings))

	if len(result.Errors) > 0 {
		b.WriteString("\nerrors:\n")
		writeDiagnostics(&b, result.Errors)
	}
	if len(result.Warnings) > 0 {
		b.WriteString("\nwarnings:\n")
		writeDiagnostics(&b, result.Warnings)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeDiagnostics(b *strings.Builder, diags []model.Diagnostic) {
	sorted := make([]model.Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Tool != sorted[j].Tool {
			return sorted[i].Tool < sorted[j].Tool
		}
		return sorted[i].Code < sorted[j].Code
	})

	for _, d := range sorted {
		loc := d.Tool
		if d.Field != "" {
			loc = fmt.Sprintf("%s.%s", d.Tool, d.Field)
		}
		fmt.Fprintf(b, "  [%s] %s: %s\n", d.Code, loc, d.Message)
		if d.Suggestion != "" {
			fmt.Fprintf(b, "         suggestion: %s\n", d.Suggestion)
		}
	}
}
