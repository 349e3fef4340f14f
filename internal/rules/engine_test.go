package rules

import (
	"testing"

	"github.com/syrin-labs/mcplint/internal/model"
)

func TestEngine_RunInRegistrationOrderAndIsolatesPanics(t *testing.T) {
	var order []string
	ruleset := []Rule{
		NewFunc("A1", model.SeverityWarning, "first", "", func(ctx *AnalysisContext) []model.Diagnostic {
			order = append(order, "A1")
			return nil
		}),
		NewFunc("A2", model.SeverityWarning, "panics", "", func(ctx *AnalysisContext) []model.Diagnostic {
			order = append(order, "A2")
			panic("boom")
		}),
		NewFunc("A3", model.SeverityWarning, "third", "", func(ctx *AnalysisContext) []model.Diagnostic {
			order = append(order, "A3")
			return []model.Diagnostic{{Code: "A3"}}
		}),
	}
	engine := NewEngine(nil, ruleset, nil)
	diags := engine.Run(&AnalysisContext{}, Filter{})

	if len(order) != 3 || order[0] != "A1" || order[1] != "A2" || order[2] != "A3" {
		t.Fatalf("unexpected execution order: %v", order)
	}
	if len(diags) != 1 || diags[0].Code != "A3" {
		t.Fatalf("expected only A3's diagnostic to survive the A2 panic, got %+v", diags)
	}
}

func TestEngine_AllowListWinsOverDenyList(t *testing.T) {
	ruleset := []Rule{
		NewFunc("E100", model.SeverityError, "", "", func(ctx *AnalysisContext) []model.Diagnostic {
			return []model.Diagnostic{{Code: "E100"}}
		}),
		NewFunc("E101", model.SeverityError, "", "", func(ctx *AnalysisContext) []model.Diagnostic {
			return []model.Diagnostic{{Code: "E101"}}
		}),
	}
	engine := NewEngine(nil, ruleset, nil)

	filter := ParseSelectors([]string{"E100", "-E100"})
	diags := engine.Run(&AnalysisContext{}, filter)
	if len(diags) != 1 || diags[0].Code != "E100" {
		t.Fatalf("allow-list should win when both present, got %+v", diags)
	}
}

func TestParseSelectors_DenyOnly(t *testing.T) {
	f := ParseSelectors([]string{"-W112"})
	if f.Allows("W112") {
		t.Error("W112 should be denied")
	}
	if !f.Allows("E101") {
		t.Error("E101 should be allowed, no allow-list present")
	}
}

func TestParseSelectors_CaseInsensitive(t *testing.T) {
	f := ParseSelectors([]string{"e100"})
	if !f.Allows("E100") {
		t.Error("selectors should be case-insensitive")
	}
}
