package rules

import (
	"testing"

	"github.com/syrin-labs/mcplint/internal/model"
)

func TestToolNotFoundContext_Diagnose(t *testing.T) {
	d := ToolNotFoundContext{ToolName: "ghost", ScriptName: "smoke.yaml"}.Diagnose()
	if d.Code != "E000" || d.Severity != model.SeverityError || d.Tool != "ghost" {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
}

func TestHighEntropyOutputContext_DefaultsThresholdAndClamps(t *testing.T) {
	d := HighEntropyOutputContext{ToolName: "gen", EntropyScore: 1.5}.Diagnose()
	if d.Context["entropyThreshold"] != 0.7 {
		t.Errorf("expected default threshold 0.7, got %v", d.Context["entropyThreshold"])
	}
	if d.Context["entropyScore"] != 1.0 {
		t.Errorf("expected entropy score clamped to 1.0, got %v", d.Context["entropyScore"])
	}
}

func TestHighEntropyOutputContext_CustomThreshold(t *testing.T) {
	custom := 0.9
	d := HighEntropyOutputContext{ToolName: "gen", EntropyScore: 0.5, EntropyThreshold: &custom}.Diagnose()
	if d.Context["entropyThreshold"] != 0.9 {
		t.Errorf("expected custom threshold to be honored, got %v", d.Context["entropyThreshold"])
	}
}

func TestUnstableDefaultsContext_Diagnose(t *testing.T) {
	d := UnstableDefaultsContext{
		ToolName:       "t",
		UnstableFields: []UnstableField{{FieldName: "createdAt", Reason: "uses time.Now()"}},
	}.Diagnose()
	if d.Code != "W301" || d.Severity != model.SeverityWarning {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
}

func TestDefaultRuleset_RegistersEveryCatalogCode(t *testing.T) {
	want := []string{
		"E100", "E101", "E102", "E103", "E104", "E105", "E106", "E107", "E108", "E109", "E110", "E112", "E113",
		"E000", "E200", "E300", "E301", "E400", "E403", "E500", "E501", "E600",
		"W100", "W101", "W102", "W103", "W104", "W105", "W106", "W107", "W108", "W109",
		"W111", "W112", "W113", "W114", "W115", "W116", "W117",
		"W110", "W300", "W301",
	}
	ruleset := DefaultRuleset()
	got := map[string]bool{}
	for _, r := range ruleset {
		got[r.Code()] = true
	}
	for _, code := range want {
		if !got[code] {
			t.Errorf("expected %s to be registered", code)
		}
	}
	if len(ruleset) != len(want) {
		t.Errorf("ruleset has %d rules, want %d", len(ruleset), len(want))
	}
}
