package depgraph

import (
	"testing"

	"github.com/syrin-labs/mcplint/internal/model"
)

func TestInfer_NoSelfEdges(t *testing.T) {
	tools := []model.ToolSpec{
		{
			Name:    "echo",
			Outputs: []model.FieldSpec{{Name: "value", Type: model.TypeString}},
			Inputs:  []model.FieldSpec{{Name: "value", Type: model.TypeString, Required: true}},
		},
	}

	deps := Infer(tools)
	for _, d := range deps {
		if d.FromTool == d.ToTool {
			t.Fatalf("self-edge produced: %+v", d)
		}
	}
}

func TestInfer_ExactNameAndTypeMatchClearsThreshold(t *testing.T) {
	tools := []model.ToolSpec{
		{
			Name:        "get_user_id",
			Description: "looks up a user id",
			Outputs:     []model.FieldSpec{{Name: "userId", Type: model.TypeString}},
		},
		{
			Name:        "get_user_details",
			Description: "looks up user details",
			Inputs:      []model.FieldSpec{{Name: "userId", Type: model.TypeString, Required: true}},
		},
	}

	deps := Infer(tools)
	if len(deps) != 1 {
		t.Fatalf("expected 1 dependency, got %d: %+v", len(deps), deps)
	}
	d := deps[0]
	if d.FromTool != "get_user_id" || d.ToTool != "get_user_details" {
		t.Errorf("unexpected dependency direction: %+v", d)
	}
	if d.Confidence < Threshold || d.Confidence > 1.0 {
		t.Errorf("confidence %v out of [0.6,1.0] range", d.Confidence)
	}
}

func TestInfer_IncompatibleTypesDoNotClearThreshold(t *testing.T) {
	tools := []model.ToolSpec{
		{
			Name:    "source",
			Outputs: []model.FieldSpec{{Name: "amount", Type: model.TypeString}},
		},
		{
			Name:   "sink",
			Inputs: []model.FieldSpec{{Name: "amount", Type: model.TypeNumber, Required: true}},
		},
	}

	deps := Infer(tools)
	if len(deps) != 0 {
		t.Fatalf("expected no dependency across an incompatible type pair, got %+v", deps)
	}
}

func TestInfer_ConfidenceClampedToUnitRange(t *testing.T) {
	// Exact name match + exact type match + full description overlap + bonus
	// would exceed 1.0 without clamping.
	tools := []model.ToolSpec{
		{
			Name:              "alpha",
			DescriptionTokens: []string{"shared", "words", "here"},
			Outputs:           []model.FieldSpec{{Name: "token", Type: model.TypeString}},
		},
		{
			Name:              "beta",
			DescriptionTokens: []string{"shared", "words", "here"},
			Inputs:            []model.FieldSpec{{Name: "token", Type: model.TypeString, Required: true}},
		},
	}

	deps := Infer(tools)
	if len(deps) != 1 {
		t.Fatalf("expected 1 dependency, got %d", len(deps))
	}
	if deps[0].Confidence > 1.0 {
		t.Errorf("confidence must be clamped to 1.0, got %v", deps[0].Confidence)
	}
}

func TestNameSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"userId", "userId", 1.0},
		{"UserID", "userid", 1.0},
		{"id", "userId", 0.7},
		{"query", "searchQuery", 0.8},
	}
	for _, c := range cases {
		got := nameSimilarity(c.a, c.b)
		if got != c.want {
			t.Errorf("nameSimilarity(%q,%q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestTypeCompatibility(t *testing.T) {
	if got := typeCompatibility(model.TypeString, model.TypeString); got != 0.3 {
		t.Errorf("exact match = %v, want 0.3", got)
	}
	if got := typeCompatibility(model.TypeNumber, model.TypeString); got != 0.2 {
		t.Errorf("safe widening = %v, want 0.2", got)
	}
	if got := typeCompatibility(model.TypeString, model.TypeNumber); got != -0.5 {
		t.Errorf("incompatible = %v, want -0.5", got)
	}
	if got := typeCompatibility(model.TypeBoolean, model.TypeObject); got != 0 {
		t.Errorf("unrelated = %v, want 0", got)
	}
}
