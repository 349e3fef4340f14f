package index

import (
	"testing"

	"github.com/syrin-labs/mcplint/internal/model"
)

func TestBuild_ToolByNameIsCaseInsensitive(t *testing.T) {
	tools := []model.ToolSpec{{Name: "Get_User", Description: "fetch a user"}}
	idx := Build(tools)

	got, ok := idx.ToolByName("get_user")
	if !ok {
		t.Fatal("expected a case-insensitive lookup to succeed")
	}
	if got.Name != "Get_User" {
		t.Errorf("expected the original-cased tool, got %+v", got)
	}
}

func TestBuild_FirstDuplicateNameWinsIndexSlot(t *testing.T) {
	tools := []model.ToolSpec{
		{Name: "dup", Description: "first"},
		{Name: "DUP", Description: "second"},
	}
	idx := Build(tools)

	got, ok := idx.ToolByName("dup")
	if !ok {
		t.Fatal("expected dup to resolve")
	}
	if got.Description != "first" {
		t.Errorf("expected the first-registered tool to win the name slot, got %q", got.Description)
	}
}

func TestBuild_InputsAndOutputsNamedAcrossTools(t *testing.T) {
	tools := []model.ToolSpec{
		{Name: "a", Inputs: []model.FieldSpec{{Name: "user_id", Tool: "a"}}},
		{Name: "b", Inputs: []model.FieldSpec{{Name: "USER_ID", Tool: "b"}}},
		{Name: "c", Outputs: []model.FieldSpec{{Name: "user_id", Tool: "c"}}},
	}
	idx := Build(tools)

	inputs := idx.InputsNamed("user_id")
	if len(inputs) != 2 {
		t.Errorf("expected 2 input occurrences case-insensitively, got %d", len(inputs))
	}
	outputs := idx.OutputsNamed("user_id")
	if len(outputs) != 1 {
		t.Errorf("expected 1 output occurrence, got %d", len(outputs))
	}
}

func TestBuild_ToolsForKeywordMatchesNameAndDescription(t *testing.T) {
	tools := []model.ToolSpec{
		{Name: "delete_account", Description: "Permanently removes a user account."},
		{Name: "get_profile", Description: "Reads the account settings."},
	}
	idx := Build(tools)

	matches := idx.ToolsForKeyword("account")
	if _, ok := matches["delete_account"]; !ok {
		t.Error("expected delete_account to match keyword 'account' via its name")
	}
	if _, ok := matches["get_profile"]; !ok {
		t.Error("expected get_profile to match keyword 'account' via its description")
	}
}

func TestKeywords_DropsShortWords(t *testing.T) {
	words := Keywords("a", "to an ID field")
	for _, w := range words {
		if len(w) < 3 {
			t.Errorf("expected only words of length >= 3, got %q in %v", w, words)
		}
	}
}
