package main

import "testing"

func TestBuildRootCmd_HasAnalyzeSubcommand(t *testing.T) {
	root := buildRootCmd()
	cmd, _, err := root.Find([]string{"analyze"})
	if err != nil {
		t.Fatalf("expected an analyze subcommand, got error: %v", err)
	}
	if cmd.Use != "analyze" {
		t.Errorf("expected analyze command, got %q", cmd.Use)
	}
}

func TestBuildAnalyzeCmd_RequiresServerFlag(t *testing.T) {
	cmd := buildAnalyzeCmd()
	if err := cmd.ValidateRequiredFlags(); err == nil {
		t.Error("expected --server to be required")
	}
}
