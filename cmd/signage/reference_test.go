package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReferenceCommand(t *testing.T) {
	out, err := execute(t, "reference", "krs", "entrance", "1")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != "KRS-ENT-001-v1" {
		t.Errorf("output = %q, want KRS-ENT-001-v1", strings.TrimSpace(out))
	}
}

func TestReferenceCommandUnknownTypeUsesGenericCode(t *testing.T) {
	out, err := execute(t, "reference", "krs", "billboard", "2")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != "KRS-GEN-002-v1" {
		t.Errorf("output = %q, want KRS-GEN-002-v1", strings.TrimSpace(out))
	}
}

func TestReferenceCommandRejectsBadSequence(t *testing.T) {
	if _, err := execute(t, "reference", "krs", "entrance", "zero"); err == nil {
		t.Error("expected error for non-numeric sequence")
	}
}

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default")
	}
	if GitCommit == "" || BuildDate == "" {
		t.Error("build metadata should have defaults")
	}
}
