package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanCommandReportsDuplicateDirectories(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "left", "a.txt"), "hello")
	writeTestFile(t, filepath.Join(root, "left", "b.txt"), "world")
	writeTestFile(t, filepath.Join(root, "right", "a.txt"), "hello")
	writeTestFile(t, filepath.Join(root, "right", "b.txt"), "world")

	var buf bytes.Buffer
	out := &PlainOutput{Device: &buf}

	c := &ScanCommand{Paths: []string{root}, HashAlgorithm: "sha-256", Concurrency: 2}
	var result bytes.Buffer

	dest := filepath.Join(root, "dup.out")
	c.Output = dest
	if code, err := c.Run(out); err != nil || code != 0 {
		t.Fatalf("Run() = (%d, %v), want (0, nil)", code, err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	result.Write(data)

	text := result.String()
	if !strings.Contains(text, filepath.Join(root, "left")) {
		t.Errorf("output %q does not mention %q", text, filepath.Join(root, "left"))
	}
	if !strings.Contains(text, filepath.Join(root, "right")) {
		t.Errorf("output %q does not mention %q", text, filepath.Join(root, "right"))
	}
}

func TestScanCommandRejectsExistingOutputWithoutOverwrite(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.txt"), "x")

	dest := filepath.Join(root, "out.dup")
	writeTestFile(t, dest, "pre-existing")

	var buf bytes.Buffer
	out := &PlainOutput{Device: &buf}
	c := &ScanCommand{Paths: []string{root}, Output: dest}
	if _, err := c.Run(out); err == nil {
		t.Errorf("Run() = nil error, want a refusal to overwrite %q", dest)
	}
}
