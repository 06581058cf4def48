package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_ShowsEffectiveValues(t *testing.T) {
	path := testConfig(t, "category = \"bible\"\nrequest_timeout = 15\n")

	out, err := executeCommand(t, "config", "--config", path, "--model", "gemini-2.5-pro")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	for _, want := range []string{path, "gemini-2.5-pro", "Bible", "15s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %s", want, out)
		}
	}
}

func TestConfig_InitWritesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if _, err := executeCommand(t, "config", "init", "--config", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	if _, err := executeCommand(t, "config", "init", "--config", path); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if _, err := executeCommand(t, "config", "init", "-f", "--config", path); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}

	out, err := executeCommand(t, "config", "--config", path)
	if err != nil {
		t.Fatalf("reading written config failed: %v", err)
	}
	if !strings.Contains(out, "request_timeout: none") {
		t.Fatalf("expected default timeout, got: %s", out)
	}
}
