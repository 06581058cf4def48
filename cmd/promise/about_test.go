package main

import (
	"strings"
	"testing"
)

func TestAbout_ListsSources(t *testing.T) {
	out, err := executeCommand(t, "about", "--config", testConfig(t, ""))
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	for _, want := range []string{"Google Gemini", "pollinations.ai", projectURL} {
		if !strings.Contains(out, want) {
			t.Errorf("about output missing %q:\n%s", want, out)
		}
	}
}
