package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/oukeidos/promise/internal/prompt"
)

type keychainStubs struct {
	stored  bool
	saved   string
	deleted int
}

func withKeychainStubs(t *testing.T, stored bool, envKey string) *keychainStubs {
	t.Helper()
	stubs := &keychainStubs{stored: stored}

	prevHas := hasStoredKey
	prevEnv := getEnvKey
	prevSave := saveKey
	prevDelete := deleteKey

	hasStoredKey = func() bool { return stubs.stored }
	getEnvKey = func() (string, bool) {
		if envKey == "" {
			return "", false
		}
		return envKey, true
	}
	saveKey = func(key string) error {
		stubs.saved = key
		stubs.stored = true
		return nil
	}
	deleteKey = func() error {
		stubs.deleted++
		stubs.stored = false
		return nil
	}

	t.Cleanup(func() {
		hasStoredKey = prevHas
		getEnvKey = prevEnv
		saveKey = prevSave
		deleteKey = prevDelete
	})
	return stubs
}

func withConfirmer(t *testing.T, c prompt.Confirmer) {
	t.Helper()
	prev := confirmer
	confirmer = c
	t.Cleanup(func() { confirmer = prev })
}

func TestEnv_StatusKeychain(t *testing.T) {
	withKeychainStubs(t, true, "env-secret")

	out, err := executeCommand(t, "env", "status", "--config", testConfig(t, ""))
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "Found (source=Keychain)") {
		t.Fatalf("expected keychain source, got: %s", out)
	}
	if strings.Contains(out, "env-secret") {
		t.Fatalf("output leaked env key")
	}
}

func TestEnv_StatusIsDefaultAction(t *testing.T) {
	withKeychainStubs(t, false, "env-secret")

	out, err := executeCommand(t, "env", "--config", testConfig(t, ""))
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "Found (source=Environment Variable)") {
		t.Fatalf("expected env source, got: %s", out)
	}
	if strings.Contains(out, "env-secret") {
		t.Fatalf("output leaked env key")
	}
}

func TestEnv_StatusEnvIgnoredWhenDisallowed(t *testing.T) {
	withKeychainStubs(t, false, "env-secret")

	out, err := executeCommand(t, "env", "status", "--allow-env=false", "--config", testConfig(t, ""))
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "ignored, allow_env is off") {
		t.Fatalf("expected ignored env note, got: %s", out)
	}
}

func TestEnv_StatusNotFound(t *testing.T) {
	withKeychainStubs(t, false, "")

	out, err := executeCommand(t, "env", "status", "--config", testConfig(t, ""))
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "Not Found (built-in quotes only)") {
		t.Fatalf("expected not found, got: %s", out)
	}
}

func TestEnv_SetupSavesPromptedKey(t *testing.T) {
	stubs := withKeychainStubs(t, false, "")
	prevPrompt := promptForKey
	promptForKey = func(string) (string, error) { return "new-key", nil }
	t.Cleanup(func() { promptForKey = prevPrompt })

	out, err := executeCommand(t, "env", "setup", "--config", testConfig(t, ""))
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if stubs.saved != "new-key" {
		t.Fatalf("saved key = %q", stubs.saved)
	}
	if strings.Contains(out, "new-key") {
		t.Fatalf("output leaked key: %s", out)
	}
}

func TestEnv_SetupRejectsBlankKey(t *testing.T) {
	stubs := withKeychainStubs(t, false, "")
	prevPrompt := promptForKey
	promptForKey = func(string) (string, error) { return "", nil }
	t.Cleanup(func() { promptForKey = prevPrompt })

	if _, err := executeCommand(t, "env", "setup", "--config", testConfig(t, "")); err == nil {
		t.Fatalf("expected error for blank key")
	}
	if stubs.saved != "" {
		t.Fatalf("blank key should not be saved")
	}
}

func TestEnv_DeleteWithYes(t *testing.T) {
	stubs := withKeychainStubs(t, true, "")

	out, err := executeCommand(t, "env", "delete", "-y", "--config", testConfig(t, ""))
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if stubs.deleted != 1 || !strings.Contains(out, "Deleted") {
		t.Fatalf("deleted=%d out=%s", stubs.deleted, out)
	}
}

func TestEnv_DeleteNonInteractiveNeedsYes(t *testing.T) {
	stubs := withKeychainStubs(t, true, "")
	withConfirmer(t, prompt.Confirmer{IsInteractive: func() bool { return false }})

	_, err := executeCommand(t, "env", "delete", "--config", testConfig(t, ""))
	if !errors.Is(err, prompt.ErrNonInteractive) {
		t.Fatalf("err = %v, want ErrNonInteractive", err)
	}
	if stubs.deleted != 0 {
		t.Fatalf("key deleted without confirmation")
	}
}

func TestEnv_DeleteAnsweredNo(t *testing.T) {
	stubs := withKeychainStubs(t, true, "")
	withConfirmer(t, prompt.Confirmer{
		In:            strings.NewReader("n\n"),
		IsInteractive: func() bool { return true },
	})

	out, err := executeCommand(t, "env", "delete", "--config", testConfig(t, ""))
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if stubs.deleted != 0 || !strings.Contains(out, "Aborted.") {
		t.Fatalf("deleted=%d out=%s", stubs.deleted, out)
	}
}

func TestEnv_DeleteWithoutStoredKey(t *testing.T) {
	stubs := withKeychainStubs(t, false, "")

	out, err := executeCommand(t, "env", "delete", "-y", "--config", testConfig(t, ""))
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if stubs.deleted != 0 || !strings.Contains(out, "No Gemini API key stored") {
		t.Fatalf("deleted=%d out=%s", stubs.deleted, out)
	}
}
