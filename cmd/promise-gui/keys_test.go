package main

import (
	"errors"
	"strings"
	"testing"
)

func TestSaveGeminiKey(t *testing.T) {
	t.Run("blank_key_noop", func(t *testing.T) {
		calls := 0
		saved, err := saveGeminiKey("  ", func(string) error {
			calls++
			return nil
		})
		if err != nil || saved {
			t.Fatalf("saved=%v err=%v, want false/nil", saved, err)
		}
		if calls != 0 {
			t.Fatalf("expected 0 save calls, got %d", calls)
		}
	})

	t.Run("trims_and_saves", func(t *testing.T) {
		var got string
		saved, err := saveGeminiKey(" g-key\n", func(key string) error {
			got = key
			return nil
		})
		if err != nil || !saved {
			t.Fatalf("saved=%v err=%v", saved, err)
		}
		if got != "g-key" {
			t.Fatalf("saved key = %q", got)
		}
	})

	t.Run("wraps_keychain_error", func(t *testing.T) {
		saved, err := saveGeminiKey("g-key", func(string) error {
			return errors.New("keychain unavailable")
		})
		if saved || err == nil {
			t.Fatalf("saved=%v err=%v, want failure", saved, err)
		}
		if !strings.Contains(err.Error(), "failed to save Gemini key") {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestResetGeminiKey(t *testing.T) {
	calls := 0
	if err := resetGeminiKey(func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}

	err := resetGeminiKey(func() error { return errors.New("locked") })
	if err == nil || !strings.Contains(err.Error(), "failed to delete Gemini key") {
		t.Fatalf("unexpected error: %v", err)
	}
}
