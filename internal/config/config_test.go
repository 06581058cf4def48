package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oukeidos/promise/internal/quote"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, Default())
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %v, want no timeout by default", cfg.RequestTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
model = "gemini-2.5-pro"
log_level = "debug"
allow_env = false
image_base_url = "http://localhost:9000"
request_timeout = 15
category = "bible"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "gemini-2.5-pro" {
		t.Fatalf("Model = %q", cfg.Model)
	}
	if cfg.LogLevel != "debug" || cfg.AllowEnv {
		t.Fatalf("LogLevel/AllowEnv = %q/%v", cfg.LogLevel, cfg.AllowEnv)
	}
	if cfg.ImageBaseURL != "http://localhost:9000" {
		t.Fatalf("ImageBaseURL = %q", cfg.ImageBaseURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.Category != quote.Bible {
		t.Fatalf("Category = %s", cfg.Category)
	}
}

func TestLoadBlankValuesKeepDefaults(t *testing.T) {
	path := writeConfig(t, "model = \"  \"\nlog_level = \"\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != Default().Model || cfg.LogLevel != "info" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"InvalidTOML":     "model = \n",
		"BadLevel":        "log_level = \"loud\"\n",
		"NegativeTimeout": "request_timeout = -1\n",
		"BadCategory":     "category = \"poetry\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			if err == nil || !strings.Contains(err.Error(), "parse config") {
				t.Fatalf("err = %v, want parse config error", err)
			}
		})
	}
}

func TestLoadUnknownKeysIgnored(t *testing.T) {
	cfg, err := Load(writeConfig(t, "model = \"gemini-2.5-flash-lite\"\ntheme = \"dark\"\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "gemini-2.5-flash-lite" {
		t.Fatalf("Model = %q", cfg.Model)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promise", "config.toml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	cfg, err := Load(written)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("round trip = %+v, want %+v", cfg, Default())
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestResolvePathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := ResolvePath("")
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	want := filepath.Join(home, ".config", "promise", "config.toml")
	if got != want {
		t.Fatalf("ResolvePath() = %q, want %q", got, want)
	}
}
