// Package config reads the optional TOML settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/oukeidos/promise/internal/background"
	"github.com/oukeidos/promise/internal/files"
	"github.com/oukeidos/promise/internal/logger"
	"github.com/oukeidos/promise/internal/metadata"
	"github.com/oukeidos/promise/internal/quote"
)

const DefaultPath = "~/.config/promise/config.toml"

// Config holds the process-wide settings. Flags override it.
type Config struct {
	Model        string
	LogLevel     string
	LogFile      string
	AllowEnv     bool
	ImageBaseURL string
	// RequestTimeout bounds generator and image requests. Zero waits forever.
	RequestTimeout time.Duration
	Category       quote.Category
}

type fileConfig struct {
	Model          string `toml:"model"`
	LogLevel       string `toml:"log_level"`
	LogFile        string `toml:"log_file"`
	AllowEnv       *bool  `toml:"allow_env"`
	ImageBaseURL   string `toml:"image_base_url"`
	RequestTimeout int    `toml:"request_timeout"`
	Category       string `toml:"category"`
}

func Default() Config {
	return Config{
		Model:        metadata.DefaultGeminiModel,
		LogLevel:     "info",
		AllowEnv:     true,
		ImageBaseURL: background.DefaultBaseURL,
		Category:     quote.Initial,
	}
}

// Load parses path, or DefaultPath when path is blank. A missing file yields
// the defaults.
func Load(path string) (Config, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		var strict *toml.StrictMissingError
		if !errors.As(err, &strict) {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		logger.Warn("Ignoring unknown config keys", "path", resolved, "detail", strict.String())
		raw = fileConfig{}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := strings.TrimSpace(raw.Model); v != "" {
		cfg.Model = v
		if _, ok := metadata.LookupGemini(v); !ok {
			logger.Warn("Unknown Gemini model in config; using it anyway", "model", v)
		}
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		if _, err := logger.ParseLevel(v); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if raw.AllowEnv != nil {
		cfg.AllowEnv = *raw.AllowEnv
	}
	if v := strings.TrimSpace(raw.ImageBaseURL); v != "" {
		cfg.ImageBaseURL = v
	}
	if raw.RequestTimeout < 0 {
		return Config{}, fmt.Errorf("parse config: request_timeout must not be negative")
	}
	cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	if v := strings.TrimSpace(raw.Category); v != "" {
		c, err := quote.Parse(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.Category = c
	}

	return cfg, nil
}

// WriteDefault writes a commented starter file to path. It refuses to replace
// an existing file unless overwrite is set.
func WriteDefault(path string, overwrite bool) (string, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return "", err
	}
	if !overwrite {
		if _, err := os.Stat(resolved); err == nil {
			return "", fmt.Errorf("config already exists: %s", resolved)
		}
	}

	d := Default()
	allow := d.AllowEnv
	body, err := toml.Marshal(fileConfig{
		Model:        d.Model,
		LogLevel:     d.LogLevel,
		AllowEnv:     &allow,
		ImageBaseURL: d.ImageBaseURL,
		Category:     d.Category.Label(),
	})
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	header := "# promise settings. request_timeout is in seconds; 0 waits forever.\n"
	if err := files.AtomicWrite(resolved, append([]byte(header), body...), 0o600); err != nil {
		return "", err
	}
	return resolved, nil
}

func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(DefaultPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
