package main

import (
	"fyne.io/fyne/v2"

	"github.com/oukeidos/promise/internal/logger"
	"github.com/oukeidos/promise/internal/metadata"
	"github.com/oukeidos/promise/internal/quote"
	"github.com/oukeidos/promise/internal/style"
)

// AppConfig is what the window remembers between launches. Favorites and
// quotes are session-only.
type AppConfig struct {
	Model     string
	Category  quote.Category
	Font      style.FontStyle
	TextSize  float64
	TextColor string
}

const defaultGUIModel = metadata.DefaultGeminiModel

func normalizeGeminiModel(id string) string {
	if id == "" {
		return defaultGUIModel
	}
	m, ok := metadata.LookupGemini(id)
	if !ok {
		logger.Warn("Unknown model in preferences; using default", "model", id, "effective", defaultGUIModel)
		return defaultGUIModel
	}
	return m.ID
}

func normalizeCategory(s string) quote.Category {
	c, err := quote.Parse(s)
	if err != nil {
		return quote.Initial
	}
	return c
}

func normalizeFont(s string) style.FontStyle {
	f := style.FontStyle(s)
	if style.ValidateFont(f) != nil {
		return style.Default().Font
	}
	return f
}

func normalizeTextSize(v float64) float64 {
	v = style.SnapTextSize(v)
	if style.ValidateTextSize(v) != nil {
		logger.Warn("Text size out of range in preferences", "requested", v)
		return style.Default().TextSize
	}
	return v
}

func normalizeTextColor(s string) string {
	c, err := style.NormalizeColor(s)
	if err != nil {
		return style.DefaultTextColor
	}
	return c
}

func loadConfig(prefs fyne.Preferences) AppConfig {
	d := style.Default()
	return AppConfig{
		Model:     normalizeGeminiModel(prefs.StringWithFallback("Model", defaultGUIModel)),
		Category:  normalizeCategory(prefs.StringWithFallback("Category", string(quote.Initial))),
		Font:      normalizeFont(prefs.StringWithFallback("Font", string(d.Font))),
		TextSize:  normalizeTextSize(prefs.FloatWithFallback("TextSize", d.TextSize)),
		TextColor: normalizeTextColor(prefs.StringWithFallback("TextColor", d.TextColor)),
	}
}

func saveConfig(prefs fyne.Preferences, cfg AppConfig) {
	prefs.SetString("Model", cfg.Model)
	prefs.SetString("Category", string(cfg.Category))
	prefs.SetString("Font", string(cfg.Font))
	prefs.SetFloat("TextSize", cfg.TextSize)
	prefs.SetString("TextColor", cfg.TextColor)
}
