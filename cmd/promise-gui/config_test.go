package main

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/oukeidos/promise/internal/quote"
	"github.com/oukeidos/promise/internal/style"
)

func TestNormalizeGeminiModel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty uses default",
			input: "",
			want:  defaultGUIModel,
		},
		{
			name:  "supported model kept",
			input: "gemini-2.5-pro",
			want:  "gemini-2.5-pro",
		},
		{
			name:  "case and space normalized",
			input: "  Gemini-2.5-Flash-Lite ",
			want:  "gemini-2.5-flash-lite",
		},
		{
			name:  "unknown model falls back",
			input: "unknown-model",
			want:  defaultGUIModel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeGeminiModel(tc.input)
			if got != tc.want {
				t.Fatalf("normalizeGeminiModel(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeStyleValues(t *testing.T) {
	if got := normalizeCategory("stoic"); got != quote.Stoic {
		t.Fatalf("normalizeCategory(stoic) = %s", got)
	}
	if got := normalizeCategory("poetry"); got != quote.Initial {
		t.Fatalf("unknown category = %s, want %s", got, quote.Initial)
	}
	if got := normalizeFont("serif"); got != style.Serif {
		t.Fatalf("normalizeFont(serif) = %s", got)
	}
	if got := normalizeFont("comic"); got != style.Default().Font {
		t.Fatalf("unknown font = %s", got)
	}
	if got := normalizeTextSize(1.23); got != 1.2 {
		t.Fatalf("normalizeTextSize(1.23) = %v, want 1.2", got)
	}
	if got := normalizeTextSize(3); got != style.Default().TextSize {
		t.Fatalf("out of range size = %v", got)
	}
	if got := normalizeTextColor("#abc"); got != "#AABBCC" {
		t.Fatalf("normalizeTextColor(#abc) = %s", got)
	}
	if got := normalizeTextColor("blue"); got != style.DefaultTextColor {
		t.Fatalf("bad color = %s", got)
	}
}

func TestConfigRoundTripThroughPreferences(t *testing.T) {
	prefs := test.NewTempApp(t).Preferences()

	if got := loadConfig(prefs); got.Model != defaultGUIModel || got.Category != quote.Initial {
		t.Fatalf("fresh config = %+v", got)
	}

	want := AppConfig{
		Model:     "gemini-2.5-pro",
		Category:  quote.Bible,
		Font:      style.Serif,
		TextSize:  1.4,
		TextColor: "#FCD34D",
	}
	saveConfig(prefs, want)
	if got := loadConfig(prefs); got != want {
		t.Fatalf("loadConfig = %+v, want %+v", got, want)
	}
}
