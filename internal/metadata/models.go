// Package metadata lists the Gemini models known to produce usable quotes.
package metadata

import "strings"

type GeminiModel struct {
	ID    string
	Label string
	// Preview models may be withdrawn without notice.
	Preview bool
}

// DefaultGeminiModel must stay the first entry of GeminiModels.
const DefaultGeminiModel = "gemini-2.5-flash"

var GeminiModels = []GeminiModel{
	{ID: "gemini-2.5-flash", Label: "Gemini 2.5 Flash"},
	{ID: "gemini-2.5-flash-lite", Label: "Gemini 2.5 Flash-Lite"},
	{ID: "gemini-2.5-pro", Label: "Gemini 2.5 Pro"},
	{ID: "gemini-3-flash-preview", Label: "Gemini 3 Flash (preview)", Preview: true},
}

func GeminiModelIDs() []string {
	ids := make([]string, 0, len(GeminiModels))
	for _, m := range GeminiModels {
		ids = append(ids, m.ID)
	}
	return ids
}

// LookupGemini finds a model by ID, ignoring case and surrounding space.
func LookupGemini(id string) (GeminiModel, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, m := range GeminiModels {
		if m.ID == id {
			return m, true
		}
	}
	return GeminiModel{}, false
}
