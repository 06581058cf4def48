package metadata

import "testing"

func TestDefaultModelListedFirst(t *testing.T) {
	if GeminiModels[0].ID != DefaultGeminiModel {
		t.Fatalf("first model = %q, want %q", GeminiModels[0].ID, DefaultGeminiModel)
	}
}

func TestLookupGemini(t *testing.T) {
	m, ok := LookupGemini(" Gemini-2.5-Pro ")
	if !ok || m.Label != "Gemini 2.5 Pro" {
		t.Fatalf("LookupGemini() = %+v, %v", m, ok)
	}
	if _, ok := LookupGemini("gpt-5"); ok {
		t.Fatal("unknown model reported as known")
	}
}

func TestGeminiModelIDs(t *testing.T) {
	ids := GeminiModelIDs()
	if len(ids) != len(GeminiModels) {
		t.Fatalf("len = %d", len(ids))
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
