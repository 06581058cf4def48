package fetcher

import (
	"fmt"

	"github.com/oukeidos/promise/internal/quote"
)

// SystemInstruction is installed on the generator once, at construction.
const SystemInstruction = "You are a high-performance lifestyle assistant designed to provide powerful, aesthetic content for a mobile lock screen widget. " +
	"Your target audience includes athletes, stoics, and people of faith seeking daily strength. " +
	"Keep content concise (under 25 words) for maximum visual impact on a phone screen."

var categoryPrompts = map[quote.Category]string{
	quote.Bible:   "Provide a Bible verse focused on strength, courage, or peace from a standard translation (NIV, ESV, KJV).",
	quote.Prayer:  "Provide a very short, powerful 1-2 sentence prayer for strength, guidance, or gratitude.",
	quote.Stoic:   "Provide a profound quote from a Stoic philosopher (Marcus Aurelius, Seneca, Epictetus) about resilience, control, discipline, or acceptance.",
	quote.Athlete: "Provide a gritty, intense motivational quote suitable for an athlete or someone training. Focus on discipline, pain, victory, persistence, and mental toughness.",
}

// Prompt builds the per-request instruction for c.
func Prompt(c quote.Category) string {
	specific, ok := categoryPrompts[c]
	if !ok {
		specific = categoryPrompts[quote.Athlete]
	}
	return fmt.Sprintf("Generate a %s content piece. %s Return strictly JSON.", c, specific)
}
