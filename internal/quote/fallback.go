package quote

var fallbacks = map[Category]Quote{
	Bible: {
		Text:      "I can do all this through him who gives me strength.",
		Reference: "Philippians 4:13",
		Category:  Bible,
	},
	Prayer: {
		Text:      "Lord, grant me the strength to endure what I cannot change, and the courage to change what I can.",
		Reference: "Serenity Prayer",
		Category:  Prayer,
	},
	Stoic: {
		Text:      "You have power over your mind - not outside events. Realize this, and you will find strength.",
		Reference: "Marcus Aurelius",
		Category:  Stoic,
	},
	Athlete: {
		Text:      "It's not about how hard you hit. It's about how hard you can get hit and keep moving forward.",
		Reference: "Rocky Balboa",
		Category:  Athlete,
	},
}

// Fallback returns the built-in quote for c. It never fails: an unknown
// category gets the athlete entry, tagged with the requested value.
func Fallback(c Category) Quote {
	q, ok := fallbacks[c]
	if !ok {
		q = fallbacks[Athlete]
	}
	q.Category = c
	return q
}
