package logger

import (
	"log/slog"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

// Attribute keys containing any of these are dropped. Quote bodies ("text",
// "body", "prompt") are user content, not diagnostics.
var redactedKeyParts = []string{
	"key",
	"token",
	"secret",
	"password",
	"authorization",
	"bearer",
	"prompt",
	"body",
	"text",
}

var redactedValues = []*regexp.Regexp{
	regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{10,}\b`),
	regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]+=*\b`),
	regexp.MustCompile(`(?i)\b(api[_-]?key|access[_-]?token|secret)\b\s*[:=]\s*\S+`),
	regexp.MustCompile(`(?i)[?&]key=[^&\s]+`),
}

// RedactAttr is a slog ReplaceAttr hook that masks credentials and quote text.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	if sensitiveKey(a.Key) || sensitiveValue(a.Value) {
		return slog.String(a.Key, redacted)
	}
	return a
}

func sensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, part := range redactedKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}

func sensitiveValue(v slog.Value) bool {
	s := v.Resolve().String()
	if s == "" {
		return false
	}
	for _, re := range redactedValues {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
