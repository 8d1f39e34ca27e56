package lead

import (
	"regexp"
	"strings"
)

// Best-effort client-facing input scrubbing. This is a denylist filter, not
// a parser-based HTML sanitizer: it exists as a defense-in-depth UX hint,
// and authoritative escaping must still happen at render time. Do not
// silently strengthen it; tested behavior depends on exactly these patterns.

var (
	scriptTagRe    = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	scriptOpenRe   = regexp.MustCompile(`(?i)<\s*/?\s*script\b[^>]*>?`)
	jsProtocolRe   = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)\bon\w+\s*=`)
)

// Sanitize strips script-tag-like substrings from raw input and trims
// surrounding whitespace.
func Sanitize(raw string) string {
	cleaned := scriptTagRe.ReplaceAllString(raw, "")
	cleaned = scriptOpenRe.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ContainsSuspiciousMarkup reports whether a value still carries a
// script tag, a javascript: URL, or an inline event-handler attribute.
func ContainsSuspiciousMarkup(value string) bool {
	lower := strings.ToLower(value)
	if strings.Contains(lower, "<script") {
		return true
	}
	if jsProtocolRe.MatchString(value) {
		return true
	}
	return eventHandlerRe.MatchString(value)
}
