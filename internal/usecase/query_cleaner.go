package usecase

import (
	"regexp"
	"strings"
)

const maxQueryLength = 100

// Compiled patterns for item query cleaning
var (
	// Leading list markers such as "- ", "* ", "• ", "1. ", "2) "
	listMarkerPattern = regexp.MustCompile(`^\s*(?:[-*•·]+\s*|\d+[.)]\s+)`)

	// Characters the model sometimes wraps an item in
	wrapperChars = "\"'`“”‘’"

	multiSpacePattern = regexp.MustCompile(`\s+`)
	whitespacePattern = regexp.MustCompile(`\s`)
)

// CleanQuery normalises an item query for display and URL building.
// Removes list markers and wrapping quotes, collapses whitespace and caps the length.
func CleanQuery(query string) string {
	cleaned := listMarkerPattern.ReplaceAllString(query, "")
	cleaned = strings.Trim(strings.TrimSpace(cleaned), wrapperChars)
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > maxQueryLength {
		cleaned = cleaned[:maxQueryLength]
		// Try to cut at word boundary
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
		cleaned = strings.ToValidUTF8(cleaned, "")
	}

	return cleaned
}

// stripWhitespace removes every whitespace character, for hashtag-style tags
func stripWhitespace(s string) string {
	return whitespacePattern.ReplaceAllString(s, "")
}
