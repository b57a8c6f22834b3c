package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxSanitizePasses bounds the re-sanitizing of text whose stripped fragments form new tags.
const maxSanitizePasses = 8

// posts are plain text: every tag is stripped
var sanitizer = bluemonday.StrictPolicy()

// SanitizeText strips markup from user input and trims surrounding whitespace.
// Entity text the user typed is kept verbatim. Input that still yields markup after
// maxSanitizePasses is dropped entirely.
func SanitizeText(input string) string {
	text := stripTags(input)
	for i := 0; i < maxSanitizePasses; i++ {
		next := stripTags(text)
		if next == text {
			return text
		}
		text = next
	}
	return ""
}

// stripTags runs the strict policy once. Ampersands are escaped first, so the only entities
// in the policy's output are its own escapes and decoding them restores the text exactly.
func stripTags(s string) string {
	escaped := strings.ReplaceAll(s, "&", "&amp;")
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(escaped)))
}
