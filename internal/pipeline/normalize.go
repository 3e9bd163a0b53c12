package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

// Anything outside ASCII letters, digits, apostrophe, period, hyphen and
// whitespace is dropped.
var disallowedChars = regexp.MustCompile(`[^A-Za-z0-9'.\s-]+`)

// FormatLine normalizes an utterance for training output.
func FormatLine(line string) string {
	line = disallowedChars.ReplaceAllString(line, "")
	line = strings.ToLower(line)
	return strings.TrimRightFunc(line, unicode.IsSpace)
}
