package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// CacheKey returns the identity of a surface form in the vocabulary cache:
//   - trims leading/trailing whitespace
//   - composes to Unicode NFC, so "Öl" typed with a combining diaeresis
//     and the precomposed "Öl" share one key
//   - lower-cases with German rules
//
// ß is preserved ("Straße" -> "straße"), matching keys written by earlier
// versions of the cache.
func CacheKey(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	// A Caser keeps state between calls, so one is created per key.
	return cases.Lower(language.German).String(norm.NFC.String(text))
}
