// Package sanitize prepares words for the lookup service and cleans the
// assembled output.
package sanitize

import (
	"strings"
	"unicode"
)

// ForLookup keeps only ASCII letters, whitespace and colons.
// An empty result means there is nothing worth querying.
//
// Examples:
//   - ForLookup("don't!") -> "dont"
//   - ForLookup("123") -> ""
func ForLookup(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if isASCIILetter(r) || unicode.IsSpace(r) || r == ':' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripEscapes removes literal backslashes left behind by upstream escaping.
// It is applied once to the joined sentence, not per word.
func StripEscapes(text string) string {
	return strings.ReplaceAll(text, `\`, "")
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
