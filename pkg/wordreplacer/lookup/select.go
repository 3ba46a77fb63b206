package lookup

import (
	"fmt"
	"unicode/utf8"

	"github.com/cognicore/wordreplacer/pkg/wordreplacer/internalerr"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/tagset"
)

// DefaultCategories is the category priority: similar terms first, then
// synonyms.
var DefaultCategories = []string{"sim", "syn"}

// SelectLongest picks the longest candidate for wordType out of the first
// category in priority order that has any. Ties go to the earliest entry.
// Empty strings are not candidates.
// It returns internalerr.ErrNotFound when no listed category is present.
func SelectLongest(c Candidates, wordType tagset.WordType, categories []string) (string, error) {
	if len(categories) == 0 {
		categories = DefaultCategories
	}

	byCategory := c[wordType.String()]
	for _, cat := range categories {
		if best, ok := longest(byCategory[cat]); ok {
			return best, nil
		}
	}
	return "", fmt.Errorf("%w: no %v candidates for %s", internalerr.ErrNotFound, categories, wordType)
}

func longest(words []string) (string, bool) {
	best, bestLen := "", 0
	for _, w := range words {
		if n := utf8.RuneCountInString(w); n > bestLen {
			best, bestLen = w, n
		}
	}
	return best, bestLen > 0
}
