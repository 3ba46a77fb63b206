// Package tagset maps part-of-speech tags onto the word types understood by
// the lookup service, and identifies grammatical (function) words.
package tagset

import (
	"fmt"
	"sort"

	"github.com/cognicore/wordreplacer/pkg/wordreplacer/internalerr"
)

// WordType is the semantic bucket a tag falls into.
type WordType int

const (
	Noun WordType = iota
	Adjective
	Verb
	Adverb
)

var wordTypeNames = [...]string{
	Noun:      "noun",
	Adjective: "adjective",
	Verb:      "verb",
	Adverb:    "adverb",
}

// String returns the key used by the lookup service for this word type.
func (w WordType) String() string {
	if w < Noun || w > Adverb {
		return fmt.Sprintf("WordType(%d)", int(w))
	}
	return wordTypeNames[w]
}

// ParseWordType is the inverse of String.
func ParseWordType(s string) (WordType, bool) {
	for i, name := range wordTypeNames {
		if name == s {
			return WordType(i), true
		}
	}
	return Noun, false
}

// Sets is the raw tag membership data a Table is built from.
type Sets struct {
	Noun      []string
	Adjective []string
	Verb      []string
	Adverb    []string
	Function  []string
}

// DefaultSets returns the Penn Treebank tables.
// NNPS is deliberately listed both as a noun and as a function word: the
// exclusion wins, so plural proper nouns are never replaced.
func DefaultSets() Sets {
	return Sets{
		Noun:      []string{"NN", "NNS", "NNPS", "FW"},
		Adjective: []string{"JJ", "JJR", "JJS"},
		Verb:      []string{"VB", "VBD", "VBG", "VBN", "VBP", "VBZ"},
		Adverb:    []string{"RB", "RBR"},
		Function: []string{
			"MD", "DT", "PRP", "PRP$", "IN", "CC", "CD", "EX",
			"NNP", "NNPS", "POS", "PDT", "RP", "WDT", "SYM", "TO",
		},
	}
}

// Table classifies tags. It is immutable after construction.
type Table struct {
	types    map[string]WordType
	function map[string]struct{}
}

// New builds a Table. A tag listed under two different word types is
// rejected, since classification would then depend on lookup order.
func New(s Sets) (*Table, error) {
	t := &Table{
		types:    make(map[string]WordType),
		function: make(map[string]struct{}, len(s.Function)),
	}

	groups := []struct {
		wt   WordType
		tags []string
	}{
		{Noun, s.Noun},
		{Adjective, s.Adjective},
		{Verb, s.Verb},
		{Adverb, s.Adverb},
	}
	for _, g := range groups {
		for _, tag := range g.tags {
			if prev, ok := t.types[tag]; ok && prev != g.wt {
				return nil, fmt.Errorf("%w: tag %q mapped to both %s and %s",
					internalerr.ErrInvalidConfig, tag, prev, g.wt)
			}
			t.types[tag] = g.wt
		}
	}

	for _, tag := range s.Function {
		t.function[tag] = struct{}{}
	}
	return t, nil
}

// Default returns a Table built from DefaultSets.
func Default() *Table {
	t, err := New(DefaultSets())
	if err != nil {
		panic(err)
	}
	return t
}

// Classify returns the word type for tag, or Noun when no set contains it.
func (t *Table) Classify(tag string) WordType {
	if wt, ok := t.types[tag]; ok {
		return wt
	}
	return Noun
}

// IsFunctionWord reports whether words carrying tag must be left unchanged.
func (t *Table) IsFunctionWord(tag string) bool {
	_, ok := t.function[tag]
	return ok
}

// FunctionTags returns the exclusion set, sorted.
func (t *Table) FunctionTags() []string {
	result := make([]string, 0, len(t.function))
	for tag := range t.function {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}
