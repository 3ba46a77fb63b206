// Package tagger assigns Penn Treebank style part-of-speech tags to
// whitespace-split words.
package tagger

// Token is one tagged input word.
type Token struct {
	Word string
	Tag  string
}

// Tagger tags a sequence of words. The result is parallel to the input:
// same length, same order.
type Tagger interface {
	Tag(words []string) []Token
}

// Func adapts a plain function to the Tagger interface.
type Func func(words []string) []Token

// Tag implements Tagger.
func (f Func) Tag(words []string) []Token { return f(words) }
