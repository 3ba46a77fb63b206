package tagger

import (
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Rules is a small deterministic tagger: closed-class lexicon lookup,
// suffix heuristics, then a context pass. It knows enough grammar to keep
// function words out of the lookup path; it makes no claim to accuracy on
// open-class words.
type Rules struct {
	lexicon map[string]string
}

// NewRules creates a tagger with the built-in lexicon, extended (and
// overridden) by extra. Keys are matched case-insensitively.
func NewRules(extra map[string]string) *Rules {
	lex := make(map[string]string, len(closedClass)+len(extra))
	for w, tag := range closedClass {
		lex[w] = tag
	}
	for w, tag := range extra {
		lex[strings.ToLower(w)] = tag
	}
	return &Rules{lexicon: lex}
}

// LoadLexicon reads additional word tags from a YAML file.
//
// Expected format:
//
//	tags:
//	  swiftly: RB
//	  Berlin: NNP
func LoadLexicon(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Tags map[string]string `yaml:"tags"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if file.Tags == nil {
		file.Tags = map[string]string{}
	}
	return file.Tags, nil
}

// Tag implements Tagger.
func (r *Rules) Tag(words []string) []Token {
	tokens := make([]Token, len(words))

	// Pass 1: lexicon + heuristics
	for i, w := range words {
		tokens[i] = Token{Word: w, Tag: r.baseline(w, i == 0)}
	}

	// Pass 2: context corrections
	for i := 1; i < len(tokens); i++ {
		prev := tokens[i-1].Tag
		cur := tokens[i].Tag

		// "can [run]", "to [walk]"
		if (prev == "MD" || prev == "TO") && (cur == "NN" || cur == "NNS" || cur == "VBP" || cur == "VBZ") {
			tokens[i].Tag = "VB"
			continue
		}
		// "the [run]", "a fast [attack]"
		if (prev == "DT" || prev == "PRP$" || prev == "JJ") && (cur == "VB" || cur == "VBP") {
			tokens[i].Tag = "NN"
		}
	}

	return tokens
}

func (r *Rules) baseline(word string, sentenceStart bool) string {
	core := strings.TrimFunc(word, func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})
	if core == "" {
		return "SYM"
	}

	lower := strings.ToLower(core)
	if tag, ok := r.lexicon[lower]; ok {
		return tag
	}

	if isNumber(core) {
		return "CD"
	}
	if strings.HasSuffix(lower, "'s") {
		return "NNP"
	}
	if !sentenceStart && unicode.IsUpper([]rune(core)[0]) {
		return "NNP"
	}

	return suffixTag(lower)
}

func suffixTag(w string) string {
	switch {
	case strings.HasSuffix(w, "ly"):
		return "RB"
	case strings.HasSuffix(w, "ing"):
		return "VBG"
	case strings.HasSuffix(w, "ed"):
		return "VBD"
	case strings.HasSuffix(w, "est") && len(w) > 4:
		return "JJS"
	case hasAnySuffix(w, "ous", "ful", "ive", "able", "ible", "less", "ic", "al", "ish"):
		return "JJ"
	case hasAnySuffix(w, "ness", "tion", "sion", "ment", "ity", "ance", "ence"):
		return "NN"
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 3:
		return "NNS"
	}
	return "NN"
}

func hasAnySuffix(w string, suffixes ...string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(w, s) {
			return true
		}
	}
	return false
}

func isNumber(s string) bool {
	digits := 0
	for _, c := range s {
		switch {
		case unicode.IsDigit(c):
			digits++
		case c == '.' || c == ',' || c == '-':
		default:
			return false
		}
	}
	return digits > 0
}
