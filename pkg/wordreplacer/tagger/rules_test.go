package tagger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRulesTagParallel(t *testing.T) {
	words := strings.Fields("The quick dog runs quickly.")
	tokens := NewRules(nil).Tag(words)

	if len(tokens) != len(words) {
		t.Fatalf("expected %d tokens, got %d", len(words), len(tokens))
	}
	for i, tok := range tokens {
		if tok.Word != words[i] {
			t.Errorf("token %d: word %q, want %q", i, tok.Word, words[i])
		}
	}
}

func TestRulesTagSentence(t *testing.T) {
	tokens := NewRules(nil).Tag(strings.Fields("She will walk happily to the beautiful garden, and they sang loudly."))

	got := make([]string, len(tokens))
	for i, tok := range tokens {
		got[i] = tok.Tag
	}
	want := []string{"PRP", "MD", "VB", "RB", "TO", "DT", "JJ", "NN", "CC", "PRP", "NN", "RB"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestRulesClosedClassCaseInsensitive(t *testing.T) {
	tokens := NewRules(nil).Tag([]string{"THE", "And", "OF"})
	for _, tok := range tokens {
		if tok.Tag == "NN" || tok.Tag == "NNP" {
			t.Errorf("%q should be tagged from the lexicon, got %s", tok.Word, tok.Tag)
		}
	}
}

func TestRulesNumbersAndSymbols(t *testing.T) {
	tokens := NewRules(nil).Tag([]string{"42", "3.14", "--", "!"})
	want := []string{"CD", "CD", "SYM", "SYM"}
	for i, tok := range tokens {
		if tok.Tag != want[i] {
			t.Errorf("%q: got %s, want %s", tok.Word, tok.Tag, want[i])
		}
	}
}

func TestRulesProperNounAfterStart(t *testing.T) {
	tokens := NewRules(nil).Tag([]string{"Yesterday", "Berlin", "walked"})
	if tokens[0].Tag == "NNP" {
		t.Error("sentence-initial capital should not force NNP")
	}
	if tokens[1].Tag != "NNP" {
		t.Errorf("Berlin: got %s, want NNP", tokens[1].Tag)
	}
	if tokens[2].Tag != "VBD" {
		t.Errorf("walked: got %s, want VBD", tokens[2].Tag)
	}
}

func TestRulesModalForcesVerb(t *testing.T) {
	tokens := NewRules(nil).Tag([]string{"we", "must", "swim"})
	if tokens[2].Tag != "VB" {
		t.Errorf("swim after modal: got %s, want VB", tokens[2].Tag)
	}
}

func TestRulesExtraLexiconOverrides(t *testing.T) {
	tokens := NewRules(map[string]string{"Garden": "VB", "the": "NN"}).Tag([]string{"garden", "the"})
	if tokens[0].Tag != "VB" {
		t.Errorf("garden: got %s, want VB", tokens[0].Tag)
	}
	if tokens[1].Tag != "NN" {
		t.Errorf("the: got %s, want NN (override)", tokens[1].Tag)
	}
}

func TestLoadLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := `tags:
  swiftly: RB
  Berlin: NNP
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tags, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}
	want := map[string]string{"swiftly": "RB", "Berlin": "NNP"}
	if diff := cmp.Diff(want, tags); diff != "" {
		t.Errorf("lexicon mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLexiconErrors(t *testing.T) {
	if _, err := LoadLexicon("/nonexistent/lexicon.yaml"); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("tags: [unclosed"), 0644)
	if _, err := LoadLexicon(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestFuncAdapter(t *testing.T) {
	var tg Tagger = Func(func(words []string) []Token {
		out := make([]Token, len(words))
		for i, w := range words {
			out[i] = Token{Word: w, Tag: "DT"}
		}
		return out
	})
	if got := tg.Tag([]string{"x"}); len(got) != 1 || got[0].Tag != "DT" {
		t.Errorf("unexpected tokens: %v", got)
	}
}
