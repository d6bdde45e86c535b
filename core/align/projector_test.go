package align

import (
	"reflect"
	"strings"
	"testing"

	"github.com/FocuswithJustin/CedarNotes/core/ref"
	"github.com/FocuswithJustin/CedarNotes/core/token"
)

func origWords(payloads ...string) []token.WordToken {
	words := make([]token.WordToken, len(payloads))
	for i, p := range payloads {
		words[i] = token.WordToken{Payload: p, Position: i, SubType: token.WordLike}
	}
	return words
}

func TestProject_DocumentOrder(t *testing.T) {
	orig := origWords("alpha", "beta", "gamma")
	triples := []token.MatchTriple{
		// Scopes listed out of document order; output must follow the
		// original-language order anyway.
		{Word: "x", Scopes: []string{"zaln/gamma:1"}},
		{Word: "y", Scopes: []string{"zaln/alpha:1"}},
	}

	proj := Project("TIT", ref.VerseRef{Chapter: 1, Verse: 1}, orig, triples, "x y", "1")
	if !proj.Matched() {
		t.Fatalf("projection failed: %s", proj.Diag)
	}
	if !reflect.DeepEqual(proj.Data, []string{"alpha", "gamma"}) {
		t.Errorf("Data = %v, want [alpha gamma]", proj.Data)
	}
}

func TestProject_EmitsEachWordOnce(t *testing.T) {
	orig := origWords("alpha")
	triples := []token.MatchTriple{
		{Word: "x", Scopes: []string{"zaln/alpha:1"}},
		{Word: "y", Scopes: []string{"zaln/alpha:1"}},
	}

	proj := Project("TIT", ref.VerseRef{Chapter: 1, Verse: 1}, orig, triples, "x y", "1")
	if !reflect.DeepEqual(proj.Data, []string{"alpha"}) {
		t.Errorf("Data = %v, want a single emission", proj.Data)
	}
}

func TestProject_ScopeSetOfTwo(t *testing.T) {
	// Nested alignment spans give a gloss word two scopes.
	orig := origWords("alpha", "beta")
	triples := []token.MatchTriple{
		{Word: "x", Scopes: []string{"zaln/alpha:1", "zaln/beta:1"}},
	}

	proj := Project("TIT", ref.VerseRef{Chapter: 1, Verse: 1}, orig, triples, "x", "1")
	if !reflect.DeepEqual(proj.Data, []string{"alpha", "beta"}) {
		t.Errorf("Data = %v, want [alpha beta]", proj.Data)
	}
}

func TestProject_MalformedShapeSkipped(t *testing.T) {
	orig := origWords("alpha", "beta")
	triples := []token.MatchTriple{
		// Three scopes is a data-shape error: skipped, not fatal.
		{Word: "x", Scopes: []string{"zaln/alpha:1", "zaln/alpha:2", "zaln/alpha:3"}},
		{Word: "y", Scopes: []string{"zaln/beta:1"}},
	}

	proj := Project("TIT", ref.VerseRef{Chapter: 1, Verse: 1}, orig, triples, "x y", "1")
	if !reflect.DeepEqual(proj.Data, []string{"beta"}) {
		t.Errorf("Data = %v, want [beta] only", proj.Data)
	}
}

func TestProject_EmptyScopesSkipped(t *testing.T) {
	orig := origWords("alpha")
	triples := []token.MatchTriple{{Word: "x"}}

	proj := Project("TIT", ref.VerseRef{Chapter: 1, Verse: 1}, orig, triples, "x", "1")
	if proj.Matched() {
		t.Error("scope-free triples must not project")
	}
}

func TestProject_NoMatchDiagnostic(t *testing.T) {
	orig := origWords("alpha")
	triples := []token.MatchTriple{
		{Word: "x", Scopes: []string{"zaln/unrelated:1"}},
	}

	proj := Project("TIT", ref.VerseRef{Chapter: 2, Verse: 3}, orig, triples, "x phrase", "2")
	if proj.Matched() {
		t.Fatal("expected no match")
	}
	for _, needle := range []string{"x phrase", "occurrence 2", "TIT 2:3", "alpha"} {
		if !strings.Contains(proj.Diag, needle) {
			t.Errorf("diagnostic missing %q: %s", needle, proj.Diag)
		}
	}
}

func TestProject_Soundness(t *testing.T) {
	// Every emitted word must have a triple whose scopes contain
	// "/<word>:" as a substring.
	orig := origWords("alpha", "beta", "gamma")
	triples := []token.MatchTriple{
		{Word: "x", Scopes: []string{"zaln/alpha:1"}},
		{Word: "y", Scopes: []string{"zaln/gamma:1", "zaln/beta:2"}},
	}

	proj := Project("TIT", ref.VerseRef{Chapter: 1, Verse: 1}, orig, triples, "x y", "1")
	for _, word := range proj.Data {
		key := "/" + word + ":"
		found := false
		for _, tr := range triples {
			if scopesContain(tr.Scopes, key) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("emitted word %q has no supporting alignment reference", word)
		}
	}
}
