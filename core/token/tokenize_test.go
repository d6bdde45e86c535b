package token

import (
	"reflect"
	"testing"
)

func tripleWords(triples []MatchTriple) []string {
	var words []string
	for _, tr := range triples {
		words = append(words, tr.Word)
	}
	return words
}

func TestTokenizePhrase(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		words []string
	}{
		{"simple", "the poor", []string{"the", "poor"}},
		{"punctuation stripped", "“Blessed, are the poor!”", []string{"Blessed", "are", "the", "poor"}},
		{"hyphen splits", "well-known", []string{"well", "known"}},
		{"maqaf splits", "עַל־פְּנֵי", []string{"עַל", "פְּנֵי"}},
		{"paseq dropped", "אוֹר ׀ טוֹב", []string{"אוֹר", "טוֹב"}},
		{"repeated punctuation", "''word''", []string{"word"}},
		{"empty", "", nil},
		{"only punctuation", "...!?", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tripleWords(TokenizePhrase(tt.in))
			if !reflect.DeepEqual(got, tt.words) {
				t.Errorf("TokenizePhrase(%q) words = %v, want %v", tt.in, got, tt.words)
			}
		})
	}
}

func TestTokenizePhraseEllipsisFlags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []MatchTriple
	}{
		{
			name: "standalone ellipsis token",
			in:   "love … neighbor",
			want: []MatchTriple{
				{Word: "love"},
				{Word: "neighbor", FollowsEllipsis: true},
			},
		},
		{
			name: "ellipsis inside token",
			in:   "love…neighbor",
			want: []MatchTriple{
				{Word: "love"},
				{Word: "neighbor", FollowsEllipsis: true},
			},
		},
		{
			name: "multiple ellipses",
			in:   "a … b … c",
			want: []MatchTriple{
				{Word: "a"},
				{Word: "b", FollowsEllipsis: true},
				{Word: "c", FollowsEllipsis: true},
			},
		},
		{
			name: "only first word after ellipsis flagged",
			in:   "seek … the kingdom",
			want: []MatchTriple{
				{Word: "seek"},
				{Word: "the", FollowsEllipsis: true},
				{Word: "kingdom"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizePhrase(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenizePhrase(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVerseIndex(t *testing.T) {
	ix := NewVerseIndex()
	key := Key{Corpus: "ult", Book: "TIT", Chapter: 1, Verse: 1}

	if ix.Tokens(key) != nil {
		t.Error("empty index should return nil tokens")
	}
	if ix.HasBook("ult", "TIT") {
		t.Error("empty index should not report the book")
	}

	ix.Set(key, []WordToken{
		{Payload: "Paul", Position: 0, SubType: WordLike, Scopes: []string{"zaln/Παῦλος:1"}},
		{Payload: ",", Position: 1, SubType: Punctuation},
		{Payload: "a", Position: 2, SubType: WordLike},
	})

	if !ix.HasBook("ult", "TIT") {
		t.Error("index should report the book after Set")
	}
	if got := len(ix.Tokens(key)); got != 3 {
		t.Errorf("Tokens len = %d, want 3", got)
	}

	words := ix.Words(key)
	if len(words) != 2 {
		t.Fatalf("Words len = %d, want 2", len(words))
	}
	if words[0].Payload != "Paul" || words[1].Payload != "a" {
		t.Errorf("Words = %+v", words)
	}
	if ix.Len() != 1 {
		t.Errorf("Len = %d, want 1", ix.Len())
	}
}
