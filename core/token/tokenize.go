package token

import (
	"strings"
	"unicode"
)

const (
	// maqaf is the Hebrew word separator; it splits words like a hyphen.
	maqaf = '־' // ־
	// paseq is a Hebrew punctuation-only token that is dropped entirely.
	paseq = "׀" // ׀
)

// phrasePunct is the fixed set of sentence/quotation punctuation stripped
// from phrase tokens. Every occurrence is removed, not just the first.
const phrasePunct = ".,;:!?\"'“”‘’()[]«»׃"

// stripPunct removes every occurrence of the fixed punctuation set from s.
func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(phrasePunct, r) {
			return -1
		}
		return r
	}, s)
}

// isWordBoundary reports whether r separates phrase words: whitespace,
// ASCII hyphen, or the Hebrew maqaf.
func isWordBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == maqaf
}

// TokenizePhrase splits a phrase into ordered MatchTriples. Words are
// separated on whitespace, hyphen, and maqaf boundaries; punctuation is
// stripped; paseq tokens are dropped. A canonical ellipsis inside or
// between tokens splits the phrase, and the word immediately after an
// ellipsis is flagged FollowsEllipsis.
func TokenizePhrase(phrase string) []MatchTriple {
	var triples []MatchTriple
	pendingEllipsis := false

	for _, tok := range strings.FieldsFunc(phrase, isWordBoundary) {
		for i, part := range strings.Split(tok, Ellipsis) {
			if i > 0 {
				pendingEllipsis = true
			}
			word := stripPunct(part)
			if word == "" || word == paseq {
				continue
			}
			triples = append(triples, MatchTriple{
				Word:            word,
				FollowsEllipsis: pendingEllipsis,
			})
			pendingEllipsis = false
		}
	}

	return triples
}
