// Package align implements quote resolution: matching a tokenized gloss
// phrase against a verse's word sequence, projecting the matched alignment
// references onto the original-language text, and driving both per table
// row.
package align

import (
	"strings"

	"github.com/FocuswithJustin/CedarNotes/core/token"
	"github.com/FocuswithJustin/CedarNotes/internal/logging"
)

// MatchPhrase finds a contiguous run of gloss words whose payloads equal
// the tokenized phrase, and returns the triples with each matched word's
// alignment scopes attached. The scan starts at the first occurrence of the
// first word and, on a failed run, restarts at its next occurrence. The
// ellipsis flags mark tokens conceptually but do not permit gaps; matching
// is strictly positional.
func MatchPhrase(triples []token.MatchTriple, words []token.WordToken) ([]token.MatchTriple, bool) {
	if len(triples) == 0 || len(words) == 0 {
		return nil, false
	}

	for start := 0; start+len(triples) <= len(words); start++ {
		if words[start].Payload != triples[0].Word {
			continue
		}
		if run := matchAt(triples, words, start); run != nil {
			return run, true
		}
	}

	logging.Debug("no gloss match",
		"phrase", phraseOf(triples),
		"gloss_words", payloadsOf(words),
	)
	return nil, false
}

// matchAt checks the contiguous run beginning at start and, on success,
// returns copies of the triples with scopes attached.
func matchAt(triples []token.MatchTriple, words []token.WordToken, start int) []token.MatchTriple {
	for i, tr := range triples {
		if words[start+i].Payload != tr.Word {
			return nil
		}
	}

	matched := make([]token.MatchTriple, len(triples))
	for i, tr := range triples {
		tr.Scopes = words[start+i].Scopes
		matched[i] = tr
	}
	return matched
}

func phraseOf(triples []token.MatchTriple) string {
	var words []string
	for _, tr := range triples {
		words = append(words, tr.Word)
	}
	return strings.Join(words, " ")
}

func payloadsOf(words []token.WordToken) string {
	var payloads []string
	for _, w := range words {
		payloads = append(payloads, w.Payload)
	}
	return strings.Join(payloads, " ")
}
