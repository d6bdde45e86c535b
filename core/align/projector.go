package align

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/CedarNotes/core/errors"
	"github.com/FocuswithJustin/CedarNotes/core/ref"
	"github.com/FocuswithJustin/CedarNotes/core/token"
	"github.com/FocuswithJustin/CedarNotes/internal/logging"
)

// Projection is the result value of projecting matched triples onto the
// original-language word sequence. Exactly one of Data and Diag is
// populated; no-match stays a value, never an error.
type Projection struct {
	Data []string
	Diag string
}

// Matched reports whether the projection produced at least one word.
func (p Projection) Matched() bool {
	return len(p.Data) > 0
}

// Project walks the original-language words in document order and emits
// every word named by some triple's alignment scopes. A word is named when
// any scope contains "/<word>:" as a substring; each word is emitted at
// most once. Scope sets must have size 1 or 2; any other size is a
// malformed alignment shape, logged and skipped.
func Project(book string, verse ref.VerseRef, origWords []token.WordToken, triples []token.MatchTriple, phrase, occurrence string) Projection {
	var data []string

	for _, word := range origWords {
		key := "/" + word.Payload + ":"
		for _, tr := range triples {
			n := len(tr.Scopes)
			if n != 1 && n != 2 {
				logging.Warn("skipping triple", "error", (&errors.MalformedAlignmentError{
					Book:       book,
					Verse:      verse.String(),
					ScopeCount: n,
				}).Error(), "word", tr.Word)
				continue
			}
			if scopesContain(tr.Scopes, key) {
				data = append(data, word.Payload)
				break
			}
		}
	}

	if len(data) == 0 {
		return Projection{Diag: fmt.Sprintf(
			"no aligned words for %q (occurrence %s) at %s %s; original words: [%s]; matched triples: %s",
			phrase, occurrence, book, verse.String(),
			payloadsOf(origWords), dumpTriples(triples),
		)}
	}
	return Projection{Data: data}
}

func scopesContain(scopes []string, key string) bool {
	for _, s := range scopes {
		if strings.Contains(s, key) {
			return true
		}
	}
	return false
}

func dumpTriples(triples []token.MatchTriple) string {
	var parts []string
	for _, tr := range triples {
		parts = append(parts, fmt.Sprintf("%s%v", tr.Word, tr.Scopes))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
