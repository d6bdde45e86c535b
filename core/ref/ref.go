package ref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// VerseRef identifies one concrete verse within a book.
type VerseRef struct {
	Chapter int
	Verse   int
}

// String returns the chapter:verse form of the reference.
func (v VerseRef) String() string {
	return strconv.Itoa(v.Chapter) + ":" + strconv.Itoa(v.Verse)
}

// specGrammar is the participle grammar for translation-notes references.
// Examples: "5:3", "5:3,4", "1:2-4", "3:1-2,5,7-8"
//
type specGrammar struct {
	Chapter int         `parser:"@Int ':'"`
	Parts   []*specPart `parser:"@@ ( ',' @@ )*"`
}

type specPart struct {
	Start int  `parser:"@Int"`
	End   *int `parser:"( '-' @Int )?"`
}

// specLexer defines the lexer for verse specifiers.
var specLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:,\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// specParser is the participle parser for verse specifiers.
var specParser = participle.MustBuild[specGrammar](
	participle.Lexer(specLexer),
	participle.Elide("Whitespace"),
)

// ParseSpec parses a "chapter:verseSpec" reference string and expands it
// into the ordered list of concrete verse references it names.
// Supported forms:
//   - "5:3" (single verse)
//   - "5:3,4" (comma-separated list)
//   - "1:2-4" (inclusive range)
//   - "3:1-2,5" (any combination; ranges expand in place)
func ParseSpec(s string) ([]VerseRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty verse reference")
	}

	parsed, err := specParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid verse reference: %q: %w", s, err)
	}

	var refs []VerseRef
	for _, part := range parsed.Parts {
		end := part.Start
		if part.End != nil {
			end = *part.End
		}
		if end < part.Start {
			return nil, fmt.Errorf("invalid verse range in %q: %d-%d", s, part.Start, end)
		}
		for v := part.Start; v <= end; v++ {
			refs = append(refs, VerseRef{Chapter: parsed.Chapter, Verse: v})
		}
	}

	return refs, nil
}
