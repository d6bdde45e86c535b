// Package formats defines the shared parse result for document importers
// and selects an importer by resource name.
package formats

import (
	"path"
	"strings"

	"github.com/FocuswithJustin/CedarNotes/core/ref"
	"github.com/FocuswithJustin/CedarNotes/core/token"
)

// Document is one parsed book: the ordered token sequence for every verse.
// Gloss-language word tokens carry zaln alignment scopes; original-language
// tokens carry none.
type Document struct {
	BookID string
	Verses map[ref.VerseRef][]token.WordToken
}

// NewDocument creates an empty Document for a book.
func NewDocument(bookID string) *Document {
	return &Document{
		BookID: bookID,
		Verses: make(map[ref.VerseRef][]token.WordToken),
	}
}

// Format identifies a supported document format.
type Format string

const (
	// USFM is the plain-text marker format.
	USFM Format = "usfm"
	// USX is the XML representation of the same content model.
	USX Format = "usx"
)

// DetectFormat picks a Format from a file name or URL. USFM is the
// default when the extension is unknown.
func DetectFormat(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".usx", ".xml":
		return USX
	default:
		return USFM
	}
}
