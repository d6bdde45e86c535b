// Package usx parses USX 3 books into per-verse word-token sequences.
// It mirrors the usfm importer over the XML content model: char[style=w]
// elements become wordLike tokens and ms[style=zaln-s/zaln-e] milestones
// open and close alignment scopes.
package usx

import (
	"bytes"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/CedarNotes/core/errors"
	"github.com/FocuswithJustin/CedarNotes/core/ref"
	"github.com/FocuswithJustin/CedarNotes/core/token"
	"github.com/FocuswithJustin/CedarNotes/internal/formats"
)

// Parse reads a USX book.
func Parse(data []byte) (*formats.Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParse("USX", "", err.Error())
	}

	bookNode := xmlquery.FindOne(root, "//book[@code]")
	if bookNode == nil {
		return nil, errors.NewParse("USX", "", "missing book element")
	}
	doc := formats.NewDocument(strings.ToUpper(bookNode.SelectAttr("code")))

	usx := xmlquery.FindOne(root, "//usx")
	if usx == nil {
		return nil, errors.NewParse("USX", "", "missing usx element")
	}

	w := &walker{doc: doc}
	w.walk(usx)
	w.flush()

	if len(doc.Verses) == 0 {
		return nil, errors.NewParse("USX", "", "no verses found")
	}
	return doc, nil
}

// walker carries the traversal state: current chapter/verse, the open
// alignment scope stack, and the token sequence being built.
type walker struct {
	doc     *formats.Document
	chapter int
	verse   int
	scopes  []string
	tokens  []token.WordToken
	pos     int
}

func (w *walker) flush() {
	if w.chapter > 0 && w.verse > 0 && len(w.tokens) > 0 {
		w.doc.Verses[ref.VerseRef{Chapter: w.chapter, Verse: w.verse}] = w.tokens
	}
	w.tokens = nil
	w.pos = 0
}

func (w *walker) emit(payload string, sub token.SubType, withScopes bool) {
	t := token.WordToken{Payload: payload, Position: w.pos, SubType: sub}
	if withScopes && len(w.scopes) > 0 {
		t.Scopes = append([]string(nil), w.scopes...)
	}
	w.tokens = append(w.tokens, t)
	w.pos++
}

func (w *walker) emitPlain(chunk string) {
	for chunk != "" {
		if chunk[0] == ' ' || chunk[0] == '\t' || chunk[0] == '\n' || chunk[0] == '\r' {
			w.emit(" ", token.Space, false)
			chunk = strings.TrimLeft(chunk, " \t\n\r")
			continue
		}
		end := strings.IndexAny(chunk, " \t\n\r")
		if end < 0 {
			end = len(chunk)
		}
		w.emit(chunk[:end], token.Punctuation, false)
		chunk = chunk[end:]
	}
}

func (w *walker) walk(n *xmlquery.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode:
			if w.verse > 0 {
				w.emitPlain(child.Data)
			}

		case xmlquery.ElementNode:
			switch child.Data {
			case "chapter":
				if num := child.SelectAttr("number"); num != "" {
					w.flush()
					w.chapter = atoi(num)
					w.verse = 0
				}

			case "verse":
				w.flush()
				w.verse = atoi(child.SelectAttr("number"))

			case "ms":
				switch child.SelectAttr("style") {
				case "zaln-s":
					content := child.SelectAttr("x-content")
					occurrence := child.SelectAttr("x-occurrence")
					if occurrence == "" {
						occurrence = "1"
					}
					if content != "" {
						w.scopes = append(w.scopes, "zaln/"+content+":"+occurrence)
					}
				case "zaln-e":
					if len(w.scopes) > 0 {
						w.scopes = w.scopes[:len(w.scopes)-1]
					}
				}

			case "char":
				if child.SelectAttr("style") == "w" && w.verse > 0 {
					if payload := strings.TrimSpace(child.InnerText()); payload != "" {
						w.emit(payload, token.WordLike, true)
					}
					continue
				}
				w.walk(child)

			case "note":
				// Footnote content never joins the verse word flow.

			default:
				w.walk(child)
			}
		}
	}
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
