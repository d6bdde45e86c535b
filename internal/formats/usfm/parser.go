// Package usfm parses USFM3 books into per-verse word-token sequences,
// carrying zaln alignment scopes on gloss-language word tokens.
package usfm

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/CedarNotes/core/errors"
	"github.com/FocuswithJustin/CedarNotes/core/ref"
	"github.com/FocuswithJustin/CedarNotes/core/token"
	"github.com/FocuswithJustin/CedarNotes/internal/formats"
)

var (
	chapterRegex = regexp.MustCompile(`^\\c\s+(\d+)`)
	verseRegex   = regexp.MustCompile(`^\\v\s+(\d+)\s*(.*)$`)
	idRegex      = regexp.MustCompile(`^\\id\s+(\S+)`)

	// Paragraph-level markers whose trailing text stays part of the verse flow.
	flowMarkerRegex = regexp.MustCompile(`^\\(?:p|m|pi\d?|mi|nb|q\d?|qr|qc|qm\d?|li\d?|d|sp)\s*(.*)$`)

	attrContentRegex    = regexp.MustCompile(`x-content="([^"]*)"`)
	attrOccurrenceRegex = regexp.MustCompile(`x-occurrence="([^"]*)"`)
)

// Parse reads a USFM book. Verse text is gathered across paragraph and
// poetry markers, then tokenized inline: \w spans become wordLike tokens
// (snapshotting the open zaln scope stack), everything between markers
// becomes space/punctuation tokens.
func Parse(data []byte) (*formats.Document, error) {
	doc := formats.NewDocument("")

	chapter := 0
	verse := 0
	var text strings.Builder

	flush := func() {
		if chapter == 0 || verse == 0 {
			text.Reset()
			return
		}
		vr := ref.VerseRef{Chapter: chapter, Verse: verse}
		doc.Verses[vr] = tokenizeVerse(text.String())
		text.Reset()
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "\\id "):
			if m := idRegex.FindStringSubmatch(line); m != nil {
				doc.BookID = strings.ToUpper(m[1])
			}
		case strings.HasPrefix(line, "\\c "):
			flush()
			if m := chapterRegex.FindStringSubmatch(line); m != nil {
				chapter, _ = strconv.Atoi(m[1])
				verse = 0
			}
		case strings.HasPrefix(line, "\\v "):
			flush()
			if m := verseRegex.FindStringSubmatch(line); m != nil {
				verse, _ = strconv.Atoi(m[1])
				text.WriteString(m[2])
				text.WriteString("\n")
			}
		default:
			if verse == 0 {
				continue
			}
			if m := flowMarkerRegex.FindStringSubmatch(line); m != nil {
				line = m[1]
			}
			if line != "" {
				text.WriteString(line)
				text.WriteString("\n")
			}
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, errors.NewParse("USFM", "", err.Error())
	}

	if doc.BookID == "" {
		return nil, errors.NewParse("USFM", "", "missing \\id marker")
	}
	if len(doc.Verses) == 0 {
		return nil, errors.NewParse("USFM", "", "no verses found")
	}
	return doc, nil
}

// tokenizeVerse walks the inline markup of one verse's accumulated text.
func tokenizeVerse(text string) []token.WordToken {
	var tokens []token.WordToken
	var scopes []string
	pos := 0

	emit := func(payload string, sub token.SubType, withScopes bool) {
		t := token.WordToken{Payload: payload, Position: pos, SubType: sub}
		if withScopes && len(scopes) > 0 {
			t.Scopes = append([]string(nil), scopes...)
		}
		tokens = append(tokens, t)
		pos++
	}

	emitPlain := func(chunk string) {
		for chunk != "" {
			if r := chunk[0]; r == ' ' || r == '\t' {
				emit(" ", token.Space, false)
				chunk = strings.TrimLeft(chunk, " \t")
				continue
			}
			if chunk[0] == '\n' {
				emit("", token.LineBreak, false)
				chunk = strings.TrimLeft(chunk, "\n")
				continue
			}
			end := strings.IndexAny(chunk, " \t\n")
			if end < 0 {
				end = len(chunk)
			}
			emit(chunk[:end], token.Punctuation, false)
			chunk = chunk[end:]
		}
	}

	for text != "" {
		backslash := strings.IndexByte(text, '\\')
		if backslash < 0 {
			emitPlain(text)
			break
		}
		emitPlain(text[:backslash])
		text = text[backslash:]

		switch {
		case strings.HasPrefix(text, `\zaln-s`):
			end := strings.Index(text, `\*`)
			if end < 0 {
				text = ""
				break
			}
			attrs := text[:end]
			content := ""
			occurrence := "1"
			if m := attrContentRegex.FindStringSubmatch(attrs); m != nil {
				content = m[1]
			}
			if m := attrOccurrenceRegex.FindStringSubmatch(attrs); m != nil {
				occurrence = m[1]
			}
			if content != "" {
				scopes = append(scopes, "zaln/"+content+":"+occurrence)
			}
			text = text[end+2:]

		case strings.HasPrefix(text, `\zaln-e\*`):
			if len(scopes) > 0 {
				scopes = scopes[:len(scopes)-1]
			}
			text = text[len(`\zaln-e\*`):]

		case strings.HasPrefix(text, `\w `):
			body := text[len(`\w `):]
			end := strings.Index(body, `\w*`)
			if end < 0 {
				text = ""
				break
			}
			payload := body[:end]
			if bar := strings.IndexByte(payload, '|'); bar >= 0 {
				payload = payload[:bar]
			}
			payload = strings.TrimSpace(payload)
			if payload != "" {
				emit(payload, token.WordLike, true)
			}
			text = body[end+len(`\w*`):]

		default:
			// Unknown inline marker: skip the marker name (and a
			// trailing "*" for closing markers).
			rest := text[1:]
			end := strings.IndexFunc(rest, func(r rune) bool {
				return r == ' ' || r == '\n' || r == '\\'
			})
			if end < 0 {
				text = ""
				break
			}
			if strings.HasPrefix(rest[end:], " ") {
				end++
			}
			text = rest[end:]
		}
	}

	return tokens
}
