package usx

import (
	"reflect"
	"testing"

	"github.com/FocuswithJustin/CedarNotes/core/ref"
	"github.com/FocuswithJustin/CedarNotes/core/token"
)

const alignedUSX = `<?xml version="1.0" encoding="UTF-8"?>
<usx version="3.0">
  <book code="TIT" style="id">unfoldingWord Literal Text</book>
  <chapter number="1" style="c" sid="TIT 1"/>
  <para style="p">
    <verse number="1" style="v" sid="TIT 1:1"/>
    <ms style="zaln-s" x-content="Παῦλος" x-occurrence="1"/>
    <char style="w" x-occurrence="1">Paul</char>
    <ms style="zaln-e"/>,
    <ms style="zaln-s" x-content="δοῦλος" x-occurrence="1"/>
    <char style="w" x-occurrence="1">a</char>
    <char style="w" x-occurrence="1">servant</char>
    <ms style="zaln-e"/>
    <note style="f" caller="+">footnote text to skip</note>
    <verse eid="TIT 1:1"/>
  </para>
</usx>`

func words(tokens []token.WordToken) []string {
	var out []string
	for _, t := range tokens {
		if t.SubType == token.WordLike {
			out = append(out, t.Payload)
		}
	}
	return out
}

func TestParse_Aligned(t *testing.T) {
	doc, err := Parse([]byte(alignedUSX))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.BookID != "TIT" {
		t.Errorf("BookID = %q, want TIT", doc.BookID)
	}

	v1 := doc.Verses[ref.VerseRef{Chapter: 1, Verse: 1}]
	if v1 == nil {
		t.Fatal("verse 1:1 missing")
	}
	if got := words(v1); !reflect.DeepEqual(got, []string{"Paul", "a", "servant"}) {
		t.Fatalf("words = %v", got)
	}

	for _, tk := range v1 {
		if tk.SubType != token.WordLike {
			continue
		}
		switch tk.Payload {
		case "Paul":
			if !reflect.DeepEqual(tk.Scopes, []string{"zaln/Παῦλος:1"}) {
				t.Errorf("Paul scopes = %v", tk.Scopes)
			}
		case "a", "servant":
			if !reflect.DeepEqual(tk.Scopes, []string{"zaln/δοῦλος:1"}) {
				t.Errorf("%s scopes = %v", tk.Payload, tk.Scopes)
			}
		}
	}
}

func TestParse_FootnotesSkipped(t *testing.T) {
	doc, err := Parse([]byte(alignedUSX))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, tk := range doc.Verses[ref.VerseRef{Chapter: 1, Verse: 1}] {
		if tk.Payload == "footnote" {
			t.Error("footnote content leaked into the verse token flow")
		}
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte(`<usx version="3.0"><chapter number="1"/></usx>`)); err == nil {
		t.Error("missing book element should fail")
	}
	if _, err := Parse([]byte(`<usx version="3.0"><book code="TIT" style="id"/></usx>`)); err == nil {
		t.Error("book without verses should fail")
	}
}
