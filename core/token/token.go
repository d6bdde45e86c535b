// Package token defines the word-token model shared by the document
// importers and the quote-resolution core, plus the quote normalizer and
// phrase tokenizer.
package token

import (
	"fmt"
	"sync"
)

// SubType classifies a parsed document token.
type SubType int

const (
	// WordLike tokens carry word payloads; only these participate in matching.
	WordLike SubType = iota
	// Punctuation tokens carry sentence punctuation.
	Punctuation
	// Space tokens carry inter-word whitespace.
	Space
	// LineBreak tokens mark end-of-line in the source document.
	LineBreak
)

// WordToken is one token of a parsed document. Scopes is only meaningful on
// gloss-language tokens: each entry is an opaque alignment label containing
// "/<word>:" markers naming original-language word identities. Tokens are
// immutable once produced by an importer.
type WordToken struct {
	Payload  string
	Position int
	SubType  SubType
	Scopes   []string
}

// Key addresses one verse of one corpus in a VerseIndex.
type Key struct {
	Corpus  string
	Book    string
	Chapter int
	Verse   int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s %d:%d", k.Corpus, k.Book, k.Chapter, k.Verse)
}

// VerseIndex maps (corpus, book, chapter:verse) to the ordered token
// sequence for that verse. It is populated once per book by a document
// source and read-mostly afterwards; the lock exists so a single index may
// be shared if callers ever resolve several books concurrently.
type VerseIndex struct {
	mu     sync.RWMutex
	tokens map[Key][]WordToken
	books  map[string]bool // corpus+"/"+book markers for imported documents
}

// NewVerseIndex creates an empty index.
func NewVerseIndex() *VerseIndex {
	return &VerseIndex{
		tokens: make(map[Key][]WordToken),
		books:  make(map[string]bool),
	}
}

// Set stores the token sequence for one verse.
func (ix *VerseIndex) Set(key Key, tokens []WordToken) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.tokens[key] = tokens
	ix.books[key.Corpus+"/"+key.Book] = true
}

// Tokens returns the full token sequence for a verse, or nil if the verse
// is not present.
func (ix *VerseIndex) Tokens(key Key) []WordToken {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.tokens[key]
}

// Words returns the verse's tokens filtered to WordLike entries, in
// document order.
func (ix *VerseIndex) Words(key Key) []WordToken {
	all := ix.Tokens(key)
	var words []WordToken
	for _, t := range all {
		if t.SubType == WordLike {
			words = append(words, t)
		}
	}
	return words
}

// HasBook reports whether any verse of the given corpus/book has been
// imported into the index.
func (ix *VerseIndex) HasBook(corpus, book string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.books[corpus+"/"+book]
}

// Len returns the number of verses in the index.
func (ix *VerseIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.tokens)
}

// MatchTriple is the intermediate unit produced by tokenizing a search
// phrase. Scopes is populated only after a successful gloss match.
type MatchTriple struct {
	Word            string
	FollowsEllipsis bool
	Scopes          []string
}
