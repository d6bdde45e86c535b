// Package ref provides canonical book identities and verse-reference parsing.
package ref

import "strings"

// Testament identifies which original-language corpus covers a book.
type Testament int

const (
	// OldTestament books align against the Hebrew corpus.
	OldTestament Testament = iota
	// NewTestament books align against the Greek corpus.
	NewTestament
)

// Book describes one canonical book.
type Book struct {
	// ID is the USFM book code (e.g., "GEN", "TIT").
	ID string

	// Number is the USFM file number used in repository file names
	// (e.g., 01 for GEN, 41 for MAT; 40 is reserved by the standard).
	Number int

	// Name is the common English book name.
	Name string

	// Testament selects the original-language corpus.
	Testament Testament
}

// books lists all 66 canonical books in document order.
var books = []Book{
	{"GEN", 1, "Genesis", OldTestament},
	{"EXO", 2, "Exodus", OldTestament},
	{"LEV", 3, "Leviticus", OldTestament},
	{"NUM", 4, "Numbers", OldTestament},
	{"DEU", 5, "Deuteronomy", OldTestament},
	{"JOS", 6, "Joshua", OldTestament},
	{"JDG", 7, "Judges", OldTestament},
	{"RUT", 8, "Ruth", OldTestament},
	{"1SA", 9, "1 Samuel", OldTestament},
	{"2SA", 10, "2 Samuel", OldTestament},
	{"1KI", 11, "1 Kings", OldTestament},
	{"2KI", 12, "2 Kings", OldTestament},
	{"1CH", 13, "1 Chronicles", OldTestament},
	{"2CH", 14, "2 Chronicles", OldTestament},
	{"EZR", 15, "Ezra", OldTestament},
	{"NEH", 16, "Nehemiah", OldTestament},
	{"EST", 17, "Esther", OldTestament},
	{"JOB", 18, "Job", OldTestament},
	{"PSA", 19, "Psalms", OldTestament},
	{"PRO", 20, "Proverbs", OldTestament},
	{"ECC", 21, "Ecclesiastes", OldTestament},
	{"SNG", 22, "Song of Solomon", OldTestament},
	{"ISA", 23, "Isaiah", OldTestament},
	{"JER", 24, "Jeremiah", OldTestament},
	{"LAM", 25, "Lamentations", OldTestament},
	{"EZK", 26, "Ezekiel", OldTestament},
	{"DAN", 27, "Daniel", OldTestament},
	{"HOS", 28, "Hosea", OldTestament},
	{"JOL", 29, "Joel", OldTestament},
	{"AMO", 30, "Amos", OldTestament},
	{"OBA", 31, "Obadiah", OldTestament},
	{"JON", 32, "Jonah", OldTestament},
	{"MIC", 33, "Micah", OldTestament},
	{"NAM", 34, "Nahum", OldTestament},
	{"HAB", 35, "Habakkuk", OldTestament},
	{"ZEP", 36, "Zephaniah", OldTestament},
	{"HAG", 37, "Haggai", OldTestament},
	{"ZEC", 38, "Zechariah", OldTestament},
	{"MAL", 39, "Malachi", OldTestament},
	{"MAT", 41, "Matthew", NewTestament},
	{"MRK", 42, "Mark", NewTestament},
	{"LUK", 43, "Luke", NewTestament},
	{"JHN", 44, "John", NewTestament},
	{"ACT", 45, "Acts", NewTestament},
	{"ROM", 46, "Romans", NewTestament},
	{"1CO", 47, "1 Corinthians", NewTestament},
	{"2CO", 48, "2 Corinthians", NewTestament},
	{"GAL", 49, "Galatians", NewTestament},
	{"EPH", 50, "Ephesians", NewTestament},
	{"PHP", 51, "Philippians", NewTestament},
	{"COL", 52, "Colossians", NewTestament},
	{"1TH", 53, "1 Thessalonians", NewTestament},
	{"2TH", 54, "2 Thessalonians", NewTestament},
	{"1TI", 55, "1 Timothy", NewTestament},
	{"2TI", 56, "2 Timothy", NewTestament},
	{"TIT", 57, "Titus", NewTestament},
	{"PHM", 58, "Philemon", NewTestament},
	{"HEB", 59, "Hebrews", NewTestament},
	{"JAS", 60, "James", NewTestament},
	{"1PE", 61, "1 Peter", NewTestament},
	{"2PE", 62, "2 Peter", NewTestament},
	{"1JN", 63, "1 John", NewTestament},
	{"2JN", 64, "2 John", NewTestament},
	{"3JN", 65, "3 John", NewTestament},
	{"JUD", 66, "Jude", NewTestament},
	{"REV", 67, "Revelation", NewTestament},
}

var booksByID = func() map[string]Book {
	m := make(map[string]Book, len(books))
	for _, b := range books {
		m[b.ID] = b
	}
	return m
}()

// LookupBook returns the Book for a USFM code. The lookup is
// case-insensitive. ok is false for unknown codes.
func LookupBook(id string) (Book, bool) {
	b, ok := booksByID[strings.ToUpper(strings.TrimSpace(id))]
	return b, ok
}

// IsValidBook reports whether id is a recognized canonical book code.
func IsValidBook(id string) bool {
	_, ok := LookupBook(id)
	return ok
}

// AllBooks returns all canonical books in document order.
func AllBooks() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}
