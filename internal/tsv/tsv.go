// Package tsv reads and writes translation-notes tables. Rows are
// tab-separated with no quoting; every field the resolver does not touch
// passes through byte-for-byte in its original position.
package tsv

import (
	"strings"

	"github.com/FocuswithJustin/CedarNotes/core/errors"
)

// Standard 7-column translation-notes header fields.
const (
	ColReference  = "Reference"
	ColID         = "ID"
	ColTags       = "Tags"
	ColSupportRef = "SupportReference"
	ColQuote      = "Quote"
	ColOccurrence = "Occurrence"
	ColNote       = "Note"
)

// defaultColumns is the assumed layout when the first row is not a header.
var defaultColumns = []string{
	ColReference, ColID, ColTags, ColSupportRef, ColQuote, ColOccurrence, ColNote,
}

// Table holds a parsed notes table. Rows includes the header row, if any;
// the resolver's pass-through rule handles it like any other row.
type Table struct {
	Rows [][]string

	refCol   int
	idCol    int
	quoteCol int
	occCol   int
}

// Parse reads a tab-separated table. Column positions for Reference, ID,
// Quote, and Occurrence are taken from the first row when it is a header
// (its first field equals "Reference"), otherwise the standard 7-column
// layout is assumed.
func Parse(content string) (*Table, error) {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return nil, errors.NewParse("TSV", "", "empty table")
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	t := &Table{Rows: make([][]string, 0, len(lines))}
	for _, line := range lines {
		t.Rows = append(t.Rows, strings.Split(line, "\t"))
	}

	columns := defaultColumns
	if t.Rows[0][0] == ColReference {
		columns = t.Rows[0]
	}
	t.refCol = indexOf(columns, ColReference)
	t.idCol = indexOf(columns, ColID)
	t.quoteCol = indexOf(columns, ColQuote)
	t.occCol = indexOf(columns, ColOccurrence)

	if t.refCol < 0 || t.quoteCol < 0 {
		return nil, errors.NewParse("TSV", "", "table has no Reference/Quote columns")
	}

	return t, nil
}

func indexOf(fields []string, name string) int {
	for i, f := range fields {
		if f == name {
			return i
		}
	}
	return -1
}

// Len returns the number of rows, header included.
func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) field(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Ref returns the Reference field of row i.
func (t *Table) Ref(i int) string { return t.field(i, t.refCol) }

// ID returns the ID field of row i.
func (t *Table) ID(i int) string { return t.field(i, t.idCol) }

// Quote returns the Quote field of row i.
func (t *Table) Quote(i int) string { return t.field(i, t.quoteCol) }

// Occurrence returns the Occurrence field of row i.
func (t *Table) Occurrence(i int) string { return t.field(i, t.occCol) }

// SetQuote overwrites the Quote field of row i in place.
func (t *Table) SetQuote(i int, quote string) {
	if t.quoteCol >= 0 && i >= 0 && i < len(t.Rows) && t.quoteCol < len(t.Rows[i]) {
		t.Rows[i][t.quoteCol] = quote
	}
}

// SerializeRows returns each row re-joined with tabs, in input order.
func (t *Table) SerializeRows() []string {
	rows := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = strings.Join(row, "\t")
	}
	return rows
}

// Serialize returns the whole table as one newline-terminated string.
func (t *Table) Serialize() string {
	return strings.Join(t.SerializeRows(), "\n") + "\n"
}
