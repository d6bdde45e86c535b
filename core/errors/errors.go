// Package errors provides standardized error types and helpers for the CedarNotes codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable indicates a required document could not be obtained
	ErrUnavailable = errors.New("unavailable")
	// ErrInternal indicates an internal system error
	ErrInternal = errors.New("internal error")
)

// InvalidBookError indicates an unrecognized canonical book identifier.
// It aborts the whole invocation; no partial output is produced.
type InvalidBookError struct {
	Book string // Identifier as given by the caller
	Err  error  // Underlying error, if any
}

func (e *InvalidBookError) Error() string {
	return fmt.Sprintf("invalid book identifier: %q", e.Book)
}

func (e *InvalidBookError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// DocumentUnavailableError indicates one of the required corpora could not
// be fetched or parsed for a book.
type DocumentUnavailableError struct {
	Book   string // USFM book code (e.g., "TIT")
	Corpus string // Corpus abbreviation (e.g., "ult", "uhb", "ugnt")
	Err    error  // Underlying error, if any
}

func (e *DocumentUnavailableError) Error() string {
	if e.Corpus != "" {
		return fmt.Sprintf("document unavailable: %s in corpus %s", e.Book, e.Corpus)
	}
	return fmt.Sprintf("document unavailable: %s", e.Book)
}

// Unwrap exposes both the sentinel and the cause: a 404 wrapping
// ErrNotFound must still match ErrUnavailable.
func (e *DocumentUnavailableError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUnavailable, e.Err}
	}
	return []error{ErrUnavailable}
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "USFM", "USX", "TSV")
	Path    string // File path or URL, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// MalformedAlignmentError indicates an alignment-reference set of an
// unsupported size was encountered during projection. It is logged as a
// warning and the offending triple is skipped, never fatal.
type MalformedAlignmentError struct {
	Book       string // USFM book code
	Verse      string // chapter:verse reference
	ScopeCount int    // Size of the offending reference set
}

func (e *MalformedAlignmentError) Error() string {
	return fmt.Sprintf("malformed alignment shape at %s %s: %d scopes (want 1 or 2)",
		e.Book, e.Verse, e.ScopeCount)
}

func (e *MalformedAlignmentError) Unwrap() error {
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "fetch")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for creating common errors

// NewInvalidBook creates an InvalidBookError
func NewInvalidBook(book string) *InvalidBookError {
	return &InvalidBookError{Book: book}
}

// NewDocumentUnavailable creates a DocumentUnavailableError
func NewDocumentUnavailable(book, corpus string, err error) *DocumentUnavailableError {
	return &DocumentUnavailableError{
		Book:   book,
		Corpus: corpus,
		Err:    err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
