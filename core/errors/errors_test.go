package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestInvalidBookError(t *testing.T) {
	err := NewInvalidBook("XYZ")
	want := `invalid book identifier: "XYZ"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("InvalidBookError should unwrap to ErrInvalidInput")
	}
}

func TestDocumentUnavailableError(t *testing.T) {
	tests := []struct {
		name   string
		book   string
		corpus string
		want   string
	}{
		{"with corpus", "TIT", "ult", "document unavailable: TIT in corpus ult"},
		{"without corpus", "TIT", "", "document unavailable: TIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDocumentUnavailable(tt.book, tt.corpus, nil)
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
			if !errors.Is(err, ErrUnavailable) {
				t.Error("DocumentUnavailableError should unwrap to ErrUnavailable")
			}
		})
	}
}

func TestDocumentUnavailableError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDocumentUnavailable("GEN", "uhb", cause)
	if !errors.Is(err, cause) {
		t.Error("DocumentUnavailableError should unwrap to its cause when set")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("a cause must not mask ErrUnavailable")
	}
}

func TestParseError(t *testing.T) {
	err := NewParse("USFM", "/tmp/57-TIT.usfm", "no verse markers")
	want := "failed to parse USFM at /tmp/57-TIT.usfm: no verse markers"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	err = NewParse("TSV", "", "short row")
	want = "failed to parse TSV: short row"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestMalformedAlignmentError(t *testing.T) {
	err := &MalformedAlignmentError{Book: "TIT", Verse: "1:1", ScopeCount: 3}
	want := "malformed alignment shape at TIT 1:1: 3 scopes (want 1 or 2)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("MalformedAlignmentError should unwrap to ErrInvalidInput")
	}
}

func TestIOError(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewIO("read", "/tmp/cache", underlying)
	want := "failed to read /tmp/cache: permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, underlying) {
		t.Error("IOError should unwrap to the underlying error")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	base := errors.New("base error")
	wrapped := Wrap(base, "context")
	if wrapped.Error() != "context: base error" {
		t.Errorf("Wrap() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match the base error")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "context %d", 42) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	base := errors.New("base error")
	wrapped := Wrapf(base, "row %d", 7)
	if wrapped.Error() != "row 7: base error" {
		t.Errorf("Wrapf() = %q", wrapped.Error())
	}
}

func TestIsAndAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewInvalidBook("ZZZ"))

	if !Is(err, ErrInvalidInput) {
		t.Error("Is should find ErrInvalidInput through the chain")
	}

	var ibe *InvalidBookError
	if !As(err, &ibe) {
		t.Fatal("As should extract InvalidBookError")
	}
	if ibe.Book != "ZZZ" {
		t.Errorf("extracted Book = %q, want ZZZ", ibe.Book)
	}
}
