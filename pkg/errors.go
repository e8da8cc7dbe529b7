package pkg

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("format violation")

	// ErrUnsupported is matched by a *FormatError describing a structurally
	// valid variant that this package does not decode.
	ErrUnsupported = errors.New("unsupported variant")

	ErrTruncated      = errors.New("unexpected end of data")
	ErrTrailingData   = errors.New("trailing data")
	ErrSectionMissing = errors.New("section missing")
	ErrBadReference   = errors.New("reference out of range")
)

// FormatError reports a structural field that does not hold its required value.
type FormatError struct {
	Chunk       string
	Field       string
	Expected    any
	Actual      any
	Unsupported bool
}

func (e *FormatError) Error() string {
	kind := "invalid"
	if e.Unsupported {
		kind = "unsupported"
	}

	return fmt.Sprintf("%s: %s %s: expected %v, got %v", e.Chunk, kind, e.Field, e.Expected, e.Actual)
}

func (e *FormatError) Is(target error) bool {
	switch target {
	case ErrFormat:
		return true
	case ErrUnsupported:
		return e.Unsupported
	}

	return false
}

func expect[T comparable](chunk, field string, want, got T) error {
	if want == got {
		return nil
	}

	return &FormatError{Chunk: chunk, Field: field, Expected: want, Actual: got}
}

func expectSupported[T comparable](chunk, field string, want, got T) error {
	if want == got {
		return nil
	}

	return &FormatError{Chunk: chunk, Field: field, Expected: want, Actual: got, Unsupported: true}
}

// ReferenceError reports a tilemap entry that points outside the tileset,
// the palette, or a colour table.
type ReferenceError struct {
	X, Y  int // tile coordinates of the map cell
	What  string
	Index int
	Limit int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("map cell (%d,%d): %s %d out of range [0,%d)", e.X, e.Y, e.What, e.Index, e.Limit)
}

func (e *ReferenceError) Unwrap() error {
	return ErrBadReference
}
