package importer

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateSource indicates two files bind to the same kind.
	ErrDuplicateSource = errors.New("duplicate source file")

	// ErrIncomplete indicates a strict run skipped rows, missed files or failed to read a file.
	ErrIncomplete = errors.New("import incomplete")

	// ErrMissingColumn indicates a file header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyFile indicates a file has no header row.
	ErrEmptyFile = errors.New("file has no header")

	// ErrMissingReference indicates a row refers to a record that does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")

	// ErrNoHandler indicates no row handler is registered for a kind.
	ErrNoHandler = errors.New("no handler registered")
)

// ValueError reports a cell that could not be converted to its column type.
type ValueError struct {
	Column string
	Value  string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: invalid value %q: %v", e.Column, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

// ReferenceError reports a foreign key that resolves to no record.
type ReferenceError struct {
	Column string
	ID     int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Column, e.ID)
}

// Is makes ReferenceError match ErrMissingReference.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrMissingReference
}
