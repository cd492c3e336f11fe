package style

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key is not present in a table.
	ErrNotFound = errors.New("style key not found")

	// ErrDuplicateKey is returned when a key appears more than once.
	ErrDuplicateKey = errors.New("duplicate style key")

	// ErrMalformedLine is returned for a line that is not "key : value".
	ErrMalformedLine = errors.New("malformed style line")
)

// ParseError records where in the input a parse failure happened
type ParseError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.Source, e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Warning is a problem that lenient parsing skipped over.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}
