package txt

import (
	"errors"
	"fmt"
)

var (
	ErrNilArtifact     = errors.New("nil artifact")
	ErrMissingRows     = errors.New("missing maze rows")
	ErrRowLength       = errors.New("row length differs from the first row")
	ErrMissingBlank    = errors.New("missing blank line after the maze rows")
	ErrMissingEndpoint = errors.New("missing coordinate line")
	ErrBadCoordinate   = errors.New("coordinate must be x,y inside the maze")
	ErrBadPath         = errors.New("path may only contain N, E, S and W")
	ErrTrailingData    = errors.New("unexpected content after the path")
)

// SerializationError reports where a text artifact violates the format.
// Line and Column are 1-based; Column is 0 when the whole line is at fault.
type SerializationError struct {
	Line   int
	Column int
	Char   byte
	Err    error
}

func (e *SerializationError) Error() string {
	switch {
	case e.Column > 0 && e.Char != 0:
		return fmt.Sprintf("line %d, column %d (%q): %v", e.Line, e.Column, e.Char, e.Err)
	case e.Column > 0:
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	default:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
