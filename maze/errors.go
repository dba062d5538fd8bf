package maze

import (
	"errors"
	"fmt"
)

// Maze-related errors.
var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrInvalidShape      = errors.New("invalid maze shape")
	ErrOutOfBounds       = errors.New("position is out of the maze")
	ErrVoidCell          = errors.New("position is outside the maze shape")
	ErrSameEndpoints     = errors.New("entry and exit must not overlap")
	ErrNoPlayableCell    = errors.New("no playable cell available")
	ErrInvalidCellChar   = errors.New("invalid maze character")
	ErrUnsolvable        = errors.New("maze has no solution")
	ErrInvalidPath       = errors.New("invalid path")
)

// ShapeError reports that a shape could not place an entry or exit on a
// playable cell.
type ShapeError struct {
	Shape Shape
	Field string // "entry" or "exit"
	Err   error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape %s: cannot place %s: %v", e.Shape, e.Field, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
