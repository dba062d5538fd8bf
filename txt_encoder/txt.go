// Package txt reads and writes maze artifacts in the line-oriented text format:
// the grid rows, a blank line, the entry and exit as x,y and the path.
package txt

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/beka-birhanu/amazeing/maze"
	"github.com/beka-birhanu/amazeing/service/i"
)

var _ i.Encoder = &Text{}

// Text is the text artifact encoder.
type Text struct {
	// VerifyPath makes UnmarshalArtifact replay the path and reject it unless
	// it leads from entry to exit.
	VerifyPath bool
}

// MarshalArtifact implements i.Encoder. The path line is left out when the
// artifact is unsolved.
func (t *Text) MarshalArtifact(a *maze.Artifact) ([]byte, error) {
	if a == nil {
		return nil, ErrNilArtifact
	}
	rows := a.Lines()
	grid, err := parseRows(rows)
	if err != nil {
		return nil, err
	}

	line := len(rows) + 2
	for n, p := range []maze.Position{a.Entry(), a.Exit()} {
		if err := checkEndpoint(grid, p, line+n); err != nil {
			return nil, err
		}
	}
	if err := checkPath(a.Path(), line+2); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, row := range rows {
		buf.WriteString(row)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	fmt.Fprintf(&buf, "%s\n%s\n", a.Entry(), a.Exit())
	if a.Solved() {
		buf.WriteString(a.Path())
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// UnmarshalArtifact implements i.Encoder. A missing or empty path line yields
// an unsolved artifact. The seed is not part of the format and reads as 0.
func (t *Text) UnmarshalArtifact(data []byte) (*maze.Artifact, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	blank := -1
	for n, l := range lines {
		if l == "" {
			blank = n
			break
		}
	}
	switch blank {
	case 0:
		return nil, &SerializationError{Line: 1, Err: ErrMissingRows}
	case -1:
		return nil, &SerializationError{Line: len(lines) + 1, Err: ErrMissingBlank}
	}

	rows := lines[:blank]
	grid, err := parseRows(rows)
	if err != nil {
		return nil, err
	}

	rest := lines[blank+1:]
	for len(rest) > 0 && rest[len(rest)-1] == "" {
		rest = rest[:len(rest)-1]
	}
	line := blank + 2
	if len(rest) < 2 {
		return nil, &SerializationError{Line: line + len(rest), Err: ErrMissingEndpoint}
	}
	if len(rest) > 3 {
		return nil, &SerializationError{Line: line + 3, Err: ErrTrailingData}
	}

	entry, err := parseCoordinate(grid, rest[0], line)
	if err != nil {
		return nil, err
	}
	exit, err := parseCoordinate(grid, rest[1], line+1)
	if err != nil {
		return nil, err
	}
	if entry == exit {
		return nil, &SerializationError{Line: line + 1, Err: maze.ErrSameEndpoints}
	}

	var path string
	if len(rest) == 3 {
		path = rest[2]
		if err := checkPath(path, line+2); err != nil {
			return nil, err
		}
	}
	solved := path != ""

	if t.VerifyPath && solved {
		end, err := maze.WalkPath(grid, entry, path)
		if err == nil && end != exit {
			err = fmt.Errorf("%w: ends at %s instead of %s", maze.ErrInvalidPath, end, exit)
		}
		if err != nil {
			return nil, &SerializationError{Line: line + 2, Err: err}
		}
	}

	return maze.NewArtifact(rows, entry, exit, path, solved, 0), nil
}

// parseRows checks that rows form a rectangle of cell characters and builds
// the grid they describe. Rows start on line 1.
func parseRows(rows []string) (*maze.Grid, error) {
	if len(rows) == 0 || rows[0] == "" {
		return nil, &SerializationError{Line: 1, Err: ErrMissingRows}
	}
	for n, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, &SerializationError{Line: n + 1, Err: ErrRowLength}
		}
		for col := 0; col < len(row); col++ {
			if _, err := maze.CellFromChar(row[col]); err != nil {
				return nil, &SerializationError{Line: n + 1, Column: col + 1, Char: row[col], Err: err}
			}
		}
	}
	return maze.GridFromRows(rows)
}

func parseCoordinate(grid *maze.Grid, s string, line int) (maze.Position, error) {
	xs, ys, ok := strings.Cut(s, ",")
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if !ok || errX != nil || errY != nil {
		return maze.Position{}, &SerializationError{Line: line, Err: fmt.Errorf("%w: %q", ErrBadCoordinate, s)}
	}
	p := maze.Position{X: x, Y: y}
	return p, checkEndpoint(grid, p, line)
}

func checkEndpoint(grid *maze.Grid, p maze.Position, line int) error {
	if !grid.InBounds(p) {
		return &SerializationError{Line: line, Err: fmt.Errorf("%w: %s", ErrBadCoordinate, p)}
	}
	if !grid.IsPlayable(p) {
		return &SerializationError{Line: line, Err: fmt.Errorf("%s: %w", p, maze.ErrVoidCell)}
	}
	return nil
}

func checkPath(path string, line int) error {
	for col := 0; col < len(path); col++ {
		if _, ok := maze.DirectionFromLetter(path[col]); !ok {
			return &SerializationError{Line: line, Column: col + 1, Char: path[col], Err: ErrBadPath}
		}
	}
	return nil
}
