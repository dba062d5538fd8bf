package maze

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// artifactNamespace scopes the name-based artifact ids.
var artifactNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/beka-birhanu/amazeing/artifact"))

// Artifact is the immutable result bundle handed to export and rendering.
// Its id is derived from its content, so equal artifacts share an id.
type Artifact struct {
	id     uuid.UUID
	lines  []string
	entry  Position
	exit   Position
	path   string
	solved bool
	seed   uint32
}

// NewArtifact bundles serialized grid lines with entry, exit and path. solved
// is false when no path exists; path must then be empty.
func NewArtifact(lines []string, entry, exit Position, path string, solved bool, seed uint32) *Artifact {
	a := &Artifact{
		lines:  slices.Clone(lines),
		entry:  entry,
		exit:   exit,
		path:   path,
		solved: solved,
		seed:   seed,
	}
	if !solved {
		a.path = ""
	}

	var key strings.Builder
	key.WriteString(strings.Join(a.lines, "\n"))
	fmt.Fprintf(&key, "\n%s\n%s\n%s\n%t\n%d", a.entry, a.exit, a.path, a.solved, a.seed)
	a.id = uuid.NewSHA1(artifactNamespace, []byte(key.String()))
	return a
}

// ID returns the content-derived id of the artifact.
func (a *Artifact) ID() uuid.UUID {
	return a.id
}

// Maze returns the serialized grid, one line per row joined by newlines.
func (a *Artifact) Maze() string {
	return strings.Join(a.lines, "\n")
}

// Lines returns a copy of the serialized grid rows.
func (a *Artifact) Lines() []string {
	return slices.Clone(a.lines)
}

// Entry returns the entry cell.
func (a *Artifact) Entry() Position {
	return a.entry
}

// Exit returns the exit cell.
func (a *Artifact) Exit() Position {
	return a.exit
}

// Path returns the solution moves. It is empty when the maze is unsolved.
func (a *Artifact) Path() string {
	return a.path
}

// Solved reports whether the artifact carries a solution path.
func (a *Artifact) Solved() bool {
	return a.solved
}

// Cols returns the number of columns.
func (a *Artifact) Cols() int {
	if len(a.lines) == 0 {
		return 0
	}
	return len(a.lines[0])
}

// Rows returns the number of rows.
func (a *Artifact) Rows() int {
	return len(a.lines)
}

// Seed returns the seed the maze was generated with, 0 when unknown.
func (a *Artifact) Seed() uint32 {
	return a.seed
}

// Grid parses the serialized lines back into a grid.
func (a *Artifact) Grid() (*Grid, error) {
	return GridFromRows(a.lines)
}

// Export solves the maze and bundles it into an artifact. When the maze has no
// solution the artifact is still returned, unsolved, together with an error
// wrapping ErrUnsolvable.
func (m *Maze) Export() (*Artifact, error) {
	path, err := Solve(m.Grid, m.Entry, m.Exit)
	if err != nil && !errors.Is(err, ErrUnsolvable) {
		return nil, err
	}
	solved := err == nil
	return NewArtifact(m.Grid.Rows(), m.Entry, m.Exit, path, solved, m.Seed), err
}
