package i

import (
	"context"

	"github.com/beka-birhanu/amazeing/maze"
)

// MazeBuilder generates, solves and exports mazes.
type MazeBuilder interface {
	// Build generates and solves a maze. An unsolvable maze is returned with
	// its unsolved artifact and an error wrapping maze.ErrUnsolvable.
	Build(ctx context.Context, cfg maze.Config) (*maze.Maze, *maze.Artifact, error)

	// Encode serializes an artifact.
	Encode(a *maze.Artifact) ([]byte, error)

	// Export serializes the artifact and stores it under name.
	Export(ctx context.Context, a *maze.Artifact, name string) error

	// Resolve parses a serialized artifact and solves its maze again.
	Resolve(ctx context.Context, data []byte) (*maze.Artifact, error)
}
