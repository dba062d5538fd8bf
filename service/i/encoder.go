package i

import "github.com/beka-birhanu/amazeing/maze"

// Encoder converts maze artifacts to and from their serialized form.
type Encoder interface {
	MarshalArtifact(*maze.Artifact) ([]byte, error)
	UnmarshalArtifact([]byte) (*maze.Artifact, error)
}
