package i

// ArtifactStore persists serialized artifacts by name.
type ArtifactStore interface {
	// Write replaces the artifact stored under name.
	Write(name string, data []byte) error

	// Read returns the artifact stored under name.
	Read(name string) ([]byte, error)
}
