// Package storage keeps serialized maze artifacts on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/beka-birhanu/amazeing/service/i"
)

var _ i.ArtifactStore = &FileStore{}

var (
	ErrEmptyName   = errors.New("artifact name is empty")
	ErrIsDirectory = errors.New("artifact path is a directory")
)

// FileStore writes artifacts as files. Relative names resolve against its
// base directory.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a store rooted at baseDir. An empty baseDir means the
// working directory.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// Path returns where name is stored.
func (s *FileStore) Path(name string) string {
	if filepath.IsAbs(name) || s.baseDir == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(s.baseDir, name)
}

// Write implements i.ArtifactStore. The file is replaced through a rename, so
// readers see either the old or the new artifact.
func (s *FileStore) Write(name string, data []byte) error {
	if name == "" {
		return ErrEmptyName
	}
	path := s.Path(name)

	if stat, err := os.Stat(path); err == nil && stat.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directories: %w", err)
		}
	}

	tempPath := path + ".tmp." + strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming artifact: %w", err)
	}
	return nil
}

// Read implements i.ArtifactStore.
func (s *FileStore) Read(name string) ([]byte, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	return data, nil
}
