package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ImageStore persists uploaded drawings under a configured root directory.
type ImageStore struct {
	dir string
}

// NewImageStore creates the upload directory if needed and returns a store.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %q: %w", dir, err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save writes the uploaded bytes to disk under a name derived from the owning
// user and the current time, and returns the stored path. The content is not
// validated here; undecodable bytes fail later during overlay generation.
func (s *ImageStore) Save(userID int64, data []byte) (string, error) {
	name := fmt.Sprintf("%d_%d.png", userID, time.Now().UnixNano())
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image file %q: %w", path, err)
	}

	return path, nil
}
