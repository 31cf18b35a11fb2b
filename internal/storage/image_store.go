package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrEmptyFile is returned when an upload carries no bytes.
var ErrEmptyFile = errors.New("file is empty")

// ImageStore writes uploaded image files to local disk. Files are
// stored under their base name, so saving the same filename again
// replaces the bytes in place and resolves to the same path.
type ImageStore struct {
	dir string
}

// NewImageStore ensures the upload directory exists.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save persists the file and returns the stored filename and its
// absolute path.
func (s *ImageStore) Save(filename string, data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyFile
	}

	stored := filepath.Base(filename)
	path := filepath.Join(s.dir, stored)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", err
	}
	return stored, abs, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *ImageStore) Remove(fullPath string) error {
	err := os.Remove(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
