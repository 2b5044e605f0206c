package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage stores uploaded files under a base directory on disk
type LocalStorage struct {
	basePath string
	maxSize  int64
}

// NewLocalStorage creates the base directory if needed
func NewLocalStorage(basePath string, maxSize int64) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, maxSize: maxSize}, nil
}

// Save writes the uploaded file under subdir with a random name and returns
// the relative path to store on the record.
func (s *LocalStorage) Save(file *multipart.FileHeader, subdir string) (string, error) {
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	relPath := filepath.Join(subdir, name)

	dir := filepath.Join(s.basePath, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage subdirectory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.basePath, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return relPath, nil
}

// FullPath resolves a stored relative path to an absolute path on disk
func (s *LocalStorage) FullPath(relPath string) string {
	return filepath.Join(s.basePath, relPath)
}

// Delete removes a stored file. Missing files are not an error.
func (s *LocalStorage) Delete(relPath string) error {
	err := os.Remove(filepath.Join(s.basePath, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
