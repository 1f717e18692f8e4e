package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultMediaRoot is the fallback directory for locally stored uploads.
const DefaultMediaRoot = "storage"

// LocalStorage copies uploads into a directory on local disk. The copy is
// a blocking write inside the request; there is no deduplication and the
// caller-supplied file name is used as-is.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	if root == "" {
		root = DefaultMediaRoot
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root %s: %w", root, err)
	}

	return &LocalStorage{root: root}, nil
}

func (s *LocalStorage) Root() string { return s.root }

func (s *LocalStorage) Store(ctx context.Context, r io.Reader, fileName string) (string, error) {
	path := filepath.Join(s.root, fileName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return path, nil
}
