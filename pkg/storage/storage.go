package storage

import (
	"context"
	"io"
)

// FileStorage defines the contract for cover-image storage providers.
type FileStorage interface {
	// Store persists the file content and returns a reference string
	// (a local path or a remote URL, depending on the driver).
	Store(ctx context.Context, r io.Reader, fileName string) (string, error)
}
