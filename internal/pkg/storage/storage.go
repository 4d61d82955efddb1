package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where uploaded attachments live. The default
// implementation writes to the local filesystem.
type FileStorage interface {
	// Upload stores the file under path and returns the storage key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a stored file. Deleting a missing file is not an
	// error.
	Delete(ctx context.Context, path string) error

	// GetURL returns the URL clients fetch the file from.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists reports whether the file is present.
	Exists(ctx context.Context, path string) (bool, error)
}
