package storage

import (
	"context"
	"io"
	"time"
)

// StorageInterface is the object-store boundary for equipment images and
// avatars. Supports both mock (local filesystem) and Google Cloud Storage.
type StorageInterface interface {
	// Upload stores the blob under key and returns its public URL.
	Upload(ctx context.Context, key string, contentType string, r io.Reader) (string, error)

	// Delete removes an object. Deleting a missing key is not an error;
	// Delete is the compensating action after a failed database insert and
	// must be safe to repeat.
	Delete(ctx context.Context, key string) error

	// FileExists checks whether an object exists and returns its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// ReadFile opens an object for reading (used by the mock download
	// handler).
	ReadFile(key string) (io.ReadCloser, error)

	// KeyFromURL maps a public URL previously returned by Upload back to
	// its storage key, or "" when the URL is foreign.
	KeyFromURL(url string) string

	// DeleteUnreferenced removes objects older than olderThan whose key is
	// not in referenced. Returns the number of deleted objects.
	DeleteUnreferenced(ctx context.Context, olderThan time.Time, referenced map[string]bool) (int, error)
}
