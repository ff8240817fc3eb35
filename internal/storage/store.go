package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo is the metadata of a stored object.
type ObjectInfo struct {
	Path        string
	Size        int64
	ContentType string
	Updated     time.Time
}

// ObjectStore is the path-addressed blob interface the upload orchestrator
// and handlers work against. Implementations: GCSStore (production) and
// MemoryStore (tests, local development).
type ObjectStore interface {
	// Upload writes the object at path, replacing any existing content.
	Upload(ctx context.Context, path, contentType string, r io.Reader) error
	// Download opens the object for reading.
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	// DownloadURL returns a time-limited URL a browser can fetch directly.
	DownloadURL(ctx context.Context, path string) (string, error)
	// Stat returns object metadata.
	Stat(ctx context.Context, path string) (*ObjectInfo, error)
	// Delete removes the object.
	Delete(ctx context.Context, path string) error
	// List returns the paths of all objects under the prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
