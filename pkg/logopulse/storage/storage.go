// Package storage defines the blob store the upstream emulator keeps
// submitted images in, with in-memory, filesystem, and S3 backends.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound indicates no object is stored under the key.
var ErrObjectNotFound = errors.New("object not found")

// ObjectMeta describes a stored object.
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
}

// BlobStore is the storage tier submissions are persisted to, keyed by
// submission key. Implementations must be safe for concurrent use.
type BlobStore interface {
	// Upload stores the object under key, replacing any previous
	// object with the same key.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Download returns the object bytes. The caller closes the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Meta retrieves metadata for the object.
	Meta(ctx context.Context, key string) (*ObjectMeta, error)

	// Delete removes the object.
	Delete(ctx context.Context, key string) error
}
