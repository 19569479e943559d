package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/storage"
)

// Backend is an in-memory implementation of the storage.BlobStore
// interface, used in tests and single-process development setups.
type Backend struct {
	mu           sync.RWMutex
	objects      map[string][]byte
	contentTypes map[string]string
}

// New creates a new in-memory storage backend.
func New() storage.BlobStore {
	return &Backend{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[key] = data
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	b.contentTypes[key] = contentType
	return nil
}

func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[key]
	if !exists {
		return nil, storage.ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *Backend) Meta(ctx context.Context, key string) (*storage.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[key]
	if !exists {
		return nil, storage.ErrObjectNotFound
	}

	return &storage.ObjectMeta{
		Key:         key,
		Size:        int64(len(data)),
		ContentType: b.contentTypes[key],
	}, nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[key]; !exists {
		return storage.ErrObjectNotFound
	}

	delete(b.objects, key)
	delete(b.contentTypes, key)
	return nil
}
