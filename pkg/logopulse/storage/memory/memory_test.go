package memory

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/storage"
)

func TestMemoryBackendRoundTrip(t *testing.T) {
	b := New()
	ctx := context.Background()

	data := []byte{0x89, 0x50, 0x4e, 0x47}
	require.NoError(t, b.Upload(ctx, "1718-abc.png", bytes.NewReader(data), "image/png"))

	rc, err := b.Download(ctx, "1718-abc.png")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	meta, err := b.Meta(ctx, "1718-abc.png")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), meta.Size)
	assert.Equal(t, "image/png", meta.ContentType)
}

func TestMemoryBackendNotFound(t *testing.T) {
	b := New()
	ctx := context.Background()

	_, err := b.Download(ctx, "missing.png")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)

	_, err = b.Meta(ctx, "missing.png")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)

	assert.ErrorIs(t, b.Delete(ctx, "missing.png"), storage.ErrObjectNotFound)
}

func TestMemoryBackendDelete(t *testing.T) {
	b := New()
	ctx := context.Background()

	require.NoError(t, b.Upload(ctx, "k.jpg", bytes.NewReader([]byte{0xff}), "image/jpeg"))
	require.NoError(t, b.Delete(ctx, "k.jpg"))

	_, err := b.Download(ctx, "k.jpg")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestMemoryBackendOverwrite(t *testing.T) {
	b := New()
	ctx := context.Background()

	require.NoError(t, b.Upload(ctx, "k.png", bytes.NewReader([]byte("one")), "image/png"))
	require.NoError(t, b.Upload(ctx, "k.png", bytes.NewReader([]byte("two")), "image/png"))

	rc, err := b.Download(ctx, "k.png")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}
