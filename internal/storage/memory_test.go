package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.Upload(ctx, "coaches/c1/x.pdf", "application/pdf", strings.NewReader("content"))
	require.NoError(t, err)

	rc, err := store.Download(ctx, "coaches/c1/x.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "content", string(data))

	info, err := store.Stat(ctx, "coaches/c1/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)

	url, err := store.DownloadURL(ctx, "coaches/c1/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "memory://coaches/c1/x.pdf", url)
}

func TestMemoryStoreUploadReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Upload(ctx, "p", "text/plain", strings.NewReader("v1")))
	require.NoError(t, store.Upload(ctx, "p", "text/plain", strings.NewReader("v2")))

	rc, err := store.Download(ctx, "p")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "v2", string(data))
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Download(ctx, "missing")
	assert.True(t, errors.Is(err, ErrObjectNotFound))

	_, err = store.Stat(ctx, "missing")
	assert.True(t, errors.Is(err, ErrObjectNotFound))

	_, err = store.DownloadURL(ctx, "missing")
	assert.True(t, errors.Is(err, ErrObjectNotFound))

	assert.True(t, errors.Is(store.Delete(ctx, "missing"), ErrObjectNotFound))
}

func TestMemoryStoreListByPrefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Upload(ctx, "coaches/c1/a", "text/plain", strings.NewReader("a")))
	require.NoError(t, store.Upload(ctx, "coaches/c1/b", "text/plain", strings.NewReader("b")))
	require.NoError(t, store.Upload(ctx, "coaches/c2/c", "text/plain", strings.NewReader("c")))

	paths, err := store.List(ctx, "coaches/c1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"coaches/c1/a", "coaches/c1/b"}, paths)

	empty, err := store.List(ctx, ".healthz/")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Upload(ctx, "p", "text/plain", strings.NewReader("x")))
	require.NoError(t, store.Delete(ctx, "p"))

	_, err := store.Stat(ctx, "p")
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}
