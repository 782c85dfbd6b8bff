package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreConformance exercises the Store contract against any
// implementation.
func testStoreConformance(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("OpenMissing", func(t *testing.T) {
		_, err := store.Open(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PutOpenRoundTrip", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "snapshots/web-1", []byte("frame-1")))

		rc, err := store.Open(ctx, "snapshots/web-1")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("frame-1"), data)
	})

	t.Run("CreateCommitsOnClose", func(t *testing.T) {
		w, err := store.Create(ctx, "snapshots/web-2")
		require.NoError(t, err)
		_, err = w.Write([]byte("frame-2"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		rc, err := store.Open(ctx, "snapshots/web-2")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("frame-2"), data)
	})

	t.Run("ListByPrefix", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "other/blob", []byte("x")))

		names, err := store.List(ctx, "snapshots/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snapshots/web-1", "snapshots/web-2"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "snapshots/web-1"))
		_, err := store.Open(ctx, "snapshots/web-1")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting a missing blob is not an error.
		assert.NoError(t, store.Delete(ctx, "snapshots/web-1"))
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "snapshots/web-2", []byte("frame-2b")))

		rc, err := store.Open(ctx, "snapshots/web-2")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("frame-2b"), data)
	})
}

func TestMemoryStore(t *testing.T) {
	testStoreConformance(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStoreConformance(t, store)
}

func TestMemoryStoreOpenIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "blob", []byte("before")))

	rc, err := store.Open(ctx, "blob")
	require.NoError(t, err)
	defer rc.Close()

	// A Put after Open must not leak into the already-open reader.
	require.NoError(t, store.Put(ctx, "blob", []byte("after!")))

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("before"), data)
}
