package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]BlobStore {
	return map[string]BlobStore{
		"Local":  NewLocalStore(t.TempDir()),
		"Memory": NewMemoryStore(),
	}
}

func TestBlobStore(t *testing.T) {
	ctx := context.Background()
	data := []byte("X,Y\n0.1,0.2\n0.3,0.4\n")

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "in/points.csv", data))

			blob, err := store.Open(ctx, "in/points.csv")
			require.NoError(t, err)
			defer blob.Close()

			assert.Equal(t, int64(len(data)), blob.Size())

			buf := make([]byte, 7)
			n, err := blob.ReadAt(ctx, buf, 4)
			require.NoError(t, err)
			assert.Equal(t, 7, n)
			assert.Equal(t, "0.1,0.2", string(buf))

			n, err = blob.ReadAt(ctx, buf, int64(len(data))-3)
			assert.ErrorIs(t, err, io.EOF)
			assert.Equal(t, 3, n)

			rc, err := blob.ReadRange(ctx, 12, 1000)
			require.NoError(t, err)
			tail, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			assert.Equal(t, "0.3,0.4\n", string(tail))

			rc, err = blob.ReadRange(ctx, int64(len(data)), 10)
			require.NoError(t, err)
			empty, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Empty(t, empty)

			m, ok := blob.(Mappable)
			require.True(t, ok)
			b, err := m.Bytes()
			require.NoError(t, err)
			assert.Equal(t, data, b)
		})
	}
}

func TestBlobStoreOverwrite(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "a", []byte("first")))
			require.NoError(t, store.Put(ctx, "a", []byte("second!")))

			rc, err := NewReader(ctx, store, "a")
			require.NoError(t, err)
			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			assert.Equal(t, "second!", string(got))
		})
	}
}

func TestBlobStoreNotFound(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Open(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = NewReader(ctx, store, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBlobStoreList(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []string{"out/b.csv", "out/a.csv", "in/p.csv"} {
				require.NoError(t, store.Put(ctx, n, []byte(n)))
			}

			l, ok := store.(Lister)
			require.True(t, ok)

			names, err := l.List(ctx, "out/")
			require.NoError(t, err)
			assert.Equal(t, []string{"out/a.csv", "out/b.csv"}, names)

			names, err = l.List(ctx, "")
			require.NoError(t, err)
			assert.Len(t, names, 3)
		})
	}
}

func TestEmptyBlob(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "empty", nil))

			rc, err := NewReader(ctx, store, "empty")
			require.NoError(t, err)
			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Empty(t, got)
			require.NoError(t, rc.Close())
		})
	}
}

func TestLocalStorePutLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewLocalStore(root)

	require.NoError(t, store.Put(ctx, "dir/result.json", []byte(`{"count":1}`)))

	entries, err := os.ReadDir(filepath.Join(root, "dir"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "result.json", entries[0].Name())
	assert.Equal(t, root, store.Root())
}

func TestLocalStoreCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewLocalStore(t.TempDir())
	assert.ErrorIs(t, store.Put(ctx, "a", []byte("x")), context.Canceled)
	_, err := store.Open(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := string(rune('a' + i))
			assert.NoError(t, store.Put(ctx, name, []byte(name)))
			blob, err := store.Open(ctx, name)
			if assert.NoError(t, err) {
				assert.Equal(t, int64(1), blob.Size())
			}
		}()
	}
	wg.Wait()

	require.NoError(t, store.Delete(ctx, "a"))
	_, err := store.Open(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClip(t *testing.T) {
	data := []byte("abcdef")
	assert.Equal(t, []byte("cd"), clip(data, 2, 2))
	assert.Equal(t, []byte("ef"), clip(data, 4, 100))
	assert.Nil(t, clip(data, 6, 1))
	assert.Nil(t, clip(data, -1, 1))
	assert.Nil(t, clip(data, 0, 0))
}
