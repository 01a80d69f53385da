package minio

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/hupe1980/pointsearch/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStoreIntegration requires a running MinIO instance.
// Skip if not available.
func TestStoreIntegration(t *testing.T) {
	cfg := Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}
	if ep := os.Getenv("MINIO_ENDPOINT"); ep != "" {
		cfg.Endpoint = ep
	}
	bucket := "test-pointsearch"

	client, err := NewClient(cfg)
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("X,Y\n0.5,0.5\n")
	require.NoError(t, store.Put(ctx, "points.csv", data))

	blob, err := store.Open(ctx, "points.csv")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, buf)

	rc, err := blob.ReadRange(ctx, 4, 3)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "0.5", string(part))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "points.csv")

	require.NoError(t, store.Delete(ctx, "points.csv"))
	_, err = store.Open(ctx, "points.csv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Delete(ctx, "points.csv"))
}

func TestNewClientRejectsBadEndpoint(t *testing.T) {
	_, err := NewClient(Config{Endpoint: "http://localhost:9000/path"})
	assert.Error(t, err)
}
