package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for reading and writing immutable blobs.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
}

// Lister is implemented by stores that can enumerate blobs.
type Lister interface {
	// List returns the sorted names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	// ReadAt reads len(p) bytes at offset off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)

	// ReadRange returns a stream over [off, off+length), clipped to the blob size.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)

	// Size returns the size of the blob in bytes.
	Size() int64

	io.Closer
}

// Mappable is an optional interface for Blobs backed by memory.
type Mappable interface {
	// Bytes returns the underlying byte slice, valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// NewReader opens name and returns a stream over the whole blob.
// Closing the reader closes the blob.
func NewReader(ctx context.Context, store BlobStore, name string) (io.ReadCloser, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	if blob.Size() == 0 {
		_ = blob.Close()
		return io.NopCloser(eofReader{}), nil
	}

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		_ = blob.Close()
		return nil, err
	}

	return &blobReader{ReadCloser: rc, blob: blob}, nil
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }

type blobReader struct {
	io.ReadCloser
	blob Blob
}

func (r *blobReader) Close() error {
	err := r.ReadCloser.Close()
	if cerr := r.blob.Close(); err == nil {
		err = cerr
	}
	return err
}
