package pointio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/pointsearch/blobstore"
	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/pointstore"
	"github.com/hupe1980/pointsearch/resource"
)

// Open streams the named blob, decompressing by suffix. A non-nil rc
// throttles the compressed byte stream.
func Open(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) (io.ReadCloser, error) {
	raw, err := blobstore.NewReader(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("pointio: open %s: %w", name, err)
	}

	var src io.Reader = ctxReader{ctx: ctx, r: raw}
	if rc != nil {
		src = resource.NewRateLimitedReader(ctx, src, rc)
	}

	dec, err := NewReader(src, CompressionFor(name))
	if err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("pointio: open %s: %w", name, err)
	}

	return &stackedReader{ReadCloser: dec, raw: raw}, nil
}

// Load opens and parses a point file.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...func(*ReadOptions)) (*pointstore.Store, ReadStats, error) {
	opts := defaultReadOptions(optFns)
	if opts.Source == "" {
		opts.Source = name
	}

	rc, err := Open(ctx, store, name, opts.Controller)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer rc.Close()

	return ReadPoints(rc, func(o *ReadOptions) { *o = opts })
}

// LoadCentroids opens and parses a centroid file.
func LoadCentroids(ctx context.Context, store blobstore.BlobStore, name string, optFns ...func(*ReadOptions)) ([]model.Centroid, ReadStats, error) {
	opts := defaultReadOptions(optFns)
	if opts.Source == "" {
		opts.Source = name
	}

	rc, err := Open(ctx, store, name, opts.Controller)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer rc.Close()

	return ReadCentroids(rc, func(o *ReadOptions) { *o = opts })
}

// Save writes data to the named blob, compressing by suffix. A non-nil rc
// throttles the compressed output.
func Save(ctx context.Context, store blobstore.BlobStore, name string, data []byte, rc *resource.Controller) error {
	var buf bytes.Buffer

	var dst io.Writer = &buf
	if rc != nil {
		dst = resource.NewRateLimitedWriter(ctx, &buf, rc)
	}

	w, err := NewWriter(dst, CompressionFor(name))
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("pointio: save %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("pointio: save %s: %w", name, err)
	}

	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("pointio: save %s: %w", name, err)
	}
	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// stackedReader closes the decoder and then the underlying blob stream.
type stackedReader struct {
	io.ReadCloser
	raw io.Closer
}

func (s *stackedReader) Close() error {
	err := s.ReadCloser.Close()
	if cerr := s.raw.Close(); err == nil {
		err = cerr
	}
	return err
}
