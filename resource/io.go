package resource

import (
	"context"
	"io"
)

// RateLimitedWriter wraps an io.Writer with rate limiting.
type RateLimitedWriter struct {
	w   io.Writer
	rc  *Controller
	ctx context.Context
}

// NewRateLimitedWriter creates a new RateLimitedWriter.
func NewRateLimitedWriter(ctx context.Context, w io.Writer, rc *Controller) *RateLimitedWriter {
	return &RateLimitedWriter{
		w:   w,
		rc:  rc,
		ctx: ctx,
	}
}

func (w *RateLimitedWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		n := w.rc.ioChunk(len(p))
		if err := w.rc.AcquireIO(w.ctx, n); err != nil {
			return written, err
		}
		m, err := w.w.Write(p[:n])
		written += m
		if err != nil {
			return written, err
		}
		p = p[n:]
	}
	return written, nil
}

// RateLimitedReader wraps an io.Reader with rate limiting.
type RateLimitedReader struct {
	r   io.Reader
	rc  *Controller
	ctx context.Context
}

// NewRateLimitedReader creates a new RateLimitedReader.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) *RateLimitedReader {
	return &RateLimitedReader{
		r:   r,
		rc:  rc,
		ctx: ctx,
	}
}

// Read waits for at most one burst worth of tokens, so a single large buffer
// never exceeds the limiter's burst size.
func (r *RateLimitedReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return r.r.Read(p)
	}
	n := r.rc.ioChunk(len(p))
	if err := r.rc.AcquireIO(r.ctx, n); err != nil {
		return 0, err
	}
	return r.r.Read(p[:n])
}
