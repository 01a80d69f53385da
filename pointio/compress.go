package pointio

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a stream compression format.
type Compression int

const (
	// None reads and writes bytes unchanged.
	None Compression = iota
	// Zstd is Zstandard, selected by the ".zst" suffix.
	Zstd
	// LZ4 is the LZ4 frame format, selected by the ".lz4" suffix.
	LZ4
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// CompressionFor selects the compression from a file name suffix.
func CompressionFor(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		return Zstd
	case strings.HasSuffix(name, ".lz4"):
		return LZ4
	default:
		return None
	}
}

// NewReader returns a decompressing reader over r.
// Closing it releases decoder resources but does not close r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Zstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("pointio: unknown compression %v", c)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter returns a compressing writer over w. Close flushes the frame
// but does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		return zstd.NewWriter(w)
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("pointio: unknown compression %v", c)
	}
}

// Compress encodes data in one shot.
func Compress(data []byte, c Compression) ([]byte, error) {
	if c == None {
		return data, nil
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, c)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
