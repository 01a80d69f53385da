package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestMapping_OpenReadClose(t *testing.T) {
	content := []byte("x,y\n1.5,2\n")

	m, err := Open(writeFile(t, content))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, len(content), m.Size())
	assert.Equal(t, content, m.Bytes())
	require.NoError(t, m.Advise(AccessSequential))

	buf := make([]byte, 3)
	n, err := m.ReadAt(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "1.5", string(buf))

	// Past the end
	n, err = m.ReadAt(buf, 100)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	// Partial
	tail := make([]byte, 10)
	n, err = m.ReadAt(tail, 8)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "2\n", string(tail[:n]))

	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)
}

func TestMapping_EmptyFile(t *testing.T) {
	m, err := Open(writeFile(t, nil))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.Size())
	assert.NoError(t, m.Advise(AccessRandom))

	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.Equal(t, io.EOF, err)
}

func TestMapping_AfterClose(t *testing.T) {
	m, err := Open(writeFile(t, []byte("data")))
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "close is idempotent")

	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.Advise(AccessRandom), ErrClosed)
	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMapping_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
