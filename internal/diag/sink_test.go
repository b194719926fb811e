package diag

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_RedirectsAndRestoresStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zbar_errors.log")
	original := os.Stderr

	sink, err := Open(path)
	require.NoError(t, err)
	assert.NotEqual(t, original, os.Stderr)

	fmt.Fprintln(os.Stderr, "WARNING: zbar decoder/databar.c assertion")
	_, err = sink.Write([]byte("direct write\n"))
	require.NoError(t, err)

	require.NoError(t, sink.Close())
	assert.Equal(t, original, os.Stderr)
	assert.NoError(t, sink.Close(), "second close must be a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "assertion")
	assert.Contains(t, string(data), "direct write")
}

func TestSink_TruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")
	require.NoError(t, os.WriteFile(path, []byte("old run\n"), 0644))

	sink, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestOpen_BadPath(t *testing.T) {
	original := os.Stderr
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
	assert.Equal(t, original, os.Stderr)
}
