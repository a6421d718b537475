package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileSystem(t *testing.T) {
	dir := t.TempDir()
	lfs := NewLocalFileSystem()

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, lfs.CreateDir(nested, 0755))
	require.NoError(t, lfs.CreateDir(nested, 0755))

	path := filepath.Join(nested, "file.txt")
	f, err := lfs.CreateFile(path, false)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = lfs.CreateFile(path, false)
	assert.ErrorIs(t, err, os.ErrExist)

	f, err = lfs.CreateFile(path, true)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Error(t, lfs.CreateDir(path, 0755), "a file is not a directory")

	ok, err := lfs.Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	moved := filepath.Join(dir, "moved.txt")
	require.NoError(t, lfs.Rename(path, moved))

	f, err = lfs.Open(moved)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, lfs.DeleteFile(moved))
	ok, err = lfs.Exists(moved)
	require.NoError(t, err)
	assert.False(t, ok)
}
