package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageStoreSave(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	stored, fullPath, err := store.Save("photo.jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(fullPath))
	assert.Equal(t, "photo.jpg", stored)

	data, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestImageStoreSaveReplacesExisting(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	_, first, err := store.Save("photo.jpg", []byte("a"))
	require.NoError(t, err)
	_, second, err := store.Save("photo.jpg", []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), data)
}

func TestImageStoreRejectsEmptyFile(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Save("photo.jpg", nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestImageStoreStripsDirectoryFromName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir)
	require.NoError(t, err)

	_, fullPath, err := store.Save("../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(fullPath))
}

func TestImageStoreRemove(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	_, fullPath, err := store.Save("photo.jpg", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(fullPath))
	_, err = os.Stat(fullPath)
	assert.True(t, os.IsNotExist(err))

	// Removing again is not an error.
	require.NoError(t, store.Remove(fullPath))
}
