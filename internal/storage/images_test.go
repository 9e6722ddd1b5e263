package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewImageStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	_, err := NewImageStore(dir)
	assert.NoError(t, err)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestImageStore_Save(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	assert.NoError(t, err)

	data := []byte("not necessarily a real image")
	path, err := store.Save(42, data)
	assert.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "42_")

	stored, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestImageStore_Save_DistinctNames(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	assert.NoError(t, err)

	p1, err := store.Save(1, []byte("a"))
	assert.NoError(t, err)
	p2, err := store.Save(1, []byte("b"))
	assert.NoError(t, err)

	assert.NotEqual(t, p1, p2)
}

func TestImageStore_Save_MissingDirectory(t *testing.T) {
	store := &ImageStore{dir: filepath.Join(t.TempDir(), "nope", "missing")}

	_, err := store.Save(1, []byte("a"))
	assert.Error(t, err)
}
