package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/larder/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*fs.ImageStore, string) {
	t.Helper()
	public := filepath.Join(t.TempDir(), "public")
	return fs.NewImageStore(filepath.Join(public, "images", "recipes"), public), public
}

func TestImageStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes slug and extension", func(t *testing.T) {
		t.Parallel()

		store, public := newStore(t)

		path, written, err := store.Save("soup", ".png", []byte("png bytes"))

		require.NoError(t, err)
		assert.True(t, written)
		assert.Equal(t, filepath.Join(public, "images", "recipes", "soup.png"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "png bytes", string(data))
	})

	t.Run("leaves identical content untouched", func(t *testing.T) {
		t.Parallel()

		store, _ := newStore(t)
		path, _, err := store.Save("soup", ".png", []byte("png bytes"))
		require.NoError(t, err)
		old := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(path, old, old))

		_, written, err := store.Save("soup", ".png", []byte("png bytes"))

		require.NoError(t, err)
		assert.False(t, written)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.WithinDuration(t, old, info.ModTime(), time.Second)
	})

	t.Run("overwrites changed content and keeps other extensions", func(t *testing.T) {
		t.Parallel()

		store, _ := newStore(t)
		_, _, err := store.Save("soup", ".jpg", []byte("old jpg"))
		require.NoError(t, err)
		_, _, err = store.Save("soup", ".png", []byte("old png"))
		require.NoError(t, err)

		path, written, err := store.Save("soup", ".png", []byte("new png"))

		require.NoError(t, err)
		assert.True(t, written)
		data, _ := os.ReadFile(path)
		assert.Equal(t, "new png", string(data))
		assert.FileExists(t, store.Path("soup", ".jpg"))
	})
}

func TestImageStore_Find(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	_, _, err := store.Save("bread", ".webp", []byte("webp"))
	require.NoError(t, err)

	path, ok := store.Find("bread")
	assert.True(t, ok)
	assert.Equal(t, store.Path("bread", ".webp"), path)

	_, ok = store.Find("cake")
	assert.False(t, ok)
}

func TestImageStore_PublicPath(t *testing.T) {
	t.Parallel()

	t.Run("maps paths below the public directory", func(t *testing.T) {
		t.Parallel()

		store, _ := newStore(t)

		assert.Equal(t, "/images/recipes/soup.png", store.PublicPath(store.Path("soup", ".png")))
	})

	t.Run("rejects paths outside the public directory", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		store := fs.NewImageStore(filepath.Join(root, "cache"), filepath.Join(root, "public"))

		assert.Empty(t, store.PublicPath(store.Path("soup", ".png")))
	})
}

func TestImageStore_LocalPath(t *testing.T) {
	t.Parallel()

	store, public := newStore(t)

	assert.Equal(t, filepath.Join(public, "images", "recipes", "soup.png"), store.LocalPath("/images/recipes/soup.png"))
	assert.Equal(t, filepath.Join(public, "x.png"), store.LocalPath("/../x.png"))
	assert.Empty(t, store.LocalPath("https://example.com/soup.png"))
	assert.Empty(t, store.LocalPath("//cdn.example.com/soup.png"))
	assert.Empty(t, store.LocalPath("/"))
}
