// Package fs provides file-based storage for recipe datasets and cached
// images.
package fs

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/larder"
)

// ReadCollection reads and validates the recipe dataset at path.
// A missing file returns ENOTFOUND; a malformed dataset returns the
// *larder.ValidationError from larder.ParseCollection.
func ReadCollection(path string) (*larder.Collection, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, larder.Errorf(larder.ENOTFOUND, "recipes file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	return larder.ParseCollection(data)
}

// WriteCollection writes c to path as indented JSON. The file is replaced
// atomically, so readers never observe a partial dataset.
func WriteCollection(path string, c *larder.Collection) error {
	data, err := larder.EncodeCollection(c)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
