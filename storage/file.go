package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// File is a key-value store kept in a single JSON document on a filesystem. The whole document is
// rewritten on every update.
type File struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

// NewFile returns a key-value store backed by the JSON document at path.
func NewFile(fs afero.Fs, path string) *File {
	return &File{fs: fs, path: path}
}

// readAll reads the entire document. A missing document is treated as an empty one.
func (f *File) readAll() (map[string]string, error) {
	wrapMsg := fmt.Sprintf("unable to read %s", f.path)

	data, err := afero.ReadFile(f.fs, f.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err = json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	return values, nil
}

// Get returns the value stored under the given key.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readAll()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set stores a value under the given key. The updated document is written to a temporary file which
// then replaces the original.
func (f *File) Set(_ context.Context, key, value string) error {
	wrapMsg := fmt.Sprintf("unable to write %s", f.path)

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readAll()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	values[key] = value

	// Serialize the document.
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	// Make sure the parent directory exists.
	if err = f.fs.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	// Write the temporary file and move it into place.
	tmpPath := f.path + ".tmp"
	if err = afero.WriteFile(f.fs, tmpPath, data, 0644); err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	if err = f.fs.Rename(tmpPath, f.path); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	return nil
}

// Close is a no-op for file stores.
func (f *File) Close() error {
	return nil
}
