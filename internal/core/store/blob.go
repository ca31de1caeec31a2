package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// SessionsKey is the blob key under which the session collection persists.
const SessionsKey = "biodish_sessions"

// BlobStore is a flat get/set byte store. Get returns (nil, nil) when the
// key has never been written.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	Close() error
}

// FileBlobStore keeps one file per key inside a directory. Writes go
// through a temp file and rename so a crash never leaves a torn blob.
type FileBlobStore struct {
	dir string
}

// NewFileBlobStore creates the directory if needed.
func NewFileBlobStore(dir string) (*FileBlobStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &FileBlobStore{dir: dir}, nil
}

func (f *FileBlobStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements BlobStore
func (f *FileBlobStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return data, nil
}

// Set implements BlobStore
func (f *FileBlobStore) Set(key string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp blob: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace blob %q: %w", key, err)
	}
	return nil
}

// Close implements BlobStore
func (f *FileBlobStore) Close() error { return nil }
