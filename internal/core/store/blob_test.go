package store

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestFileBlobStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	blob, err := NewFileBlobStore(dir)
	if err != nil {
		t.Fatalf("NewFileBlobStore() error = %v", err)
	}
	defer func() { _ = blob.Close() }()

	if data, err := blob.Get("missing"); err != nil || data != nil {
		t.Errorf("Get(missing) = (%v, %v), want (nil, nil)", data, err)
	}

	payload := []byte(`{"version":1}`)
	if err := blob.Set(SessionsKey, payload); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := blob.Get(SessionsKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get() = %q, want %q", got, payload)
	}
}

func TestFileBlobStoreOverwrite(t *testing.T) {
	blob, err := NewFileBlobStore(filepath.Join(t.TempDir(), "nested"))
	if err != nil {
		t.Fatalf("NewFileBlobStore() error = %v", err)
	}

	_ = blob.Set("k", []byte("one"))
	_ = blob.Set("k", []byte("two"))

	got, err := blob.Get("k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "two" {
		t.Errorf("Get() = %q, want %q", got, "two")
	}
}

func TestSQLiteBlobStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	blob, err := NewSQLiteBlobStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteBlobStore() error = %v", err)
	}
	defer func() { _ = blob.Close() }()

	if data, err := blob.Get("missing"); err != nil || data != nil {
		t.Errorf("Get(missing) = (%v, %v), want (nil, nil)", data, err)
	}

	if err := blob.Set(SessionsKey, []byte("one")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := blob.Set(SessionsKey, []byte("two")); err != nil {
		t.Fatalf("Set() upsert error = %v", err)
	}

	got, err := blob.Get(SessionsKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "two" {
		t.Errorf("Get() = %q, want %q", got, "two")
	}
}
