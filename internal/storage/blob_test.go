package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openBackends(t *testing.T) map[string]BlobStore {
	t.Helper()
	dir := t.TempDir()

	files, err := NewFileBlobStore(filepath.Join(dir, "blobs"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	db, err := OpenSQLite(t.Context(), filepath.Join(dir, "taskcal-test.db"))
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return map[string]BlobStore{"file": files, "sqlite": db}
}

func TestBlobStoresGetPut(t *testing.T) {
	for name, blobs := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			if _, err := blobs.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := blobs.Put(ctx, "tasks", []byte(`[1]`)); err != nil {
				t.Fatalf("put: %v", err)
			}
			if err := blobs.Put(ctx, "tasks", []byte(`[1,2]`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := blobs.Get(ctx, "tasks")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != `[1,2]` {
				t.Fatalf("unexpected value %q", got)
			}
		})
	}
}

func TestFileBlobStoreLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	blobs, err := NewFileBlobStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := blobs.Put(t.Context(), "tasks", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.json")); err != nil {
		t.Fatalf("expected payload file: %v", err)
	}
}

func TestFileBlobStoreRejectsPathKeys(t *testing.T) {
	blobs, err := NewFileBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		if err := blobs.Put(t.Context(), key, []byte(`[]`)); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestSQLiteBlobStoreTracksUpdatedAt(t *testing.T) {
	blobs, err := OpenSQLite(t.Context(), filepath.Join(t.TempDir(), "updated.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer blobs.Close()

	fixed := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	blobs.now = func() time.Time { return fixed }
	if err := blobs.Put(t.Context(), "tasks", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := blobs.UpdatedAt(t.Context(), "tasks")
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !got.Equal(fixed) {
		t.Fatalf("expected %s, got %s", fixed, got)
	}
	if _, err := blobs.UpdatedAt(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
