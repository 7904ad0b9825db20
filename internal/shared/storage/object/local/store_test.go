package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"resume-matcher/internal/shared/storage/object"
)

func TestStoreOpen(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "resumes"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "resumes", "cv.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := New(dir)
	rc, err := store.Open(context.Background(), "resumes/cv.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected body: %q", data)
	}
}

func TestStoreOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../secret", "/etc/passwd"} {
		if _, err := store.Open(context.Background(), key); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestStoreOpenMissing(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "nope.pdf")
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected object.ErrNotFound, got %v", err)
	}
}
