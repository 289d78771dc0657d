package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileBackendCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "tasklist.json")
	backend, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("new file backend: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := backend.Get(ctx, "todos"); err != nil || ok {
		t.Fatalf("expected empty document, ok=%v err=%v", ok, err)
	}
	if err := backend.Set(ctx, "todos", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := backend.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, _ := NewFileBackend(path)
	if v, ok, err := reopened.Get(ctx, "todos"); err != nil || !ok || v != "[]" {
		t.Fatalf("todos = %q ok=%v err=%v", v, ok, err)
	}
	if v, _, _ := reopened.Get(ctx, "theme"); v != "dark" {
		t.Fatalf("theme = %q", v)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestFileBackendMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	backend, _ := NewFileBackend(path)
	ctx := context.Background()

	if _, _, err := backend.Get(ctx, "todos"); err == nil {
		t.Fatal("expected decode error")
	}
	if err := backend.Set(ctx, "theme", "light"); err != nil {
		t.Fatalf("set should replace malformed document: %v", err)
	}
	if v, ok, err := backend.Get(ctx, "theme"); err != nil || !ok || v != "light" {
		t.Fatalf("theme = %q ok=%v err=%v", v, ok, err)
	}
}

func TestNewFileBackendRequiresPath(t *testing.T) {
	if _, err := NewFileBackend("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
