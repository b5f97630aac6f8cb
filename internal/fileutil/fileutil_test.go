package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestRemoveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "poster.jpg")
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RemoveFile(path); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected file to be gone, got %v", err)
	}
	if err := RemoveFile(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist for missing file, got %v", err)
	}
	if err := RemoveFile(dir); err == nil {
		t.Fatal("expected error when removing a directory")
	}
}

func TestRemoveTree(t *testing.T) {
	dir := t.TempDir()
	tree := filepath.Join(dir, "Heat (1995)")
	if err := os.MkdirAll(filepath.Join(tree, "extra"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tree, "poster.jpg"), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RemoveTree(tree); err != nil {
		t.Fatalf("RemoveTree: %v", err)
	}
	if _, err := os.Stat(tree); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected tree to be gone, got %v", err)
	}
	if err := RemoveTree(tree); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist for missing tree, got %v", err)
	}

	file := filepath.Join(dir, "file.jpg")
	if err := os.WriteFile(file, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RemoveTree(file); err == nil {
		t.Fatal("expected error when removing a file as a tree")
	}
}

func TestJoinWithin(t *testing.T) {
	root := "/srv/assets"
	got, err := JoinWithin(root, "Heat (1995).jpg")
	if err != nil || got != "/srv/assets/Heat (1995).jpg" {
		t.Fatalf("JoinWithin = %q, %v", got, err)
	}
	for _, name := range []string{"..", "../etc", "", "."} {
		if _, err := JoinWithin(root, name); err == nil {
			t.Errorf("expected error for %q", name)
		}
	}
}
