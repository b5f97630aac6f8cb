// Package fileutil holds strict filesystem helpers for the asset store.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a joined path would escape its root.
var ErrOutsideRoot = errors.New("path escapes root")

// JoinWithin joins name onto root and refuses results outside root.
func JoinWithin(root, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("join %q: empty name", root)
	}
	root = filepath.Clean(root)
	joined := filepath.Join(root, name)
	rel, err := filepath.Rel(root, joined)
	if err != nil {
		return "", fmt.Errorf("join %q: %w", name, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("join %q onto %q: %w", name, root, ErrOutsideRoot)
	}
	return joined, nil
}

// RemoveFile deletes a single non-directory entry. Unlike os.Remove it
// refuses directories, and a missing path is an error.
func RemoveFile(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("remove %s: is a directory", path)
	}
	return os.Remove(path)
}

// RemoveTree deletes a directory and everything below it. os.RemoveAll
// treats a missing path as success; RemoveTree reports it.
func RemoveTree(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("remove %s: not a directory", path)
	}
	return os.RemoveAll(path)
}
