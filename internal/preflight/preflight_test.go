package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cleanarr/internal/catalog"
	"cleanarr/internal/services"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryReadable_Empty(t *testing.T) {
	if result := CheckDirectoryReadable("test", ""); result.Passed || result.Detail != "not configured" {
		t.Fatalf("unexpected result %+v", result)
	}
}

type stubSource struct{ err error }

func (stubSource) Collections(context.Context, string) ([]catalog.Collection, error) { return nil, nil }

func (s stubSource) Ping(context.Context) error { return s.err }

func TestRunAll(t *testing.T) {
	assets := t.TempDir()
	media := t.TempDir()

	results := RunAll(context.Background(), Request{
		AssetsDir:   assets,
		MediaDirs:   []string{media, filepath.Join(media, "missing")},
		WriteAssets: true,
		Catalog:     stubSource{},
	})
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %+v", len(results), results)
	}
	if !results[0].Passed || !strings.Contains(results[0].Detail, "read/write ok") {
		t.Fatalf("unexpected asset result %+v", results[0])
	}
	if !results[1].Passed || results[2].Passed {
		t.Fatalf("unexpected media results %+v %+v", results[1], results[2])
	}
	if !results[3].Passed {
		t.Fatalf("expected catalog check to pass, got %+v", results[3])
	}

	err := Failures(results)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "Media directory 2") {
		t.Fatalf("expected failing check name in %v", err)
	}
}

func TestCheckCatalogFailure(t *testing.T) {
	result := CheckCatalog(context.Background(), stubSource{err: errors.New("connection refused")})
	if result.Passed || !strings.Contains(result.Detail, "connection refused") {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestFailuresAllPassed(t *testing.T) {
	if err := Failures([]Result{{Name: "a", Passed: true}}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
