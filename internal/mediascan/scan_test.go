package mediascan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cleanarr/internal/inventory"
	"cleanarr/internal/logging"
	"cleanarr/internal/mediascan"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
}

func TestScanClassifiesMoviesAndSeries(t *testing.T) {
	movies := t.TempDir()
	tv := t.TempDir()
	mkdirs(t, movies, "Heat (1995)", "Alien (1979)")
	mkdirs(t, tv,
		filepath.Join("Lost (2004)", "Season 01"),
		filepath.Join("Lost (2004)", "Season 02"),
		filepath.Join("Lost (2004)", "Specials"),
		filepath.Join("Dark (2017)", "Season 1"),
	)
	if err := os.WriteFile(filepath.Join(movies, "Heat (1995)", "Heat.mkv"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	media, err := mediascan.Scan([]string{movies, tv}, logging.NewNop())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := inventory.Media{
		Movies: []inventory.MovieEntry{{Title: "Alien (1979)"}, {Title: "Heat (1995)"}},
		Series: []inventory.SeriesEntry{
			{Title: "Dark (2017)", Seasons: []string{"Season 1"}},
			{Title: "Lost (2004)", Seasons: []string{"Season 01", "Season 02", "Specials"}},
		},
	}
	if diff := cmp.Diff(want, media); diff != "" {
		t.Fatalf("media mismatch (-want +got):\n%s", diff)
	}
}

func TestScanEmptyDirectoryIsMovie(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "Empty (2000)")

	media, err := mediascan.Scan([]string{root}, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(media.Movies) != 1 || media.Movies[0].Title != "Empty (2000)" {
		t.Fatalf("expected movie entry, got %+v", media)
	}
	if len(media.Series) != 0 {
		t.Fatalf("expected no series, got %+v", media.Series)
	}
}

func TestScanIgnoresNonSeasonFolders(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, filepath.Join("Heat (1995)", "Featurettes"))

	media, err := mediascan.Scan([]string{root}, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(media.Movies) != 0 || len(media.Series) != 0 {
		t.Fatalf("expected folder with only extras to be ignored, got %+v", media)
	}
}

func TestScanMergesSeasonsAcrossRoots(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	mkdirs(t, first, filepath.Join("Lost (2004)", "Season 1"))
	mkdirs(t, second, filepath.Join("Lost (2004)", "Season 2"), filepath.Join("Lost (2004)", "Season 1"))

	media, err := mediascan.Scan([]string{first, second}, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []inventory.SeriesEntry{{Title: "Lost (2004)", Seasons: []string{"Season 1", "Season 2"}}}
	if diff := cmp.Diff(want, media.Series); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestScanJoinsTitleContainedInExistingSeries(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	mkdirs(t, first, filepath.Join("The Office (US) (2005)", "Season 1"))
	mkdirs(t, second, filepath.Join("The Office", "Season 2"))

	media, err := mediascan.Scan([]string{first, second}, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []inventory.SeriesEntry{{Title: "The Office (US) (2005)", Seasons: []string{"Season 1", "Season 2"}}}
	if diff := cmp.Diff(want, media.Series); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := mediascan.Scan([]string{filepath.Join(t.TempDir(), "missing")}, nil); err == nil {
		t.Fatal("expected error for missing media root")
	}
}
