package reconcile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"

	"cleanarr/internal/assetscan"
	"cleanarr/internal/catalog"
	"cleanarr/internal/inventory"
	"cleanarr/internal/match"
	"cleanarr/internal/services"
)

type fakeCatalog struct {
	pingErr     error
	collections map[string][]catalog.Collection
	calls       int
}

func (f *fakeCatalog) Ping(context.Context) error { return f.pingErr }

func (f *fakeCatalog) Collections(_ context.Context, library string) ([]catalog.Collection, error) {
	f.calls++
	collections, ok := f.collections[library]
	if !ok {
		return nil, services.Wrap(services.ErrLibraryNotFound, "fake", "collections", library, nil)
	}
	return collections, nil
}

type fixture struct {
	assets string
	movies string
	tv     string
	lock   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		assets: filepath.Join(root, "assets"),
		movies: filepath.Join(root, "movies"),
		tv:     filepath.Join(root, "tv"),
		lock:   filepath.Join(root, "state", "cleanarr.lock"),
	}
	for _, name := range []string{
		"Heat (1995).jpg",
		"Alien (1979).jpg",
		"Lost (2004).jpg",
		"Lost (2004)_Season01.jpg",
		"Dark (2017).jpg",
		"Dark (2017)_Season01.jpg",
		"Marvel.jpg",
		"Best Of2020.jpg",
		"Old Collection.jpg",
	} {
		path := filepath.Join(f.assets, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	for _, dir := range []string{
		filepath.Join(f.movies, "Heat (1995)"),
		filepath.Join(f.tv, "Lost (2004)", "Season 01"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func (f fixture) options(dryRun bool) Options {
	return Options{
		AssetsDir: f.assets,
		Layout:    assetscan.Flat,
		MediaDirs: []string{f.movies, f.tv},
		Libraries: []string{"Movies"},
		Match:     match.Options{Mode: match.Substring},
		DryRun:    dryRun,
		LockFile:  f.lock,
	}
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{collections: map[string][]catalog.Collection{
		"Movies": {
			{Title: "Marvel"},
			{Title: "Best: Of/2020"},
			{Title: "Recently Added", Smart: true},
		},
	}}
}

func unmatchedTitles(assets inventory.Assets) []string {
	var titles []string
	for _, entry := range assets.All() {
		titles = append(titles, entry.Kind.String()+":"+entry.Title)
	}
	return titles
}

func listAssets(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestRunDryRunIsIdempotent(t *testing.T) {
	f := newFixture(t)
	before := listAssets(t, f.assets)

	first, err := Run(context.Background(), f.options(true), newCatalog())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := Run(context.Background(), f.options(true), newCatalog())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"movie:Alien (1979)", "series:Dark (2017)", "collection:Old Collection"}
	if diff := cmp.Diff(want, unmatchedTitles(first.Unmatched)); diff != "" {
		t.Fatalf("unmatched (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first.Report.Messages(), second.Report.Messages()); diff != "" {
		t.Fatalf("dry runs differ (-first +second):\n%s", diff)
	}
	if first.Report.Count() != 3 || !first.Report.DryRun {
		t.Fatalf("unexpected report %+v", first.Report)
	}
	if diff := cmp.Diff(before, listAssets(t, f.assets)); diff != "" {
		t.Fatalf("dry run mutated the asset store (-before +after):\n%s", diff)
	}
	if first.RunID == "" || first.RunID == second.RunID {
		t.Fatalf("expected distinct run ids, got %q and %q", first.RunID, second.RunID)
	}
}

func TestRunRemovesAndConverges(t *testing.T) {
	f := newFixture(t)

	result, err := Run(context.Background(), f.options(false), newCatalog())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Report.Count() != 3 {
		t.Fatalf("expected 3 removals, got %d", result.Report.Count())
	}
	if diff := cmp.Diff([]inventory.CatalogEntry{{Title: "Marvel"}, {Title: "Best Of2020"}}, result.Catalog); diff != "" {
		t.Fatalf("catalog (-want +got):\n%s", diff)
	}
	want := []string{
		"Best Of2020.jpg",
		"Heat (1995).jpg",
		"Lost (2004).jpg",
		"Lost (2004)_Season01.jpg",
		"Marvel.jpg",
	}
	if diff := cmp.Diff(want, listAssets(t, f.assets)); diff != "" {
		t.Fatalf("remaining assets (-want +got):\n%s", diff)
	}

	again, err := Run(context.Background(), f.options(false), newCatalog())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if again.Unmatched.Len() != 0 || again.Report.Count() != 0 {
		t.Fatalf("expected convergence, got %+v", again.Unmatched)
	}
}

func TestRunWithoutLibrariesIsSkipped(t *testing.T) {
	f := newFixture(t)
	opts := f.options(false)
	opts.Libraries = []string{" "}

	result, err := Run(context.Background(), opts, nil)
	if !errors.Is(err, services.ErrConfigurationIncomplete) {
		t.Fatalf("expected ErrConfigurationIncomplete, got %v", err)
	}
	if services.IsFatal(err) {
		t.Fatal("incomplete configuration must not be fatal")
	}
	if result.Assets.Len() != 0 {
		t.Fatal("expected no scan to happen")
	}
	if len(listAssets(t, f.assets)) != 9 {
		t.Fatal("skipped run must not remove anything")
	}
}

func TestRunWithoutLibrariesIgnoringCollections(t *testing.T) {
	f := newFixture(t)
	opts := f.options(true)
	opts.Libraries = nil
	opts.Match.IgnoreCollections = true

	result, err := Run(context.Background(), opts, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"movie:Alien (1979)", "series:Dark (2017)"}
	if diff := cmp.Diff(want, unmatchedTitles(result.Unmatched)); diff != "" {
		t.Fatalf("unmatched (-want +got):\n%s", diff)
	}
}

func TestRunKeepsDashedSeasonArtworkForExistingSeries(t *testing.T) {
	root := t.TempDir()
	assets := filepath.Join(root, "assets")
	tv := filepath.Join(root, "tv")
	if err := os.MkdirAll(filepath.Join(tv, "Show (2020)", "Season 01"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(assets, 0o755); err != nil {
		t.Fatal(err)
	}
	season := filepath.Join(assets, "Show (2020) - Season 1.jpg")
	stale := filepath.Join(assets, "Gone (2019) - Season 2.jpg")
	for _, path := range []string{season, stale} {
		if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	opts := Options{
		AssetsDir: assets,
		Layout:    assetscan.Flat,
		MediaDirs: []string{tv},
		Match:     match.Options{Mode: match.Substring, IgnoreCollections: true},
		LockFile:  filepath.Join(root, "state", "cleanarr.lock"),
	}
	result, err := Run(context.Background(), opts, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{"series:Gone (2019)"}, unmatchedTitles(result.Unmatched)); diff != "" {
		t.Fatalf("unmatched (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(season); err != nil {
		t.Fatalf("season artwork for an existing series was removed: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected stale season artwork to be removed, got %v", err)
	}
}

func TestRunCatalogUnreachableAbortsBeforeScan(t *testing.T) {
	f := newFixture(t)
	src := newCatalog()
	src.pingErr = errors.New("dial tcp: connection refused")

	result, err := Run(context.Background(), f.options(false), src)
	if !errors.Is(err, services.ErrCatalogUnreachable) {
		t.Fatalf("expected ErrCatalogUnreachable, got %v", err)
	}
	if src.calls != 0 {
		t.Fatalf("expected no collection queries, got %d", src.calls)
	}
	if result.Assets.Len() != 0 || len(result.Media.Movies) != 0 {
		t.Fatalf("expected scanning to be skipped, got %+v", result)
	}
	if len(listAssets(t, f.assets)) != 9 {
		t.Fatal("aborted run must not remove anything")
	}
}

func TestRunLibraryNotFound(t *testing.T) {
	f := newFixture(t)
	opts := f.options(false)
	opts.Libraries = []string{"Movies", "Anime"}

	_, err := Run(context.Background(), opts, newCatalog())
	if !errors.Is(err, services.ErrLibraryNotFound) {
		t.Fatalf("expected ErrLibraryNotFound, got %v", err)
	}
	if len(listAssets(t, f.assets)) != 9 {
		t.Fatal("failed run must not remove anything")
	}
}

func TestRunRejectsConcurrentPass(t *testing.T) {
	f := newFixture(t)
	if err := os.MkdirAll(filepath.Dir(f.lock), 0o755); err != nil {
		t.Fatal(err)
	}
	held := flock.New(f.lock)
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	if _, err := Run(context.Background(), f.options(true), newCatalog()); !errors.Is(err, services.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestRunPreflightFailure(t *testing.T) {
	f := newFixture(t)
	opts := f.options(true)
	opts.MediaDirs = append(opts.MediaDirs, filepath.Join(f.tv, "missing"))

	if _, err := Run(context.Background(), opts, newCatalog()); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name   string
		mutate func(*Options)
		src    catalog.Source
		want   error
	}{
		{"missing assets dir", func(o *Options) { o.AssetsDir = "" }, newCatalog(), services.ErrValidation},
		{"missing media dirs", func(o *Options) { o.MediaDirs = []string{""} }, newCatalog(), services.ErrValidation},
		{"libraries without source", func(o *Options) {}, nil, services.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := f.options(true)
			tt.mutate(&opts)
			if err := validate(opts, trimmed(opts.Libraries), tt.src); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
