package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"cleanarr/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The asset directory and two media roots (movies, tv) exist on disk; no
// catalog libraries are configured unless an option adds them.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.AssetsDir = filepath.Join(base, "assets")
	cfgVal.Paths.MediaDirs = []string{filepath.Join(base, "media", "movies"), filepath.Join(base, "media", "tv")}
	cfgVal.Paths.LogDir = ""
	cfgVal.Paths.LockFile = filepath.Join(base, "state", "cleanarr.lock")
	cfgVal.Paths.HistoryFile = filepath.Join(base, "state", "history.db")

	for _, dir := range append([]string{cfgVal.Paths.AssetsDir}, cfgVal.Paths.MediaDirs...) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPlex points the catalog at a Plex server and sets the library names.
func WithPlex(url, token string, libraries ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Provider = "plex"
		b.cfg.Plex = config.Plex{URL: url, Token: token}
		b.cfg.Catalog.LibraryNames = libraries
	}
}

// WithJellyfin points the catalog at a Jellyfin server and sets the library names.
func WithJellyfin(url, apiKey string, libraries ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Provider = "jellyfin"
		b.cfg.Jellyfin = config.Jellyfin{URL: url, APIKey: apiKey}
		b.cfg.Catalog.LibraryNames = libraries
	}
}

// WithAssetFolders switches the asset store to one directory per title.
func WithAssetFolders() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Assets.AssetFolders = true
	}
}

// WithNtfy enables notifications against the given topic URL.
func WithNtfy(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
		b.cfg.Notifications.RequestTimeout = 5
	}
}

// WithDryRun sets the dry_run flag.
func WithDryRun(dryRun bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.DryRun = dryRun
	}
}

// WithIgnoreCollections keeps collection artwork out of the unmatched set.
func WithIgnoreCollections() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.IgnoreCollections = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.AssetsDir)
}

// MoviesDir returns the first media root of a generated config.
func MoviesDir(cfg *config.Config) string {
	return cfg.Paths.MediaDirs[0]
}

// TVDir returns the second media root of a generated config.
func TVDir(cfg *config.Config) string {
	return cfg.Paths.MediaDirs[1]
}
