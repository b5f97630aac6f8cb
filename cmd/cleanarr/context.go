package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"cleanarr/internal/assetscan"
	"cleanarr/internal/catalog"
	"cleanarr/internal/config"
	"cleanarr/internal/logging"
	"cleanarr/internal/match"
	"cleanarr/internal/reconcile"
	"cleanarr/internal/services"
	"cleanarr/internal/services/jellyfin"
	"cleanarr/internal/services/plex"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			cfg.Logging.Level = "debug"
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	color := cfg.Logging.Format == "console" && shouldColorize(os.Stdout)
	return logging.NewFromConfig(cfg, color)
}

// newCatalogSource builds the configured media server client. It returns nil
// when no libraries are configured.
func newCatalogSource(cfg *config.Config) (catalog.Source, error) {
	if !cfg.HasLibraries() {
		return nil, nil
	}
	client := &http.Client{Timeout: time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second}
	switch cfg.Catalog.Provider {
	case "plex":
		return plex.NewCatalogClient(cfg.Plex.URL, cfg.Plex.Token, client), nil
	case "jellyfin":
		return jellyfin.NewCatalogClient(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, client), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "cli", "catalog", fmt.Sprintf("unknown provider %q", cfg.Catalog.Provider), nil)
	}
}

func reconcileOptions(cfg *config.Config, dryRun bool, logger *slog.Logger) (reconcile.Options, error) {
	mode, err := match.ParseMode(cfg.Matching.Mode)
	if err != nil {
		return reconcile.Options{}, services.Wrap(services.ErrConfiguration, "cli", "matching", "", err)
	}
	return reconcile.Options{
		AssetsDir: cfg.Paths.AssetsDir,
		Layout:    assetscan.LayoutFor(cfg.Assets.AssetFolders),
		MediaDirs: append([]string(nil), cfg.Paths.MediaDirs...),
		Libraries: cfg.LibraryNames(),
		Match: match.Options{
			Mode:              mode,
			IgnoreCollections: cfg.Matching.IgnoreCollections,
		},
		DryRun:         dryRun,
		LockFile:       cfg.Paths.LockFile,
		CatalogTimeout: time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second,
		Logger:         logger,
	}, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
