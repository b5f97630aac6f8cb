package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeCatalog()
	c.normalizePlex()
	c.normalizeJellyfin()
	if c.History.Keep <= 0 {
		c.History.Keep = defaultHistoryKeep
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.AssetsDir, err = expandPath(strings.TrimSpace(c.Paths.AssetsDir)); err != nil {
		return fmt.Errorf("paths.assets_dir: %w", err)
	}
	dirs := make([]string, 0, len(c.Paths.MediaDirs))
	for i, dir := range c.Paths.MediaDirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		expanded, err := expandPath(dir)
		if err != nil {
			return fmt.Errorf("paths.media_dirs[%d]: %w", i, err)
		}
		dirs = append(dirs, expanded)
	}
	c.Paths.MediaDirs = dirs
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = defaultLockFile
	}
	if c.Paths.LockFile, err = expandPath(strings.TrimSpace(c.Paths.LockFile)); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryFile) == "" {
		c.Paths.HistoryFile = defaultHistoryFile
	}
	if c.Paths.HistoryFile, err = expandPath(strings.TrimSpace(c.Paths.HistoryFile)); err != nil {
		return fmt.Errorf("paths.history_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	c.Matching.Mode = strings.ToLower(strings.TrimSpace(c.Matching.Mode))
	if c.Matching.Mode == "" {
		c.Matching.Mode = defaultMatchMode
	}
}

func (c *Config) normalizeCatalog() {
	c.Catalog.Provider = strings.ToLower(strings.TrimSpace(c.Catalog.Provider))
	if c.Catalog.Provider == "" {
		c.Catalog.Provider = defaultProvider
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		c.Catalog.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.Catalog.LibraryNames = c.LibraryNames()
}

func (c *Config) normalizePlex() {
	if c.Plex.URL == "" {
		if value, ok := os.LookupEnv("PLEX_URL"); ok {
			c.Plex.URL = value
		}
	}
	if c.Plex.Token == "" {
		if value, ok := os.LookupEnv("PLEX_TOKEN"); ok {
			c.Plex.Token = value
		}
	}
	c.Plex.URL = strings.TrimRight(strings.TrimSpace(c.Plex.URL), "/")
	c.Plex.Token = strings.TrimSpace(c.Plex.Token)
}

func (c *Config) normalizeJellyfin() {
	if c.Jellyfin.URL == "" {
		if value, ok := os.LookupEnv("JELLYFIN_URL"); ok {
			c.Jellyfin.URL = value
		}
	}
	if c.Jellyfin.APIKey == "" {
		if value, ok := os.LookupEnv("JELLYFIN_API_KEY"); ok {
			c.Jellyfin.APIKey = value
		}
	}
	c.Jellyfin.URL = strings.TrimRight(strings.TrimSpace(c.Jellyfin.URL), "/")
	c.Jellyfin.APIKey = strings.TrimSpace(c.Jellyfin.APIKey)
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console", "text", "pretty":
		c.Logging.Format = "console"
	case "json":
		c.Logging.Format = "json"
	default:
		c.Logging.Format = format
	}
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	default:
		c.Logging.Level = level
	}
}
