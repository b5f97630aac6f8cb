package config

import (
	"errors"
	"fmt"
	"strings"

	"cleanarr/internal/services"
)

// Validate ensures the configuration is usable. Failures are tagged with
// services.ErrConfiguration. A missing catalog.library_names is not a
// validation failure; callers decide how to treat it via HasLibraries.
func (c *Config) Validate() error {
	checks := []func() error{
		c.validatePaths,
		c.validateMatching,
		c.validateCatalog,
		c.validateNotifications,
		c.validateLogging,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return services.Wrap(services.ErrConfiguration, "config", "validate", "", err)
		}
	}
	return nil
}

// HasLibraries reports whether any catalog library is configured.
func (c *Config) HasLibraries() bool {
	return len(c.LibraryNames()) > 0
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.AssetsDir) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("paths.assets_dir must be set. Edit %s (create with 'cleanarr config init')", defaultPath)
	}
	if len(c.Paths.MediaDirs) == 0 {
		return errors.New("paths.media_dirs must list at least one directory")
	}
	for _, dir := range c.Paths.MediaDirs {
		if dir == c.Paths.AssetsDir {
			return fmt.Errorf("paths.media_dirs must not contain paths.assets_dir (%s)", dir)
		}
	}
	return nil
}

func (c *Config) validateMatching() error {
	switch c.Matching.Mode {
	case matchModeSubstring, matchModeExact:
		return nil
	default:
		return fmt.Errorf("matching.mode must be %q or %q, got %q", matchModeSubstring, matchModeExact, c.Matching.Mode)
	}
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Provider {
	case providerPlex:
		if !c.HasLibraries() {
			return nil
		}
		if c.Plex.URL == "" {
			return errors.New("plex.url must be set (or PLEX_URL) when catalog.library_names is set")
		}
		if c.Plex.Token == "" {
			return errors.New("plex.token must be set (or PLEX_TOKEN) when catalog.library_names is set")
		}
	case providerJellyfin:
		if !c.HasLibraries() {
			return nil
		}
		if c.Jellyfin.URL == "" {
			return errors.New("jellyfin.url must be set (or JELLYFIN_URL) when catalog.library_names is set")
		}
		if c.Jellyfin.APIKey == "" {
			return errors.New("jellyfin.api_key must be set (or JELLYFIN_API_KEY) when catalog.library_names is set")
		}
	default:
		return fmt.Errorf("catalog.provider must be %q or %q, got %q", providerPlex, providerJellyfin, c.Catalog.Provider)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	if !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
		return fmt.Errorf("notifications.ntfy_topic must be an http(s) URL, got %q", topic)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
