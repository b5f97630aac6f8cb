package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	defaultConfigPath  = "~/.config/cleanarr/config.toml"
	projectConfigName  = "cleanarr.toml"
	logFileName        = "cleanarr.log"
	providerPlex       = "plex"
	providerJellyfin   = "jellyfin"
	matchModeSubstring = "substring"
	matchModeExact     = "exact"
)

// Paths contains the filesystem locations cleanarr reads and writes.
type Paths struct {
	AssetsDir   string   `toml:"assets_dir"`
	MediaDirs   []string `toml:"media_dirs"`
	LogDir      string   `toml:"log_dir"`
	LockFile    string   `toml:"lock_file"`
	HistoryFile string   `toml:"history_file"`
}

// Assets describes how artwork is laid out below Paths.AssetsDir.
type Assets struct {
	// AssetFolders selects one directory per title instead of flat files.
	AssetFolders bool `toml:"asset_folders"`
}

// Matching tunes how asset titles are compared with reference titles.
type Matching struct {
	Mode              string `toml:"mode"`
	IgnoreCollections bool   `toml:"ignore_collections"`
}

// Catalog selects the remote media server and the libraries to query.
type Catalog struct {
	Provider       string   `toml:"provider"`
	LibraryNames   []string `toml:"library_names"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Plex contains connection settings for a Plex Media Server.
type Plex struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// Jellyfin contains connection settings for a Jellyfin server.
type Jellyfin struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
}

// History controls the run history database.
type History struct {
	// Keep is the number of runs retained; older runs are pruned after each run.
	Keep int `toml:"keep"`
}

// Notifications configures ntfy delivery of run outcomes.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for cleanarr.
//
// Configuration sections:
//   - Paths: asset store, media roots, log directory, lock and history files
//   - Assets: flat files or per-title folders
//   - Matching: substring or exact comparison, collection handling
//   - Catalog: provider selection and library names
//   - Plex / Jellyfin: server credentials
//   - History: run history retention
//   - Notifications: optional ntfy topic for run summaries
//   - Logging: log format and level
type Config struct {
	DryRun        bool          `toml:"dry_run"`
	Paths         Paths         `toml:"paths"`
	Assets        Assets        `toml:"assets"`
	Matching      Matching      `toml:"matching"`
	Catalog       Catalog       `toml:"catalog"`
	Plex          Plex          `toml:"plex"`
	Jellyfin      Jellyfin      `toml:"jellyfin"`
	History       History       `toml:"history"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// LogFile returns the path of the log file inside Paths.LogDir, or "" when
// file logging is disabled.
func (c *Config) LogFile() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, logFileName)
}

// LibraryNames returns the configured library names with blanks removed.
func (c *Config) LibraryNames() []string {
	names := make([]string, 0, len(c.Catalog.LibraryNames))
	for _, name := range c.Catalog.LibraryNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
