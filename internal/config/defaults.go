package config

const (
	defaultLogDir         = "~/.local/share/cleanarr/logs"
	defaultLockFile       = "~/.local/share/cleanarr/cleanarr.lock"
	defaultHistoryFile    = "~/.local/share/cleanarr/history.db"
	defaultHistoryKeep    = 100
	defaultProvider       = providerPlex
	defaultMatchMode      = matchModeSubstring
	defaultTimeoutSeconds = 30
	defaultNtfyTimeout    = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults. Asset and media
// locations have no sensible default and must come from the config file.
func Default() Config {
	return Config{
		DryRun: false,
		Paths: Paths{
			LogDir:      defaultLogDir,
			LockFile:    defaultLockFile,
			HistoryFile: defaultHistoryFile,
		},
		Matching: Matching{
			Mode: defaultMatchMode,
		},
		Catalog: Catalog{
			Provider:       defaultProvider,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		History: History{
			Keep: defaultHistoryKeep,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
