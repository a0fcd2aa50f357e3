package cli

import (
	"github.com/msgkeep/cli/cmd/msgkeep/cli/paths"
	"github.com/msgkeep/cli/cmd/msgkeep/cli/settings"
	"github.com/msgkeep/cli/cmd/msgkeep/cli/store"
)

// loadSettings loads the repository settings, falling back to defaults when
// the settings file is unreadable. Hooks should never fail over config.
func loadSettings() *settings.Settings {
	s, err := settings.Load()
	if err != nil {
		return settings.Default()
	}
	return s
}

// GetLogLevel returns the configured log level for the logging package.
func GetLogLevel() string {
	return loadSettings().LogLevel
}

// openStore ensures the cache directory exists and returns the message
// store backed by the shared database.
func openStore() (*store.Store, error) {
	if _, err := paths.EnsureDataDir(); err != nil {
		return nil, err
	}
	return store.New(paths.DBPath()), nil
}
