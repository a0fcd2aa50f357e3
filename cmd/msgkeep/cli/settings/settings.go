// Package settings provides configuration loading for msgkeep.
// This package is separate from cli so the preserve and store packages can
// import it without creating an import cycle (cli imports both).
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/msgkeep/cli/cmd/msgkeep/cli/paths"
)

// DefaultCommentChar is the marker git prefixes its guidance lines with.
// Matches git's core.commentChar default.
const DefaultCommentChar = "#"

// SettingsFile is the path to the msgkeep settings file, relative to the
// repository root.
const SettingsFile = ".msgkeep/settings.json"

// Settings represents the .msgkeep/settings.json configuration.
type Settings struct {
	// CommentChar is the comment marker stripped from commit messages.
	// Should match the repository's core.commentChar. Defaults to "#".
	CommentChar string `json:"comment_char,omitempty"`

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	// Can be overridden by the MSGKEEP_LOG_LEVEL environment variable.
	// Defaults to "info".
	LogLevel string `json:"log_level,omitempty"`

	// RedactSecrets controls whether preserved messages are scanned for
	// secrets before they are written to the shared cache. Defaults to true.
	RedactSecrets *bool `json:"redact_secrets,omitempty"`
}

// Load loads settings from .msgkeep/settings.json at the repository root.
// Returns default settings if the file does not exist or we are not inside
// a repository. Works correctly from any subdirectory within the repository.
func Load() (*Settings, error) {
	settingsFileAbs, err := paths.AbsPath(SettingsFile)
	if err != nil {
		settingsFileAbs = SettingsFile // Fallback to relative
	}
	return loadFromFile(settingsFileAbs)
}

// loadFromFile loads settings from a specific file path.
// Returns default settings if the file doesn't exist.
func loadFromFile(filePath string) (*Settings, error) {
	settings := &Settings{}

	data, err := os.ReadFile(filePath) //nolint:gosec // path is from AbsPath or constant
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(settings)
			return settings, nil
		}
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	applyDefaults(settings)

	return settings, nil
}

// Default returns settings with all defaults applied.
func Default() *Settings {
	s := &Settings{}
	applyDefaults(s)
	return s
}

// applyDefaults fills in zero values with defaults.
func applyDefaults(s *Settings) {
	if s.CommentChar == "" {
		s.CommentChar = DefaultCommentChar
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.RedactSecrets == nil {
		enabled := true
		s.RedactSecrets = &enabled
	}
}

// RedactionEnabled reports whether secret redaction is enabled.
func (s *Settings) RedactionEnabled() bool {
	return s.RedactSecrets == nil || *s.RedactSecrets
}
