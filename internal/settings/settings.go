// Package settings persists the tracker's single preference: the last
// monitored log file.
package settings

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings is the on-disk preference record.
type Settings struct {
	LastLogFile string `toml:"last_log_file"`
}

// DefaultPath returns the conventional settings location,
// e.g. ~/.config/eqwho/settings.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "eqwho", "settings.toml"), nil
}

// Load reads settings from path. A missing or corrupt settings file is
// non-fatal: the zero value is returned and the caller proceeds with no
// file selected.
func Load(path string) Settings {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}
	}

	var s Settings
	if err := toml.Unmarshal(raw, &s); err != nil {
		return Settings{}
	}
	return s
}

// Save writes settings to path atomically (temp file, then rename),
// creating the parent directory if needed.
func Save(path string, s Settings) error {
	raw, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
