// Package paths resolves per-user file locations.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = "aurora"

// ConfigDir returns the base directory for user configuration. Priority:
// 1) XDG_CONFIG_HOME (if set and absolute)
// 2) $HOME/.config
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" && filepath.IsAbs(dir) {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}

// ConfigFile returns the path of the aurora config file.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, "config.yaml"), nil
}
