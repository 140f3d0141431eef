package config

import (
	"os"
	"path/filepath"
)

// defaultExtensions returns the file extensions loaded as scripts.
func defaultExtensions() []string {
	return []string{".js", ".mjs", ".cjs"}
}

// defaultSkipDirs returns directory names never descended into.
// Hidden directories are skipped separately by discovery.
func defaultSkipDirs() []string {
	return []string{"node_modules"}
}

// localConfigPath is the per-project configuration file.
const localConfigPath = "./.querly.yaml"

// defaultConfigPath returns the default configuration file path.
//
// Returns: ~/.config/querly/config.yaml.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}

	return filepath.Join(homeDir, ".config", "querly", "config.yaml")
}
