// Package config provides configuration management for querly.
//
// Configuration is loaded from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Configuration file
// 4. Default values (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("paths: %v\n", cfg.Paths)
package config

import (
	"time"
)

// Color modes accepted by DisplayConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultHistorySize is the maximum number of history entries kept by default.
const DefaultHistorySize = 1_000_000

// DefaultHistoryFile is the history file name, relative to the working directory.
const DefaultHistoryFile = ".querly_history"

// Config represents the complete application configuration.
//
// Invariants:
// - Paths must have at least one entry
// - History.Size must be > 0
// - Display.Color must be auto, always, or never
// - Watch.Debounce must be > 0
// - Scripts.Extensions must have at least one entry.
type Config struct {
	// Source paths to load scripts from
	Paths []string `yaml:"paths"`

	// History settings
	History HistoryConfig `yaml:"history"`

	// Display settings
	Display DisplayConfig `yaml:"display"`

	// Script discovery settings
	Scripts ScriptsConfig `yaml:"scripts"`

	// Source watcher settings
	Watch WatchConfig `yaml:"watch"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// HistoryConfig contains command history settings.
type HistoryConfig struct {
	// Disable history persistence entirely
	Disabled bool `yaml:"disabled"`

	// Path to the history file
	File string `yaml:"file"`

	// Maximum number of entries kept
	Size int `yaml:"size"`
}

// Enabled reports whether history should be loaded and persisted.
func (h HistoryConfig) Enabled() bool {
	return !h.Disabled && h.File != ""
}

// DisplayConfig contains display-related settings.
type DisplayConfig struct {
	// Color mode (auto, always, never)
	Color string `yaml:"color"`
}

// ScriptsConfig contains script discovery settings.
type ScriptsConfig struct {
	// File extensions treated as scripts when walking directories
	Extensions []string `yaml:"extensions"`

	// Directory names skipped while walking
	SkipDirs []string `yaml:"skip_dirs"`
}

// WatchConfig contains source watcher settings.
type WatchConfig struct {
	// Enable the source watcher
	Enabled bool `yaml:"enabled"`

	// Quiet period before a change is reported
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// Validate checks if the configuration satisfies all invariants.
//
// Thread-safety: This method is read-only and thread-safe.
func (c *Config) Validate() error {
	if len(c.Paths) == 0 {
		return ErrNoPaths
	}

	if c.History.Size <= 0 {
		return ErrInvalidHistorySize
	}

	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return ErrInvalidColorMode
	}

	if len(c.Scripts.Extensions) == 0 {
		return ErrNoExtensions
	}

	if c.Watch.Debounce <= 0 {
		return ErrInvalidDebounce
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validFormats[c.Logging.Format] {
		return ErrInvalidLogFormat
	}

	return nil
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Paths: []string{"."},
		History: HistoryConfig{
			File: DefaultHistoryFile,
			Size: DefaultHistorySize,
		},
		Display: DisplayConfig{
			Color: ColorAuto,
		},
		Scripts: ScriptsConfig{
			Extensions: defaultExtensions(),
			SkipDirs:   defaultSkipDirs(),
		},
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: 200 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Output: "stderr",
			Format: "text",
		},
	}
}
