package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader provides methods for loading configuration from various sources.
type Loader interface {
	// Load loads configuration with the following precedence:
	// 1. Environment variables
	// 2. Configuration file
	// 3. Default values
	//
	// Returns the merged configuration or an error if validation fails.
	Load() (*Config, error)

	// LoadFromFile loads configuration from a specific file.
	LoadFromFile(path string) (*Config, error)
}

// loader implements the Loader interface.
type loader struct {
	configPath string
	getenv     func(string) string
}

// NewLoader creates a new configuration loader.
//
// If configPath is empty, searches for config file in:
// 1. ./.querly.yaml (current directory)
// 2. ~/.config/querly/config.yaml.
func NewLoader(configPath string) Loader {
	return &loader{
		configPath: configPath,
		getenv:     os.Getenv,
	}
}

// Load implements Loader.Load.
func (l *loader) Load() (*Config, error) {
	cfg := Default()

	configPath := l.configPath
	if configPath == "" {
		configPath = l.findConfigFile()
	}

	if configPath != "" {
		fileCfg, err := l.LoadFromFile(configPath)
		if err != nil {
			// An explicitly named file must load; a discovered one may be skipped.
			if l.configPath != "" {
				return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
			}
		} else {
			cfg = l.mergeConfigs(cfg, fileCfg)
		}
	}

	cfg, err := l.applyEnvVars(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFile implements Loader.LoadFromFile.
func (l *loader) LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return &cfg, nil
}

// findConfigFile returns the first existing config file in the
// standard locations, or an empty string.
func (l *loader) findConfigFile() string {
	candidates := []string{
		localConfigPath,
		defaultConfigPath(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// mergeConfigs merges file configuration into default configuration.
//
// File values override defaults only when non-zero. Boolean switches
// can only be turned on by the file.
func (l *loader) mergeConfigs(base, override *Config) *Config {
	result := *base

	if len(override.Paths) > 0 {
		result.Paths = override.Paths
	}

	if override.History.Disabled {
		result.History.Disabled = true
	}
	if override.History.File != "" {
		result.History.File = override.History.File
	}
	if override.History.Size > 0 {
		result.History.Size = override.History.Size
	}

	if override.Display.Color != "" {
		result.Display.Color = override.Display.Color
	}

	if len(override.Scripts.Extensions) > 0 {
		result.Scripts.Extensions = override.Scripts.Extensions
	}
	if len(override.Scripts.SkipDirs) > 0 {
		result.Scripts.SkipDirs = override.Scripts.SkipDirs
	}

	if override.Watch.Enabled {
		result.Watch.Enabled = true
	}
	if override.Watch.Debounce > 0 {
		result.Watch.Debounce = override.Watch.Debounce
	}

	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.Output != "" {
		result.Logging.Output = override.Logging.Output
	}
	if override.Logging.Format != "" {
		result.Logging.Format = override.Logging.Format
	}

	return &result
}

// applyEnvVars applies environment variable overrides to the configuration.
//
// Supported environment variables:
//   - QUERLY_PATHS: Comma-separated list of source paths
//   - QUERLY_HISTORY_FILE: History file path
//   - QUERLY_HISTORY_SIZE: Maximum history entries
//   - QUERLY_COLOR: Color mode
//   - QUERLY_LOG_LEVEL: Log level
func (l *loader) applyEnvVars(cfg *Config) (*Config, error) {
	result := *cfg

	if envPaths := l.getenv("QUERLY_PATHS"); envPaths != "" {
		var paths []string
		for _, p := range strings.Split(envPaths, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		result.Paths = paths
	}

	if file := l.getenv("QUERLY_HISTORY_FILE"); file != "" {
		result.History.File = file
	}

	if size := l.getenv("QUERLY_HISTORY_SIZE"); size != "" {
		n, err := strconv.Atoi(strings.TrimSpace(size))
		if err != nil {
			return nil, fmt.Errorf("%w: QUERLY_HISTORY_SIZE=%q", ErrInvalidEnv, size)
		}
		result.History.Size = n
	}

	if color := l.getenv("QUERLY_COLOR"); color != "" {
		result.Display.Color = strings.ToLower(color)
	}

	if logLevel := l.getenv("QUERLY_LOG_LEVEL"); logLevel != "" {
		result.Logging.Level = strings.ToLower(logLevel)
	}

	return &result, nil
}

// Load is a convenience function that creates a loader and loads configuration.
//
// Equivalent to:
//
//	loader := NewLoader("")
//	return loader.Load()
func Load() (*Config, error) {
	return NewLoader("").Load()
}

// LoadFromFile is a convenience function that loads configuration from a file.
//
// Equivalent to:
//
//	loader := NewLoader(path)
//	return loader.Load()
func LoadFromFile(path string) (*Config, error) {
	return NewLoader(path).Load()
}
