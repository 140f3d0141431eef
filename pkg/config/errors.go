package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrNoPaths is returned when no source paths are configured.
	ErrNoPaths = errors.New("no source paths specified")

	// ErrInvalidHistorySize is returned when history size is <= 0.
	ErrInvalidHistorySize = errors.New("invalid history size: must be > 0")

	// ErrInvalidColorMode is returned when the color mode is not recognized.
	ErrInvalidColorMode = errors.New("invalid color mode: must be auto, always, or never")

	// ErrNoExtensions is returned when no script extensions are configured.
	ErrNoExtensions = errors.New("no script extensions specified")

	// ErrInvalidDebounce is returned when the watch debounce is <= 0.
	ErrInvalidDebounce = errors.New("invalid watch debounce: must be > 0")

	// ErrInvalidLogLevel is returned when log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConfigNotFound is returned when config file is not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when config file has invalid YAML syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax in config file")

	// ErrInvalidEnv is returned when an environment variable cannot be parsed.
	ErrInvalidEnv = errors.New("invalid environment variable")
)
