package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if len(cfg.Paths) != 1 || cfg.Paths[0] != "." {
		t.Errorf("Paths = %v, want [.]", cfg.Paths)
	}

	if cfg.History.Size != DefaultHistorySize {
		t.Errorf("History.Size = %d, want %d", cfg.History.Size, DefaultHistorySize)
	}

	if cfg.History.File != DefaultHistoryFile {
		t.Errorf("History.File = %q, want %q", cfg.History.File, DefaultHistoryFile)
	}

	if !cfg.History.Enabled() {
		t.Error("history should be enabled by default")
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "valid default config",
			modify:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "no paths",
			modify:  func(c *Config) { c.Paths = nil },
			wantErr: ErrNoPaths,
		},
		{
			name:    "zero history size",
			modify:  func(c *Config) { c.History.Size = 0 },
			wantErr: ErrInvalidHistorySize,
		},
		{
			name:    "unknown color mode",
			modify:  func(c *Config) { c.Display.Color = "sometimes" },
			wantErr: ErrInvalidColorMode,
		},
		{
			name:    "no extensions",
			modify:  func(c *Config) { c.Scripts.Extensions = []string{} },
			wantErr: ErrNoExtensions,
		},
		{
			name:    "zero debounce",
			modify:  func(c *Config) { c.Watch.Debounce = 0 },
			wantErr: ErrInvalidDebounce,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "invalid log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: ErrInvalidLogFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHistoryEnabled(t *testing.T) {
	tests := []struct {
		name string
		h    HistoryConfig
		want bool
	}{
		{"file set", HistoryConfig{File: ".h", Size: 1}, true},
		{"disabled", HistoryConfig{Disabled: true, File: ".h", Size: 1}, false},
		{"empty file", HistoryConfig{Size: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func newTestLoader(path string, env map[string]string) *loader {
	return &loader{
		configPath: path,
		getenv:     func(k string) string { return env[k] },
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "querly.yaml")

	content := `paths:
  - src
  - lib
history:
  file: /tmp/querly_history
  size: 50
display:
  color: never
watch:
  enabled: true
  debounce: 500ms
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := newTestLoader(path, nil).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Paths) != 2 || cfg.Paths[0] != "src" || cfg.Paths[1] != "lib" {
		t.Errorf("Paths = %v, want [src lib]", cfg.Paths)
	}
	if cfg.History.File != "/tmp/querly_history" {
		t.Errorf("History.File = %q", cfg.History.File)
	}
	if cfg.History.Size != 50 {
		t.Errorf("History.Size = %d, want 50", cfg.History.Size)
	}
	if cfg.Display.Color != ColorNever {
		t.Errorf("Display.Color = %q, want never", cfg.Display.Color)
	}
	if !cfg.Watch.Enabled || cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Watch = %+v", cfg.Watch)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Unset values keep their defaults.
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want text", cfg.Logging.Format)
	}
	if len(cfg.Scripts.Extensions) != 3 {
		t.Errorf("Scripts.Extensions = %v", cfg.Scripts.Extensions)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := newTestLoader(path, nil).Load()
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Load() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("paths: [unclosed"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := newTestLoader(path, nil).Load()
	if !errors.Is(err, ErrInvalidYAML) {
		t.Errorf("Load() error = %v, want ErrInvalidYAML", err)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "querly.yaml")
	if err := os.WriteFile(path, []byte("display:\n  color: rainbow\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := newTestLoader(path, nil).Load()
	if !errors.Is(err, ErrInvalidColorMode) {
		t.Errorf("Load() error = %v, want ErrInvalidColorMode", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"QUERLY_PATHS":        "app, test ,",
		"QUERLY_HISTORY_FILE": "/var/tmp/h",
		"QUERLY_HISTORY_SIZE": "10",
		"QUERLY_COLOR":        "ALWAYS",
		"QUERLY_LOG_LEVEL":    "Info",
	}

	l := newTestLoader("", env)
	cfg, err := l.applyEnvVars(Default())
	if err != nil {
		t.Fatalf("applyEnvVars() error = %v", err)
	}

	if len(cfg.Paths) != 2 || cfg.Paths[0] != "app" || cfg.Paths[1] != "test" {
		t.Errorf("Paths = %v, want [app test]", cfg.Paths)
	}
	if cfg.History.File != "/var/tmp/h" {
		t.Errorf("History.File = %q", cfg.History.File)
	}
	if cfg.History.Size != 10 {
		t.Errorf("History.Size = %d, want 10", cfg.History.Size)
	}
	if cfg.Display.Color != ColorAlways {
		t.Errorf("Display.Color = %q, want always", cfg.Display.Color)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestEnvInvalidHistorySize(t *testing.T) {
	l := newTestLoader("", map[string]string{"QUERLY_HISTORY_SIZE": "lots"})

	_, err := l.applyEnvVars(Default())
	if !errors.Is(err, ErrInvalidEnv) {
		t.Errorf("applyEnvVars() error = %v, want ErrInvalidEnv", err)
	}
}

func TestMergeConfigsBooleans(t *testing.T) {
	l := newTestLoader("", nil)

	merged := l.mergeConfigs(Default(), &Config{
		History: HistoryConfig{Disabled: true},
	})
	if merged.History.Enabled() {
		t.Error("history should be disabled after merge")
	}
	if merged.Watch.Enabled {
		t.Error("watch should stay disabled when the file leaves it unset")
	}
}
