// Package logger writes querly's diagnostics through log/slog.
//
// Diagnostics never share a stream with console output: they go to
// stderr unless a file is configured. Interactive use runs at warn, so a
// normal session prints nothing here.
//
//	log := logger.New(logger.Config{Level: "debug", Output: "querly.log", Format: "json"})
//	log.With("component", "history").Debug("history loaded", "entries", 12)
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the leveled, key-value logger every package receives.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})

	// With returns a Logger that adds keysAndValues to every record.
	With(keysAndValues ...interface{}) Logger
}

// Config selects level, format and destination.
type Config struct {
	Level  string // debug, info, warn (default) or error
	Format string // text (default) or json

	// Output is stdout, stderr (default) or a file path opened for append.
	Output string

	// Writer, when set, replaces Output.
	Writer io.Writer
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// slogLogger satisfies Logger with the embedded *slog.Logger's leveled
// methods; only With needs wrapping.
type slogLogger struct {
	*slog.Logger
}

func (l slogLogger) With(keysAndValues ...interface{}) Logger {
	return slogLogger{l.Logger.With(keysAndValues...)}
}

// New builds a Logger from cfg. If the output file cannot be opened the
// logger writes to stderr instead.
func New(cfg Config) Logger {
	w := cfg.Writer
	if w == nil {
		var err error
		if w, err = getWriter(cfg.Output); err != nil {
			w = os.Stderr
		}
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slogLogger{slog.New(slog.NewJSONHandler(w, opts))}
	}
	return slogLogger{slog.New(slog.NewTextHandler(w, opts))}
}

func parseLevel(level string) slog.Level {
	if l, ok := levels[strings.ToLower(level)]; ok {
		return l
	}
	return slog.LevelWarn
}

func getWriter(output string) (io.Writer, error) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	}

	// #nosec G304: output path comes from trusted config
	f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", output, err)
	}
	return f, nil
}

// Default is the warn-level text logger on stderr used when no
// configuration is available.
func Default() Logger {
	return New(Config{})
}

// Noop discards everything; tests use it.
func Noop() Logger {
	return slogLogger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}
