package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yorunoR/querly/pkg/config"
	"github.com/yorunoR/querly/pkg/discovery"
	"github.com/yorunoR/querly/pkg/logger"
	"github.com/yorunoR/querly/pkg/script"
	"github.com/yorunoR/querly/pkg/session"
)

// environment holds the components shared by every command.
type environment struct {
	cfg        *config.Config
	log        logger.Logger
	discoverer discovery.Discoverer
	builder    *session.Builder
}

// loadConfig loads the configuration file and environment, then applies
// the flags set on the command line.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.NewLoader(c.String("config")).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("log-level") {
		cfg.Logging.Level = strings.ToLower(c.String("log-level"))
	}
	if c.IsSet("color") {
		cfg.Display.Color = strings.ToLower(c.String("color"))
	}
	if c.IsSet("history-file") {
		cfg.History.File = c.String("history-file")
	}
	if c.IsSet("history-size") {
		cfg.History.Size = c.Int("history-size")
	}
	if c.Bool("no-history") {
		cfg.History.Disabled = true
	}
	if c.Bool("watch") {
		cfg.Watch.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initialize loads the configuration and builds the shared components.
func initialize(c *cli.Context) (*environment, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	d := discovery.New(discovery.Options{
		Extensions: cfg.Scripts.Extensions,
		SkipDirs:   cfg.Scripts.SkipDirs,
	}, log)

	enum := script.NewEnumerator(d, script.NewLoader(log), log)

	return &environment{
		cfg:        cfg,
		log:        log,
		discoverer: d,
		builder:    session.NewBuilder(enum, log),
	}, nil
}

// paths returns the positional paths, or the configured ones when none
// are given.
func (e *environment) paths(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return e.cfg.Paths
}

// useColor resolves a color mode for output written to w.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func colorFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "color",
		Usage: "colorize output: auto, always, never",
	}
}
