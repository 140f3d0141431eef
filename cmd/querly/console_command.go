package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yorunoR/querly/pkg/console"
	"github.com/yorunoR/querly/pkg/display"
	"github.com/yorunoR/querly/pkg/history"
	"github.com/yorunoR/querly/pkg/query"
	"github.com/yorunoR/querly/pkg/watcher"
)

func consoleCommand() *cli.Command {
	return &cli.Command{
		Name:      "console",
		Usage:     "Start the interactive query shell",
		ArgsUsage: "[PATHS...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history-file",
				Usage: "file that persists successful queries",
			},
			&cli.IntFlag{
				Name:  "history-size",
				Usage: "maximum number of history entries",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "do not load or save history",
			},
			colorFlag(),
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "report source changes before the next prompt",
			},
		},
		Action: runConsole,
	}
}

func runConsole(c *cli.Context) error {
	env, err := initialize(c)
	if err != nil {
		return err
	}

	out := c.App.Writer
	paths := env.paths(c.Args().Slice())

	reader, err := newLineReader(c, env.cfg.History.Size)
	if err != nil {
		return err
	}
	defer reader.Close()

	color := useColor(env.cfg.Display.Color, out)
	palette := display.NewPalette(color)

	var store history.Store
	if env.cfg.History.Enabled() {
		store = history.NewFileStore(env.cfg.History.File, env.cfg.History.Size, env.log)
	}

	con := console.New(console.Config{
		Version:  version,
		Paths:    paths,
		Out:      out,
		Reader:   reader,
		Builder:  env.builder,
		Executor: query.NewExecutor(out, display.New(display.Config{Format: display.FormatText, Color: color})),
		Reporter: display.NewErrorReporter(out, palette),
		History:  store,
	}, env.log)

	if env.cfg.Watch.Enabled {
		ctx, cancel := context.WithCancel(c.Context)
		defer cancel()

		w, err := startWatcher(ctx, env, paths, con.MarkStale)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	if code := con.Start(); code != 0 {
		return cli.Exit("", code)
	}
	return nil
}

// newLineReader uses line editing when input is a terminal.
func newLineReader(c *cli.Context, historySize int) (console.LineReader, error) {
	if f, ok := c.App.Reader.(*os.File); ok {
		return console.NewLineReader(f, c.App.Writer, historySize)
	}
	return console.NewPlainReader(c.App.Reader, c.App.Writer), nil
}

// startWatcher watches paths and calls onChange with every changed script.
func startWatcher(ctx context.Context, env *environment, paths []string, onChange func(path string)) (watcher.Watcher, error) {
	skipDirs := make(map[string]bool, len(env.cfg.Scripts.SkipDirs))
	for _, dir := range env.cfg.Scripts.SkipDirs {
		skipDirs[dir] = true
	}

	w, err := watcher.New(watcher.Config{
		Debounce: env.cfg.Watch.Debounce,
		Filter:   env.discoverer.Matches,
		SkipDir: func(name string) bool {
			return skipDirs[name] || strings.HasPrefix(name, ".")
		},
	}, env.log)
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.Start(ctx, paths); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}

	go func() {
		for event := range w.Events() {
			env.log.Debug("source changed", "path", event.Path, "op", event.Op)
			onChange(event.Path)
		}
	}()

	go func() {
		for err := range w.Errors() {
			env.log.Warn("watcher error", "error", err)
		}
	}()

	return w, nil
}
