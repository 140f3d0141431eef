// Package console implements the interactive query loop.
//
// The loop reads one line at a time, classifies it as a command and runs
// it against the current session:
//
//	find PATTERN   run a query and print the matches
//	reload!        rebuild the session from the configured paths
//	quit           leave the console
//
// Any other line prints the command list. Query errors are reported and
// the loop continues; only quit or end of input ends it.
package console

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/yorunoR/querly/pkg/display"
	"github.com/yorunoR/querly/pkg/history"
	"github.com/yorunoR/querly/pkg/logger"
	"github.com/yorunoR/querly/pkg/query"
	"github.com/yorunoR/querly/pkg/session"
)

const commandHelp = `Commands:
  - find PATTERN   Find PATTERN from given paths
  - reload!        Reload program from paths
  - quit

`

// Config wires a Console to its collaborators.
type Config struct {
	// Version is shown in the banner.
	Version string

	// Paths are the source paths every build loads.
	Paths []string

	// Out receives all console output.
	Out io.Writer

	// Reader supplies input lines.
	Reader LineReader

	// Builder builds sessions from Paths.
	Builder *session.Builder

	// Executor runs find queries.
	Executor *query.Executor

	// Reporter prints query and load errors.
	Reporter *display.ErrorReporter

	// History persists successful queries. Nil disables history.
	History history.Store
}

// Console is the interactive command loop. It is not safe for concurrent
// use, except for MarkStale.
type Console struct {
	cfg    Config
	logger logger.Logger

	session *session.Session
	stale   atomic.Pointer[string]
}

// New creates a Console. The session starts empty until Start builds it.
func New(cfg Config, log logger.Logger) *Console {
	return &Console{
		cfg:     cfg,
		logger:  log,
		session: session.Empty(),
	}
}

// Session returns the current session.
func (c *Console) Session() *session.Session {
	return c.session
}

// MarkStale records that path changed on disk. The loop prints a notice
// before its next prompt. Safe to call from any goroutine.
func (c *Console) MarkStale(path string) {
	c.stale.Store(&path)
}

// Start prints the banner, builds the initial session, loads history and
// runs the loop until quit or end of input. It returns the exit code.
func (c *Console) Start() int {
	out := c.cfg.Out

	fmt.Fprintf(out, "Querly %s, interactive console\n\n", c.cfg.Version)
	c.printCommands()

	fmt.Fprint(out, "Loading...")
	c.reload()
	fmt.Fprintln(out, " ready!")

	c.loadHistory()

	return c.loop()
}

func (c *Console) loop() int {
	for {
		c.printStaleNotice()

		line, err := c.cfg.Reader.Readline()
		if err != nil {
			switch {
			case errors.Is(err, ErrInterrupt):
				continue
			case errors.Is(err, io.EOF):
				return 0
			default:
				c.logger.Error("failed to read input", "error", err)
				return 0
			}
		}

		cmd := Classify(line)
		switch cmd.Kind {
		case CommandQuit:
			return 0
		case CommandReload:
			fmt.Fprint(c.cfg.Out, "reloading...")
			c.reload()
			fmt.Fprintln(c.cfg.Out, " done")
		case CommandFind:
			c.find(cmd.Pattern)
		default:
			c.printCommands()
		}
	}
}

// reload builds a new session and swaps it in whole.
func (c *Console) reload() {
	c.stale.Store(nil)

	result := c.cfg.Builder.Build(c.cfg.Paths)

	if len(result.Failures) > 0 {
		fmt.Fprintln(c.cfg.Out)
		for _, f := range result.Failures {
			c.cfg.Reporter.ReportLoadFailure(f)
		}
	}

	c.session = result.Session
}

func (c *Console) find(text string) {
	if _, err := c.cfg.Executor.Execute(c.session, text); err != nil {
		c.cfg.Reporter.Report(err)
		return
	}

	if c.cfg.History != nil {
		if err := c.cfg.History.Append(text); err != nil {
			c.cfg.Reporter.Report(err)
			return
		}
	}

	if err := c.cfg.Reader.AddHistory(text); err != nil {
		c.logger.Warn("failed to add line to recall buffer", "error", err)
	}
}

func (c *Console) loadHistory() {
	if c.cfg.History == nil {
		return
	}

	entries, err := c.cfg.History.Load()
	if err != nil {
		c.logger.Warn("failed to load history, starting empty", "error", err)
		return
	}

	for _, entry := range entries {
		if err := c.cfg.Reader.AddHistory(entry); err != nil {
			c.logger.Warn("failed to add line to recall buffer", "error", err)
			return
		}
	}
}

func (c *Console) printCommands() {
	fmt.Fprint(c.cfg.Out, commandHelp)
}

func (c *Console) printStaleNotice() {
	path := c.stale.Swap(nil)
	if path == nil {
		return
	}
	fmt.Fprintf(c.cfg.Out, "sources changed (%s); type reload! to refresh\n", *path)
}
