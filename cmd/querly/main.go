// Package main provides the querly CLI application.
//
// Querly finds syntax patterns in JavaScript sources. The console command
// starts an interactive shell that keeps the parsed sources in memory;
// the find command runs a single query and exits.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// version is set during build time.
var version = "dev"

func main() {
	if err := run(os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			os.Exit(exit.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the application with the given arguments and streams.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	return newApp(stdin, stdout, stderr).Run(args)
}

// newApp creates the CLI application.
func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "querly",
		Usage:     "find syntax patterns in JavaScript sources",
		Version:   version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			consoleCommand(),
			findCommand(),
			versionCommand(),
		},
		// Exit codes are handled by main so tests never call os.Exit.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// globalFlags returns the flags available to every command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to configuration file",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "diagnostic log level: debug, info, warn, error",
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "querly %s\n", version)
			return nil
		},
	}
}
