package main

import (
	"errors"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yorunoR/querly/pkg/display"
	"github.com/yorunoR/querly/pkg/query"
)

// errMissingPattern is returned when find is run without a pattern.
var errMissingPattern = errors.New("find requires a PATTERN argument")

func findCommand() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "Run one query and print the matches",
		ArgsUsage: "PATTERN [PATHS...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: text, json",
				Value: string(display.FormatText),
			},
			colorFlag(),
		},
		Action: runFind,
	}
}

func runFind(c *cli.Context) error {
	if c.NArg() == 0 || strings.TrimSpace(c.Args().First()) == "" {
		return errMissingPattern
	}

	format, err := display.ParseFormat(strings.ToLower(c.String("format")))
	if err != nil {
		return err
	}

	env, err := initialize(c)
	if err != nil {
		return err
	}

	out, errOut := c.App.Writer, c.App.ErrWriter
	args := c.Args().Slice()

	result := env.builder.Build(env.paths(args[1:]))

	reporter := display.NewErrorReporter(errOut, display.NewPalette(useColor(env.cfg.Display.Color, errOut)))
	for _, f := range result.Failures {
		reporter.ReportLoadFailure(f)
	}

	formatter := display.New(display.Config{
		Format: format,
		Color:  useColor(env.cfg.Display.Color, out),
	})

	if _, err := query.NewExecutor(out, formatter).Execute(result.Session, args[0]); err != nil {
		reporter.Report(err)
		return cli.Exit("", 1)
	}

	return nil
}
