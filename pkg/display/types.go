// Package display renders query results and errors for the terminal.
//
// Matches are shown as a location followed by the source line, split in
// three segments around the matched range. Errors are shown in red with
// a filtered backtrace.
package display

import (
	"io"

	"github.com/yorunoR/querly/pkg/analyzer"
)

// Format represents an output format.
type Format string

const (
	// FormatText displays one highlighted line per match and a summary line.
	FormatText Format = "text"

	// FormatJSON displays one JSON object per match and a summary object.
	FormatJSON Format = "json"
)

// Formatter writes query results.
type Formatter interface {
	// FormatMatch writes one match.
	//
	// Parameters:
	//   - w: Output writer
	//   - m: Match to format
	//
	// Returns error if writing fails.
	FormatMatch(w io.Writer, m analyzer.Match) error

	// FormatSummary writes the result count after the last match.
	FormatSummary(w io.Writer, count int) error
}

// Config contains formatter configuration.
type Config struct {
	// Format specifies the output format.
	// Default: FormatText.
	Format Format

	// Color enables ANSI colors in text output.
	Color bool
}

// New creates a new formatter based on configuration.
func New(cfg Config) Formatter {
	switch cfg.Format {
	case FormatJSON:
		return &jsonFormatter{}
	case FormatText:
		fallthrough
	default:
		return &textFormatter{renderer: NewRenderer(NewPalette(cfg.Color))}
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", ErrUnknownFormat
	}
}
