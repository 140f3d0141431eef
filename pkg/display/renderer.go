package display

import (
	"fmt"
	"io"

	"github.com/yorunoR/querly/pkg/analyzer"
)

// Renderer turns a match into a single display line.
type Renderer struct {
	palette *Palette
}

// NewRenderer creates a Renderer using palette.
func NewRenderer(palette *Palette) *Renderer {
	return &Renderer{palette: palette}
}

// Render returns
//
//	"  <path>:<line>:<startColumn>\t<prefix><highlighted><suffix>"
//
// with every segment in the base color and the highlighted segment
// emphasized. Render performs no I/O.
func (r *Renderer) Render(m analyzer.Match) string {
	prefix, highlighted, suffix := Highlight(m.LineText, m.StartColumn, m.EndColumn)

	return fmt.Sprintf("  %s:%d:%d\t%s%s%s",
		m.Script.Path(),
		m.Line,
		m.StartColumn,
		r.palette.Base.Sprint(prefix),
		r.palette.Emphasis.Sprint(highlighted),
		r.palette.Base.Sprint(suffix))
}

// Highlight splits line around the character range [start, end).
//
// Columns count characters, not bytes. They are clamped to the line, and
// an end before start selects nothing.
func Highlight(line string, start, end int) (prefix, highlighted, suffix string) {
	runes := []rune(line)
	n := len(runes)

	start = clamp(start, 0, n)
	end = clamp(end, start, n)

	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// textFormatter formats output for the terminal.
type textFormatter struct {
	renderer *Renderer
}

// FormatMatch implements Formatter.FormatMatch.
func (f *textFormatter) FormatMatch(w io.Writer, m analyzer.Match) error {
	_, err := fmt.Fprintln(w, f.renderer.Render(m))
	return err
}

// FormatSummary implements Formatter.FormatSummary.
func (f *textFormatter) FormatSummary(w io.Writer, count int) error {
	_, err := fmt.Fprintf(w, "%d results\n", count)
	return err
}
