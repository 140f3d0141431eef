package display

import (
	"github.com/fatih/color"
)

// Palette holds the colors used for console output.
type Palette struct {
	Base     *color.Color
	Emphasis *color.Color
	Error    *color.Color
}

// NewPalette returns the console palette with colors forced on or off,
// independent of the global color.NoColor detection.
func NewPalette(enabled bool) *Palette {
	p := &Palette{
		Base:     color.New(color.FgBlue),
		Emphasis: color.New(color.FgHiBlue, color.Bold),
		Error:    color.New(color.FgRed),
	}

	for _, c := range []*color.Color{p.Base, p.Emphasis, p.Error} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}
