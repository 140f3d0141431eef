package display

import (
	"fmt"
	"io"

	"github.com/yorunoR/querly/pkg/backtrace"
	"github.com/yorunoR/querly/pkg/script"
)

// ErrorReporter writes errors with their backtraces.
type ErrorReporter struct {
	w       io.Writer
	palette *Palette
}

// NewErrorReporter creates an ErrorReporter writing to w.
func NewErrorReporter(w io.Writer, palette *Palette) *ErrorReporter {
	return &ErrorReporter{w: w, palette: palette}
}

// Report writes
//
//	Error: <message>
//	Backtrace:
//	  <file>:<line> in <function>
//	  ...
func (r *ErrorReporter) Report(err error) {
	fmt.Fprintln(r.w, r.palette.Error.Sprint("Error: "+err.Error()))
	fmt.Fprintln(r.w, "Backtrace:")
	for _, line := range backtrace.Format(backtrace.Frames(err)) {
		fmt.Fprintln(r.w, line)
	}
}

// ReportLoadFailure writes the failing path and error, then its backtrace.
func (r *ErrorReporter) ReportLoadFailure(f *script.LoadError) {
	fmt.Fprintln(r.w, r.palette.Error.Sprint("Failed to load "+f.Path+": "+f.Err.Error()))
	for _, line := range backtrace.Format(backtrace.Frames(f.Err)) {
		fmt.Fprintln(r.w, line)
	}
}
