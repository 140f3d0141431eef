// Package backtrace extracts and formats the stack trace attached to an
// error by github.com/pkg/errors.
package backtrace

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Frame is one decoded stack frame.
type Frame struct {
	Function string
	File     string
	Line     int
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type causer interface {
	Cause() error
}

// noisePrefixes name functions that never help the reader.
var noisePrefixes = []string{
	"runtime.",
	"testing.",
	"reflect.",
	"github.com/pkg/errors.",
}

// Frames returns the frames of the deepest stack trace found in err's
// chain, or nil when none is attached.
func Frames(err error) []Frame {
	var deepest stackTracer
	for seen := 0; err != nil && seen < 100; seen++ {
		if st, ok := err.(stackTracer); ok {
			deepest = st
		}
		err = next(err)
	}
	if deepest == nil {
		return nil
	}

	trace := deepest.StackTrace()
	frames := make([]Frame, 0, len(trace))
	for _, f := range trace {
		pc := uintptr(f) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			frames = append(frames, Frame{Function: "unknown", File: "unknown"})
			continue
		}
		file, line := fn.FileLine(pc)
		frames = append(frames, Frame{Function: fn.Name(), File: file, Line: line})
	}
	return frames
}

func next(err error) error {
	if u := errors.Unwrap(err); u != nil {
		return u
	}
	if c, ok := err.(causer); ok {
		return c.Cause()
	}
	return nil
}

// Format renders frames one per line, dropping runtime and library noise.
func Format(frames []Frame) []string {
	lines := make([]string, 0, len(frames))
	for _, f := range frames {
		if isNoise(f.Function) {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s:%d in %s", f.File, f.Line, f.Function))
	}
	return lines
}

func isNoise(function string) bool {
	for _, prefix := range noisePrefixes {
		if strings.HasPrefix(function, prefix) {
			return true
		}
	}
	return false
}
