// Package query runs one pattern against a session and writes the results.
package query

import (
	"io"

	"github.com/pkg/errors"

	"github.com/yorunoR/querly/pkg/analyzer"
	"github.com/yorunoR/querly/pkg/display"
	"github.com/yorunoR/querly/pkg/pattern"
	"github.com/yorunoR/querly/pkg/session"
)

// CompileError is returned when the pattern text is invalid.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return e.Err.Error()
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// EngineError is returned when running a valid pattern fails.
type EngineError struct {
	Pattern string
	Err     error
}

func (e *EngineError) Error() string {
	return e.Err.Error()
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Executor compiles and runs queries.
type Executor struct {
	w         io.Writer
	formatter display.Formatter
}

// NewExecutor creates an Executor that writes results to w.
func NewExecutor(w io.Writer, formatter display.Formatter) *Executor {
	return &Executor{w: w, formatter: formatter}
}

// Execute compiles text, writes every match found in sess followed by the
// summary line, and returns the number of matches.
//
// Errors are a *CompileError or an *EngineError. When an error is
// returned no summary is written.
func (e *Executor) Execute(sess *session.Session, text string) (count int, err error) {
	p, err := pattern.Compile(text, map[string]interface{}{})
	if err != nil {
		return 0, &CompileError{Pattern: text, Err: err}
	}

	defer func() {
		if r := recover(); r != nil {
			count = 0
			err = &EngineError{Pattern: text, Err: errors.Errorf("query panic: %v", r)}
		}
	}()

	var writeErr error
	findErr := sess.Find(p, func(m analyzer.Match) {
		if writeErr != nil {
			return
		}
		if werr := e.formatter.FormatMatch(e.w, m); werr != nil {
			writeErr = errors.Wrap(werr, "failed to write match")
			return
		}
		count++
	})
	if findErr != nil {
		return 0, &EngineError{Pattern: text, Err: findErr}
	}
	if writeErr != nil {
		return 0, &EngineError{Pattern: text, Err: writeErr}
	}

	if err := e.formatter.FormatSummary(e.w, count); err != nil {
		return 0, &EngineError{Pattern: text, Err: errors.Wrap(err, "failed to write summary")}
	}

	return count, nil
}

