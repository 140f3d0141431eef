package session

import (
	"time"

	"github.com/pkg/errors"

	"github.com/yorunoR/querly/pkg/logger"
	"github.com/yorunoR/querly/pkg/script"
)

// Builder constructs sessions from source paths.
type Builder struct {
	enum   script.Enumerator
	logger logger.Logger
	now    func() time.Time
}

// NewBuilder creates a Builder.
//
// Parameters:
//   - enum: Yields one load outcome per discovered script
//   - log: Logger instance
func NewBuilder(enum script.Enumerator, log logger.Logger) *Builder {
	return &Builder{
		enum:   enum,
		logger: log,
		now:    time.Now,
	}
}

// Build loads every script under paths.
//
// A path that fails to load is recorded in Result.Failures and skipped;
// it never aborts the build. The returned Result always carries a
// Session, which may be empty.
func (b *Builder) Build(paths []string) *Result {
	start := b.now()

	var scripts []*script.Script
	var failures []*script.LoadError

	b.each(paths, func(o script.Outcome) {
		if o.OK() {
			scripts = append(scripts, o.Script)
			return
		}
		failures = append(failures, asLoadError(o))
	})

	result := &Result{
		Session:  New(scripts),
		Failures: failures,
		Elapsed:  b.now().Sub(start),
	}

	b.logger.Info("session built",
		"scripts", len(scripts),
		"failures", len(failures),
		"elapsed", result.Elapsed)

	return result
}

// each runs the enumerator, turning a panic that escapes it into a
// failure for the path set instead of crashing the caller.
func (b *Builder) each(paths []string, fn func(script.Outcome)) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("script enumeration panicked", "panic", r)
			fn(script.Outcome{
				Path: "(enumeration)",
				Err:  errors.Errorf("panic while enumerating scripts: %v", r),
			})
		}
	}()
	b.enum.Each(paths, fn)
}

func asLoadError(o script.Outcome) *script.LoadError {
	var le *script.LoadError
	if errors.As(o.Err, &le) {
		return le
	}

	err := o.Err
	if err == nil {
		err = errors.New("no script loaded")
	}
	return &script.LoadError{Path: o.Path, Err: err}
}
