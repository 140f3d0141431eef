package script

import (
	"fmt"
	"os"

	"github.com/dop251/goja/parser"
	"github.com/pkg/errors"

	"github.com/yorunoR/querly/pkg/discovery"
	"github.com/yorunoR/querly/pkg/logger"
)

// MaxFileSize is the maximum allowed script size (16MB).
// Larger files are rejected to bound parse time and memory.
const MaxFileSize = 16 * 1024 * 1024

// Loader reads and parses one script file.
type Loader interface {
	// Load reads and parses the file at path.
	//
	// Returns:
	//   - Parsed script
	//   - Error with a stack trace if the file cannot be read or parsed
	//
	// Thread-safety: This method is safe to call concurrently with different files.
	Load(path string) (*Script, error)
}

// fileLoader implements the Loader interface.
type fileLoader struct {
	maxSize int64
	logger  logger.Logger
}

// NewLoader creates a new Loader that reads from the filesystem.
func NewLoader(log logger.Logger) Loader {
	return &fileLoader{
		maxSize: MaxFileSize,
		logger:  log,
	}
}

// Load implements Loader.Load.
func (l *fileLoader) Load(path string) (*Script, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !info.Mode().IsRegular() {
		return nil, errors.WithStack(ErrNotRegular)
	}

	if info.Size() > l.maxSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "size=%d, max=%d", info.Size(), l.maxSize)
	}

	// #nosec G304: path comes from discovery over user-supplied paths
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s, err := Parse(path, string(data))
	if err != nil {
		return nil, err
	}

	l.logger.Debug("script loaded", "path", path, "bytes", len(data), "lines", s.LineCount())
	return s, nil
}

// Parse parses src as a JavaScript program.
//
// Parser panics are converted into errors.
func Parse(path, src string) (s *Script, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = errors.Errorf("parser panic: %v", r)
		}
	}()

	program, perr := parser.ParseFile(nil, path, src, 0, parser.WithDisableSourceMaps)
	if perr != nil {
		return nil, errors.WithStack(perr)
	}

	return &Script{
		path:       path,
		source:     src,
		program:    program,
		lineStarts: computeLineStarts(src),
	}, nil
}

// Enumerator turns source paths into one load outcome per script file.
type Enumerator interface {
	// Each discovers the scripts under paths and calls fn once per
	// discovered file, in discovery order.
	//
	// Failures never stop the enumeration: they are passed to fn as
	// outcomes carrying a *LoadError.
	Each(paths []string, fn func(Outcome))
}

// enumerator implements the Enumerator interface.
type enumerator struct {
	discoverer discovery.Discoverer
	loader     Loader
	logger     logger.Logger
}

// NewEnumerator creates an Enumerator from a discoverer and a loader.
func NewEnumerator(d discovery.Discoverer, l Loader, log logger.Logger) Enumerator {
	return &enumerator{
		discoverer: d,
		loader:     l,
		logger:     log,
	}
}

// Each implements Enumerator.Each.
func (e *enumerator) Each(paths []string, fn func(Outcome)) {
	for _, target := range e.discoverer.Discover(paths) {
		if target.Err != nil {
			fn(Outcome{
				Path: target.Path,
				Err:  &LoadError{Path: target.Path, Err: errors.WithStack(target.Err)},
			})
			continue
		}

		s, err := e.load(target.Path)
		if err != nil {
			e.logger.Debug("script failed to load", "path", target.Path, "error", err)
			fn(Outcome{Path: target.Path, Err: &LoadError{Path: target.Path, Err: err}})
			continue
		}

		fn(Outcome{Path: target.Path, Script: s})
	}
}

// load calls the loader, converting a panic into an error for this path only.
func (e *enumerator) load(path string) (s *Script, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = errors.WithStack(fmt.Errorf("panic while loading: %v", r))
		}
	}()
	return e.loader.Load(path)
}
