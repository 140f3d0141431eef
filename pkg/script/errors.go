package script

import (
	stderrors "errors"
)

// Common errors returned by the script package.
var (
	// ErrFileTooLarge is returned when a file exceeds the maximum size limit.
	ErrFileTooLarge = stderrors.New("file size exceeds maximum limit")

	// ErrNotRegular is returned when a path is not a regular file.
	ErrNotRegular = stderrors.New("not a regular file")
)

// LoadError reports why one path could not be loaded.
//
// Err carries a stack trace from github.com/pkg/errors.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
