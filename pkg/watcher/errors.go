package watcher

import "errors"

var (
	// ErrWatcherClosed is returned by Start and Stop after Close.
	ErrWatcherClosed = errors.New("source watcher is closed")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("source watcher already started")

	// ErrNotStarted is returned by Stop before Start.
	ErrNotStarted = errors.New("source watcher not started")

	// ErrCircuitBreakerOpen is sent once on Errors when too many
	// fsnotify errors occurred; later errors are dropped.
	ErrCircuitBreakerOpen = errors.New("too many watch errors, reporting suspended")

	// ErrInvalidPath is returned when none of the source paths can be watched.
	ErrInvalidPath = errors.New("no source path can be watched")
)
