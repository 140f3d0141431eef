// Package watcher reports changes to script files below the loaded paths.
//
// It uses fsnotify and debounces events per file, so an editor saving a
// file in several steps yields one event. The console uses it to tell
// the user that the session is stale; it never reloads by itself.
//
// Example usage:
//
//	w, err := watcher.New(watcher.Config{
//	    Debounce: 200 * time.Millisecond,
//	    Filter:   func(path string) bool { return strings.HasSuffix(path, ".js") },
//	}, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.Start(ctx, []string{"src"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	for event := range w.Events() {
//	    fmt.Printf("File %s: %s\n", event.Path, event.Op)
//	}
package watcher

import (
	"context"
	"time"
)

// Op describes a file operation type.
type Op uint32

// File operation types.
const (
	OpCreate Op = 1 << iota // File created
	OpWrite                 // File modified
	OpRemove                // File deleted
	OpRename                // File renamed/moved
)

// String returns a human-readable operation name.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Event represents a change to a script file.
type Event struct {
	// Path is the path of the file that changed.
	Path string

	// Op is the operation that triggered the event.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Watcher provides file system monitoring.
type Watcher interface {
	// Start begins watching the specified paths.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - paths: Files or directories to watch; directories are watched
	//     recursively, files through their parent directory
	//
	// Returns error if none of the paths can be watched.
	// Events are processed in a background goroutine until ctx is
	// cancelled or the watcher is stopped.
	Start(ctx context.Context, paths []string) error

	// Stop ends event processing.
	Stop() error

	// Events returns the channel of debounced events.
	// The channel is closed by Close.
	Events() <-chan Event

	// Errors returns the channel of non-fatal watcher errors.
	// The channel is closed by Close.
	Errors() <-chan error

	// Close stops the watcher and releases resources.
	Close() error
}

// Config contains watcher configuration.
type Config struct {
	// Debounce is the quiet period before an event is emitted.
	// Events for the same file within this period are coalesced.
	// Default: 200ms.
	Debounce time.Duration

	// CircuitBreakerThreshold is the number of fsnotify errors after
	// which only ErrCircuitBreakerOpen is reported.
	// Default: 5.
	CircuitBreakerThreshold int

	// Filter selects the files whose changes are reported.
	// Default: every file.
	Filter func(path string) bool

	// SkipDir reports directory names that are not watched.
	// Default: hidden directories.
	SkipDir func(name string) bool
}
