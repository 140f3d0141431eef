package discovery

import "errors"

// Common errors returned by the discovery package.
var (
	// ErrInvalidPath is returned when a path is invalid or inaccessible.
	ErrInvalidPath = errors.New("invalid or inaccessible path")
)
