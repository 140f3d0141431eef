package pattern

import (
	"fmt"
)

// SyntaxError reports an invalid pattern.
type SyntaxError struct {
	// Pattern is the full pattern text.
	Pattern string

	// Pos is the byte offset in Pattern where the problem was found.
	Pos int

	// Msg describes the problem.
	Msg string

	// Err is the underlying error, if any (for example from the where clause compiler).
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d in %q: %s", e.Pos, e.Pattern, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
