// Package session builds and holds the set of scripts queries run against.
//
// A Session is immutable. Reloading builds a new Session and the caller
// swaps it in whole, so a half-built session is never visible to queries.
//
// Example usage:
//
//	b := session.NewBuilder(enumerator, logger.Default())
//	result := b.Build([]string{"src"})
//	for _, f := range result.Failures {
//	    fmt.Printf("failed: %s\n", f.Path)
//	}
//	err := result.Session.Find(p, func(m analyzer.Match) { ... })
package session

import (
	"time"

	"github.com/yorunoR/querly/pkg/analyzer"
	"github.com/yorunoR/querly/pkg/pattern"
	"github.com/yorunoR/querly/pkg/script"
)

// Session is an immutable, ordered collection of loaded scripts.
type Session struct {
	analyzer *analyzer.Analyzer
}

// New creates a session over scripts, in the given order.
func New(scripts []*script.Script) *Session {
	owned := make([]*script.Script, len(scripts))
	copy(owned, scripts)
	return &Session{analyzer: analyzer.New(owned)}
}

// Empty returns a session without scripts. It is valid and queryable.
func Empty() *Session {
	return New(nil)
}

// Scripts returns the loaded scripts in load order.
// The returned slice must not be modified.
func (s *Session) Scripts() []*script.Script {
	return s.analyzer.Scripts()
}

// Len returns the number of loaded scripts.
func (s *Session) Len() int {
	return len(s.analyzer.Scripts())
}

// Find calls visit for each match of p in document order.
func (s *Session) Find(p *pattern.Pattern, visit func(analyzer.Match)) error {
	return s.analyzer.Find(p, visit)
}

// Result is the outcome of one session build.
type Result struct {
	// Session holds the scripts that loaded. Never nil.
	Session *Session

	// Failures lists the paths that failed to load, in discovery order.
	Failures []*script.LoadError

	// Elapsed is the time the build took.
	Elapsed time.Duration
}
