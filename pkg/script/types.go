// Package script loads JavaScript source files and parses them into
// syntax trees that the analyzer can search.
//
// A Script keeps its source text next to the parsed program so that
// node positions can be turned into line and column numbers and lines
// can be shown back to the user.
//
// Example usage:
//
//	loader := script.NewLoader(logger.Default())
//	s, err := loader.Load("app.js")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	line, col := s.Position(s.Program().Idx0())
package script

import (
	"sort"
	"unicode/utf8"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
)

// Script is one successfully parsed source file.
//
// Scripts are immutable after Parse returns and are safe for concurrent
// reads.
type Script struct {
	path       string
	source     string
	program    *ast.Program
	lineStarts []int // byte offset of the first byte of each line
}

// Path returns the path the script was loaded from.
func (s *Script) Path() string {
	return s.path
}

// Source returns the full source text.
func (s *Script) Source() string {
	return s.source
}

// Program returns the parsed syntax tree.
func (s *Script) Program() *ast.Program {
	return s.program
}

// LineCount returns the number of lines in the source.
func (s *Script) LineCount() int {
	return len(s.lineStarts)
}

// Line returns the text of the 1-based line n without its line terminator.
// Out-of-range lines yield an empty string.
func (s *Script) Line(n int) string {
	if n < 1 || n > len(s.lineStarts) {
		return ""
	}

	start := s.lineStarts[n-1]
	end := len(s.source)
	if n < len(s.lineStarts) {
		end = s.lineStarts[n]
	}

	text := s.source[start:end]
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return text
}

// Offset converts a parser index into a byte offset in the source,
// clamped to the source bounds.
func (s *Script) Offset(idx file.Idx) int {
	// Files parsed without a FileSet start at index 1.
	off := int(idx) - 1
	if off < 0 {
		return 0
	}
	if off > len(s.source) {
		return len(s.source)
	}
	return off
}

// Position returns the 1-based line and 0-based character column of idx.
func (s *Script) Position(idx file.Idx) (line, column int) {
	off := s.Offset(idx)

	// Index of the last line starting at or before off.
	i := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > off
	}) - 1
	if i < 0 {
		i = 0
	}

	return i + 1, utf8.RuneCountInString(s.source[s.lineStarts[i]:off])
}

// Slice returns the source text between two parser indexes.
func (s *Script) Slice(from, to file.Idx) string {
	start, end := s.Offset(from), s.Offset(to)
	if end < start {
		return ""
	}
	return s.source[start:end]
}

// computeLineStarts records where each line begins. \n, \r\n and a lone
// \r all end a line.
func computeLineStarts(src string) []int {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Outcome is the result of loading one path: either a Script or an error.
type Outcome struct {
	// Path is the path that was loaded.
	Path string

	// Script is set when loading succeeded.
	Script *Script

	// Err is a *LoadError when loading failed.
	Err error
}

// OK reports whether the outcome carries a script.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Script != nil
}
