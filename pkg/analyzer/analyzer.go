// Package analyzer runs compiled patterns over a set of parsed scripts.
//
// Matches are visited in document order: scripts in the order they were
// given, and within a script by start offset, enclosing nodes first.
package analyzer

import (
	"sync"
	"unicode/utf8"

	"github.com/dop251/goja/ast"
	"github.com/pkg/errors"

	"github.com/yorunoR/querly/pkg/pattern"
	"github.com/yorunoR/querly/pkg/script"
)

// Match is one node matched by a pattern, located within a single line.
type Match struct {
	// Script owns the matched node.
	Script *script.Script

	// Node is the matched syntax node.
	Node ast.Node

	// Line is the 1-based line the node starts on.
	Line int

	// StartColumn and EndColumn are 0-based character offsets into
	// LineText. A node spanning several lines ends at the end of its
	// first line.
	StartColumn int
	EndColumn   int

	// LineText is the full text of Line.
	LineText string
}

// Analyzer holds a fixed set of scripts.
type Analyzer struct {
	scripts []*script.Script

	indexOnce sync.Once
	index     [][]ast.Node
}

// New creates an analyzer over scripts. The slice is not copied and must
// not be modified afterwards.
func New(scripts []*script.Script) *Analyzer {
	return &Analyzer{scripts: scripts}
}

// Scripts returns the analyzed scripts in load order.
func (a *Analyzer) Scripts() []*script.Script {
	return a.scripts
}

// Find calls visit for every node matched by p, in document order.
//
// A where clause that fails to evaluate stops the search and its error is
// returned. Panics raised while searching are returned as errors.
func (a *Analyzer) Find(p *pattern.Pattern, visit func(Match)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("analyzer panic: %v", r)
		}
	}()

	a.indexOnce.Do(a.buildIndex)

	for i, s := range a.scripts {
		for _, n := range a.index[i] {
			ok, err := p.Match(n, s)
			if err != nil {
				return errors.WithMessage(err, s.Path())
			}
			if ok {
				visit(locate(s, n))
			}
		}
	}

	return nil
}

// buildIndex collects the nodes of every script once; scripts never change.
func (a *Analyzer) buildIndex() {
	a.index = make([][]ast.Node, len(a.scripts))
	for i, s := range a.scripts {
		a.index[i] = collectNodes(s.Program())
	}
}

func locate(s *script.Script, n ast.Node) Match {
	line, start := s.Position(n.Idx0())
	endLine, end := s.Position(n.Idx1())
	text := s.Line(line)

	if endLine != line {
		end = utf8.RuneCountInString(text)
	}

	return Match{
		Script:      s,
		Node:        n,
		Line:        line,
		StartColumn: start,
		EndColumn:   end,
		LineText:    text,
	}
}
