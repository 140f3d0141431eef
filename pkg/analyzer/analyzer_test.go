package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorunoR/querly/pkg/pattern"
	"github.com/yorunoR/querly/pkg/script"
)

func parse(t *testing.T, path, src string) *script.Script {
	t.Helper()
	s, err := script.Parse(path, src)
	require.NoError(t, err)
	return s
}

func compile(t *testing.T, text string) *pattern.Pattern {
	t.Helper()
	p, err := pattern.Compile(text, nil)
	require.NoError(t, err)
	return p
}

type position struct {
	path  string
	line  int
	start int
	end   int
}

func find(t *testing.T, a *Analyzer, text string) []position {
	t.Helper()
	var got []position
	err := a.Find(compile(t, text), func(m Match) {
		got = append(got, position{m.Script.Path(), m.Line, m.StartColumn, m.EndColumn})
	})
	require.NoError(t, err)
	return got
}

func TestFindDocumentOrder(t *testing.T) {
	first := parse(t, "b.js", "if (a) {\n  if (b) { go(); }\n}\nif (c) {}\n")
	second := parse(t, "a.js", "if (d) {}\n")

	a := New([]*script.Script{first, second})

	got := find(t, a, "if")
	want := []position{
		{"b.js", 1, 0, 8},
		{"b.js", 2, 2, 18},
		{"b.js", 4, 0, 9},
		{"a.js", 1, 0, 9},
	}
	assert.Equal(t, want, got)
}

func TestFindEnclosingFirst(t *testing.T) {
	s := parse(t, "nested.js", "f(g(1));")
	a := New([]*script.Script{s})

	got := find(t, a, "call")
	want := []position{
		{"nested.js", 1, 0, 7},
		{"nested.js", 1, 2, 6},
	}
	assert.Equal(t, want, got)
}

func TestFindMatchFields(t *testing.T) {
	s := parse(t, "app.js", "const x = 1;\nconsole.log('héllo', x);\n")
	a := New([]*script.Script{s})

	var matches []Match
	err := a.Find(compile(t, "console.log(_, _)"), func(m Match) {
		matches = append(matches, m)
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Same(t, s, m.Script)
	assert.Equal(t, 2, m.Line)
	assert.Equal(t, 0, m.StartColumn)
	assert.Equal(t, 23, m.EndColumn)
	assert.Equal(t, "console.log('héllo', x);", m.LineText)
}

func TestFindNoMatches(t *testing.T) {
	s := parse(t, "empty.js", "let a = 1;")
	a := New([]*script.Script{s})

	assert.Empty(t, find(t, a, "while"))
	assert.Empty(t, find(t, New(nil), "if"))
}

func TestFindDeclarationsOnce(t *testing.T) {
	s := parse(t, "decl.js", "function outer() { var a = 1; let b = 2; }\n")
	a := New([]*script.Script{s})

	assert.Len(t, find(t, a, "var"), 2)
	assert.Len(t, find(t, a, "function"), 1)
	assert.Len(t, find(t, a, "a"), 1)
}

func TestFindWhereError(t *testing.T) {
	s := parse(t, "err.js", "f(1, 2, 3);")
	a := New([]*script.Script{s})

	p := compile(t, "call where [0][args] == 0")
	err := a.Find(p, func(Match) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "err.js")
}

func TestFindIsRepeatable(t *testing.T) {
	s := parse(t, "r.js", "x(); y();")
	a := New([]*script.Script{s})

	assert.Equal(t, find(t, a, "call"), find(t, a, "call"))
}
