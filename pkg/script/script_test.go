package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dop251/goja/file"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorunoR/querly/pkg/discovery"
	"github.com/yorunoR/querly/pkg/logger"
)

func TestParse(t *testing.T) {
	s, err := Parse("app.js", "if (ready) {\n  start();\n}\n")
	require.NoError(t, err)

	assert.Equal(t, "app.js", s.Path())
	assert.Len(t, s.Program().Body, 1)
	assert.Equal(t, 4, s.LineCount())
	assert.Equal(t, "  start();", s.Line(2))
	assert.Equal(t, "", s.Line(4))
	assert.Equal(t, "", s.Line(0))
	assert.Equal(t, "", s.Line(99))

	line, col := s.Position(s.Program().Body[0].Idx0())
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("broken.js", "if (")
	require.Error(t, err)

	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	var st stackTracer
	assert.True(t, errors.As(err, &st), "parse error should carry a stack trace")
}

func TestPosition(t *testing.T) {
	// Line 2 starts after a multi-byte character and a CRLF.
	src := "s = 'é';\r\n  go();\rlast"
	s, err := Parse("pos.js", src)
	require.NoError(t, err)

	tests := []struct {
		name     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{"start", 0, 1, 0},
		{"after multibyte", len("s = 'é'"), 1, 6},
		{"second line indent", len("s = 'é';\r\n  "), 2, 2},
		{"after lone CR", len("s = 'é';\r\n  go();\r"), 3, 0},
		{"end of source", len(src), 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := s.Position(file.Idx(tt.offset + 1))
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantCol, col)
		})
	}

	assert.Equal(t, "  go();", s.Line(2))
	assert.Equal(t, "last", s.Line(3))
}

func TestSlice(t *testing.T) {
	s, err := Parse("slice.js", "foo(bar)")
	require.NoError(t, err)

	assert.Equal(t, "foo", s.Slice(1, 4))
	assert.Equal(t, "", s.Slice(4, 1))
	assert.Equal(t, "foo(bar)", s.Slice(0, 1000))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.js")
	require.NoError(t, os.WriteFile(path, []byte("function f() { return 1; }\n"), 0600))

	s, err := NewLoader(logger.Noop()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	big := filepath.Join(dir, "big.js")
	require.NoError(t, os.WriteFile(big, []byte("var x = 1;"), 0600))

	l := &fileLoader{maxSize: 4, logger: logger.Noop()}

	_, err := l.Load(big)
	assert.True(t, errors.Is(err, ErrFileTooLarge), "error = %v", err)

	_, err = l.Load(filepath.Join(dir, "missing.js"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "error = %v", err)

	_, err = l.Load(dir)
	assert.True(t, errors.Is(err, ErrNotRegular), "error = %v", err)
}

type panicLoader struct{}

func (panicLoader) Load(path string) (*Script, error) {
	panic("boom")
}

func TestEnumeratorEach(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.js")
	bad := filepath.Join(dir, "b.js")
	require.NoError(t, os.WriteFile(good, []byte("if (x) { y(); }"), 0600))
	require.NoError(t, os.WriteFile(bad, []byte("if ("), 0600))
	missing := filepath.Join(dir, "missing.js")

	d := discovery.New(discovery.Options{Extensions: []string{".js"}}, logger.Noop())
	e := NewEnumerator(d, NewLoader(logger.Noop()), logger.Noop())

	var outcomes []Outcome
	e.Each([]string{dir, missing}, func(o Outcome) {
		outcomes = append(outcomes, o)
	})

	require.Len(t, outcomes, 3)

	assert.Equal(t, good, outcomes[0].Path)
	assert.True(t, outcomes[0].OK())

	assert.Equal(t, bad, outcomes[1].Path)
	assert.False(t, outcomes[1].OK())
	var loadErr *LoadError
	require.True(t, errors.As(outcomes[1].Err, &loadErr))
	assert.Equal(t, bad, loadErr.Path)

	assert.Equal(t, missing, outcomes[2].Path)
	assert.ErrorIs(t, outcomes[2].Err, discovery.ErrInvalidPath)
}

func TestEnumeratorRecoversPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.js")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	d := discovery.New(discovery.Options{Extensions: []string{".js"}}, logger.Noop())
	e := NewEnumerator(d, panicLoader{}, logger.Noop())

	var got []Outcome
	e.Each([]string{path}, func(o Outcome) { got = append(got, o) })

	require.Len(t, got, 1)
	require.Error(t, got[0].Err)
	assert.Contains(t, got[0].Err.Error(), "boom")
}
