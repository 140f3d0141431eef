package query

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorunoR/querly/pkg/display"
	"github.com/yorunoR/querly/pkg/pattern"
	"github.com/yorunoR/querly/pkg/script"
	"github.com/yorunoR/querly/pkg/session"
)

func newSession(t *testing.T, files map[string]string, order ...string) *session.Session {
	t.Helper()
	var scripts []*script.Script
	for _, path := range order {
		s, err := script.Parse(path, files[path])
		require.NoError(t, err)
		scripts = append(scripts, s)
	}
	return session.New(scripts)
}

func newExecutor(buf *bytes.Buffer) *Executor {
	return NewExecutor(buf, display.New(display.Config{Format: display.FormatText}))
}

func TestExecuteZeroMatches(t *testing.T) {
	sess := newSession(t, map[string]string{"a.js": "let x = 1;"}, "a.js")

	for _, text := range []string{"if", "foo(...)", "'missing'", "call where name == 'nothing'"} {
		t.Run(text, func(t *testing.T) {
			var buf bytes.Buffer
			count, err := newExecutor(&buf).Execute(sess, text)
			require.NoError(t, err)
			assert.Equal(t, 0, count)
			assert.Equal(t, "0 results\n", buf.String())
		})
	}
}

func TestExecuteEmptySession(t *testing.T) {
	var buf bytes.Buffer
	count, err := newExecutor(&buf).Execute(session.Empty(), "if")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, "0 results\n", buf.String())
}

func TestExecuteMatches(t *testing.T) {
	sess := newSession(t, map[string]string{
		"a.js": "if (a) { b(); }\n",
		"b.js": "x();\nif (c) {}\n",
	}, "a.js", "b.js")

	var buf bytes.Buffer
	count, err := newExecutor(&buf).Execute(sess, "if")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t,
		"  a.js:1:0\tif (a) { b(); }\n"+
			"  b.js:2:0\tif (c) {}\n"+
			"2 results\n",
		buf.String())
}

func TestExecuteCompileError(t *testing.T) {
	sess := newSession(t, map[string]string{"a.js": "if (a) {}"}, "a.js")

	var buf bytes.Buffer
	count, err := newExecutor(&buf).Execute(sess, "foo(")
	require.Error(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, buf.String())

	var cerr *CompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "foo(", cerr.Pattern)

	var serr *pattern.SyntaxError
	assert.True(t, errors.As(err, &serr))
}

func TestExecuteEngineError(t *testing.T) {
	sess := newSession(t, map[string]string{"a.js": "f(1, 2, 3);"}, "a.js")

	var buf bytes.Buffer
	_, err := newExecutor(&buf).Execute(sess, "call where [0][args] == 0")
	require.Error(t, err)

	var eerr *EngineError
	require.True(t, errors.As(err, &eerr))
	assert.NotContains(t, buf.String(), "results")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestExecuteWriteError(t *testing.T) {
	sess := newSession(t, map[string]string{"a.js": "if (a) {}"}, "a.js")

	e := NewExecutor(failingWriter{}, display.New(display.Config{}))
	_, err := e.Execute(sess, "if")

	var eerr *EngineError
	require.True(t, errors.As(err, &eerr))
	assert.Contains(t, err.Error(), "disk full")
}
