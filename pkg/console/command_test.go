package console

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"quit", Command{Kind: CommandQuit}},
		{"reload!", Command{Kind: CommandReload}},
		{"find if", Command{Kind: CommandFind, Pattern: "if"}},
		{"find  foo(...) ", Command{Kind: CommandFind, Pattern: " foo(...) "}},
		{"find call where name == 'x'", Command{Kind: CommandFind, Pattern: "call where name == 'x'"}},
		{"find", Command{Kind: CommandUnknown}},
		{"find ", Command{Kind: CommandUnknown}},
		{"", Command{Kind: CommandUnknown}},
		{" quit", Command{Kind: CommandUnknown}},
		{"quit!", Command{Kind: CommandUnknown}},
		{"reload", Command{Kind: CommandUnknown}},
		{"finder x", Command{Kind: CommandUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line))
		})
	}
}

func TestPlainReader(t *testing.T) {
	var out strings.Builder
	r := NewPlainReader(strings.NewReader("first\r\nsecond\nlast"), &out)

	for _, want := range []string{"first", "second", "last"} {
		line, err := r.Readline()
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}

	_, err := r.Readline()
	assert.ErrorIs(t, err, io.EOF)

	_, err = r.Readline()
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, strings.Repeat(Prompt, 3), out.String())
	assert.NoError(t, r.AddHistory("x"))
	assert.NoError(t, r.Close())
}
