package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// Prompt precedes every input line.
const Prompt = "> "

// ErrInterrupt is returned by LineReader.Readline when the user presses
// Ctrl-C. The current line is discarded.
var ErrInterrupt = errors.New("interrupted")

// LineReader reads console input one line at a time.
type LineReader interface {
	// Readline returns the next line without its terminator.
	// It returns io.EOF at end of input and ErrInterrupt on Ctrl-C.
	Readline() (string, error)

	// AddHistory makes entry available for recall.
	AddHistory(entry string) error

	// Close releases the terminal.
	Close() error
}

// NewLineReader returns a readline-backed reader when in is a terminal,
// and a plain buffered reader otherwise.
func NewLineReader(in *os.File, out io.Writer, historySize int) (LineReader, error) {
	if term.IsTerminal(int(in.Fd())) {
		return NewReadlineReader(in, out, historySize)
	}
	return NewPlainReader(in, out), nil
}

// readlineReader implements LineReader with github.com/chzyer/readline.
type readlineReader struct {
	rl *readline.Instance
}

// NewReadlineReader creates an interactive reader with line editing,
// in-memory recall of up to historySize entries and command completion.
func NewReadlineReader(in io.ReadCloser, out io.Writer, historySize int) (LineReader, error) {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("find "),
		readline.PcItem("reload!"),
		readline.PcItem("quit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 Prompt,
		HistoryLimit:           historySize,
		DisableAutoSaveHistory: true,
		AutoComplete:           completer,
		InterruptPrompt:        "^C",
		EOFPrompt:              "quit",
		Stdin:                  in,
		Stdout:                 out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize line editor: %w", err)
	}

	return &readlineReader{rl: rl}, nil
}

// Readline implements LineReader.Readline.
func (r *readlineReader) Readline() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupt
	}
	return line, err
}

// AddHistory implements LineReader.AddHistory.
func (r *readlineReader) AddHistory(entry string) error {
	return r.rl.SaveHistory(entry)
}

// Close implements LineReader.Close.
func (r *readlineReader) Close() error {
	return r.rl.Close()
}

// plainReader implements LineReader over any io.Reader. It is used for
// pipes and tests, prints the prompt itself and keeps no recall buffer.
type plainReader struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

// NewPlainReader creates a LineReader that prints Prompt to out and reads
// lines from in.
func NewPlainReader(in io.Reader, out io.Writer) LineReader {
	return &plainReader{in: bufio.NewReader(in), out: out}
}

// Readline implements LineReader.Readline.
func (r *plainReader) Readline() (string, error) {
	if r.eof {
		return "", io.EOF
	}

	fmt.Fprint(r.out, Prompt)

	line, err := r.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		r.eof = true
		if line == "" {
			return "", io.EOF
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// AddHistory implements LineReader.AddHistory.
func (r *plainReader) AddHistory(string) error {
	return nil
}

// Close implements LineReader.Close.
func (r *plainReader) Close() error {
	return nil
}
