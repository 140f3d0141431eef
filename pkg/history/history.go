// Package history keeps a bounded list of past queries in a plain-text
// file, one entry per line, oldest first.
//
// Example usage:
//
//	store := history.NewFileStore(".querly_history", 1000, logger.Default())
//	entries, err := store.Load()
//	...
//	if err := store.Append("call where name == 'eval'"); err != nil {
//	    log.Println(err)
//	}
package history

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/yorunoR/querly/pkg/logger"
)

// Store is an ordered, bounded list of history entries.
type Store interface {
	// Load replaces the buffer with the file contents.
	//
	// A missing file yields an empty history and no error. When the file
	// holds more than the maximum, only the newest entries are kept.
	Load() ([]string, error)

	// Append adds entry as the newest item, evicts the oldest items beyond
	// the maximum and rewrites the file.
	//
	// When the file cannot be written the buffer is left unchanged and the
	// error is returned.
	Append(entry string) error

	// Entries returns a copy of the buffer, oldest first.
	Entries() []string

	// Len returns the number of buffered entries.
	Len() int
}

// fileStore implements Store on top of a single file.
type fileStore struct {
	path    string
	max     int
	entries []string
	logger  logger.Logger
}

// NewFileStore creates a Store backed by path, holding at most max entries.
// max values below 1 are treated as 1.
func NewFileStore(path string, max int, log logger.Logger) Store {
	if max < 1 {
		max = 1
	}
	return &fileStore{
		path:   path,
		max:    max,
		logger: log,
	}
}

// Load implements Store.Load.
func (s *fileStore) Load() ([]string, error) {
	s.entries = nil

	// #nosec G304: history path comes from trusted config
	f, err := os.Open(s.path) // nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no history file", "path", s.path)
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to open history file")
	}
	defer f.Close()

	entries, err := readEntries(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read history file")
	}

	if len(entries) > s.max {
		entries = entries[len(entries)-s.max:]
	}
	s.entries = entries

	s.logger.Debug("history loaded", "path", s.path, "entries", len(entries))
	return s.Entries(), nil
}

// Append implements Store.Append.
func (s *fileStore) Append(entry string) error {
	next := make([]string, 0, len(s.entries)+1)
	next = append(next, s.entries...)
	next = append(next, entry)
	if over := len(next) - s.max; over > 0 {
		next = next[over:]
	}

	if err := writeAtomic(s.path, next); err != nil {
		s.logger.Warn("failed to save history", "path", s.path, "error", err)
		return err
	}

	s.entries = next
	return nil
}

// Entries implements Store.Entries.
func (s *fileStore) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len implements Store.Len.
func (s *fileStore) Len() int {
	return len(s.entries)
}

// readEntries splits r into lines of any length. Anything Append wrote
// must read back, so no line limit applies.
func readEntries(r *bufio.Reader) ([]string, error) {
	var entries []string
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			entries = append(entries, strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// writeAtomic writes entries to a temporary file next to path and renames
// it over path. The temporary file is removed on every failure.
func writeAtomic(path string, entries []string) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create history temp file")
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, e := range entries {
		if _, err = w.WriteString(e); err != nil {
			return errors.Wrap(err, "failed to write history")
		}
		if err = w.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "failed to write history")
		}
	}
	if err = w.Flush(); err != nil {
		return errors.Wrap(err, "failed to write history")
	}
	if err = tmp.Chmod(0600); err != nil {
		return errors.Wrap(err, "failed to set history file mode")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close history temp file")
	}
	if err = os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "failed to replace history file")
	}

	return nil
}
