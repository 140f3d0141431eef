package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorunoR/querly/pkg/logger"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing"), 10, logger.Noop())

	entries, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0, store.Len())
}

func TestAppendEvictsOldestFirst(t *testing.T) {
	const max = 7
	path := filepath.Join(t.TempDir(), "history")
	store := NewFileStore(path, max, logger.Noop())

	var all []string
	for i := 0; i < max+5; i++ {
		entry := fmt.Sprintf("find entry-%d", i)
		all = append(all, entry)
		require.NoError(t, store.Append(entry))
		assert.LessOrEqual(t, store.Len(), max)
	}

	assert.Equal(t, all[len(all)-max:], store.Entries())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(all[len(all)-max:], "\n")+"\n", string(data))
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	entries := []string{"if", "console.log(...)", "call where name == 'eval'", "  spaced  "}

	first := NewFileStore(path, 100, logger.Noop())
	for _, e := range entries {
		require.NoError(t, first.Append(e))
	}

	second := NewFileStore(path, 100, logger.Noop())
	loaded, err := second.Load()
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
	assert.Equal(t, entries, second.Entries())
}

func TestLongEntrySurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	long := "find " + strings.Repeat("x", 2*1024*1024)

	first := NewFileStore(path, 10, logger.Noop())
	require.NoError(t, first.Append("first"))
	require.NoError(t, first.Append(long))

	second := NewFileStore(path, 10, logger.Noop())
	loaded, err := second.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "first", loaded[0])
	assert.Equal(t, long, loaded[1])

	require.NoError(t, second.Append("next"))

	third := NewFileStore(path, 10, logger.Noop())
	loaded, err = third.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "first", loaded[0])
	assert.Equal(t, "next", loaded[2])
}

func TestLoadWithoutTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("a\n\nb"), 0600))

	loaded, err := NewFileStore(path, 10, logger.Noop()).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b"}, loaded)
}

func TestLoadTrimsToMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\r\nd\ne\n"), 0600))

	store := NewFileStore(path, 3, logger.Noop())
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d", "e"}, loaded)

	require.NoError(t, store.Append("f"))
	assert.Equal(t, []string{"d", "e", "f"}, store.Entries())
}

func TestAppendFailureKeepsBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	store := NewFileStore(path, 10, logger.Noop())
	require.NoError(t, store.Append("kept"))

	// Pointing the store into a directory that does not exist makes the
	// temp file creation fail.
	store.(*fileStore).path = filepath.Join(dir, "missing", "history")

	err := store.Append("lost")
	require.Error(t, err)
	assert.Equal(t, []string{"kept"}, store.Entries())
}

func TestAppendLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "history"), 10, logger.Noop())

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(fmt.Sprintf("q%d", i)))
	}

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "history", files[0].Name())
}

func TestEntriesReturnsCopy(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "history"), 10, logger.Noop())
	require.NoError(t, store.Append("one"))

	entries := store.Entries()
	entries[0] = "changed"

	assert.Equal(t, []string{"one"}, store.Entries())
}
