// Package discovery expands configured source paths into the ordered list
// of script files a session is built from.
//
// A file path is taken as is. A directory is walked recursively in
// lexical order, keeping files whose extension is configured and skipping
// hidden directories and configured directory names (node_modules by
// default).
//
// Example usage:
//
//	d := discovery.New(discovery.Options{Extensions: []string{".js"}}, logger.Default())
//	for _, target := range d.Discover([]string{"src", "~/lib/app.js"}) {
//	    if target.Err != nil {
//	        fmt.Printf("skip %s: %v\n", target.Path, target.Err)
//	        continue
//	    }
//	    fmt.Println(target.Path)
//	}
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Logger defines the logging interface used by the discovery package.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Target is one candidate script file.
//
// Err is set when the path could not be inspected. Such targets are still
// returned so the caller can report them as load failures.
type Target struct {
	// Path is the file path, with ~ expanded.
	Path string

	// Err is the stat or walk error for this path, if any.
	Err error
}

// Options controls which files are discovered.
type Options struct {
	// Extensions lists accepted file extensions, including the dot.
	Extensions []string

	// SkipDirs lists directory names never descended into.
	SkipDirs []string
}

// Discoverer provides methods for discovering script files.
type Discoverer interface {
	// Discover expands paths into script targets.
	//
	// Parameters:
	//   - paths: Files or directories, in the order they should be loaded
	//
	// Returns targets in path order; within a directory, in lexical order.
	// A file reached through more than one path is returned once.
	Discover(paths []string) []Target

	// Matches reports whether path has a script extension.
	Matches(path string) bool
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	extensions map[string]bool
	skipDirs   map[string]bool
	logger     Logger
}

// New creates a new Discoverer instance.
//
// Parameters:
//   - opts: Extensions and skipped directory names
//   - logger: Logger instance for diagnostic messages
//
// Returns a configured Discoverer.
func New(opts Options, logger Logger) Discoverer {
	d := &discoverer{
		extensions: make(map[string]bool, len(opts.Extensions)),
		skipDirs:   make(map[string]bool, len(opts.SkipDirs)),
		logger:     logger,
	}
	for _, ext := range opts.Extensions {
		d.extensions[strings.ToLower(ext)] = true
	}
	for _, dir := range opts.SkipDirs {
		d.skipDirs[dir] = true
	}
	return d
}

// Discover implements Discoverer.Discover.
func (d *discoverer) Discover(paths []string) []Target {
	var targets []Target
	seen := make(map[string]bool)

	add := func(t Target) {
		key := filepath.Clean(t.Path)
		if seen[key] {
			d.logger.Debug("duplicate script path, skipping", "path", t.Path)
			return
		}
		seen[key] = true
		targets = append(targets, t)
	}

	for _, p := range paths {
		expanded := expandHome(p)

		info, err := os.Stat(expanded)
		if err != nil {
			d.logger.Warn("cannot stat source path", "path", expanded, "error", err)
			add(Target{Path: expanded, Err: fmt.Errorf("%w: %v", ErrInvalidPath, err)})
			continue
		}

		if !info.IsDir() {
			// Explicit files are loaded whatever their extension.
			add(Target{Path: expanded})
			continue
		}

		for _, t := range d.walk(expanded) {
			add(t)
		}
	}

	d.logger.Debug("discovery complete", "paths", len(paths), "targets", len(targets))
	return targets
}

// Matches implements Discoverer.Matches.
func (d *discoverer) Matches(path string) bool {
	return d.extensions[strings.ToLower(filepath.Ext(path))]
}

// walk collects script files below root in lexical order.
func (d *discoverer) walk(root string) []Target {
	var targets []Target

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			d.logger.Warn("failed to walk path", "path", path, "error", err)
			targets = append(targets, Target{Path: path, Err: err})
			if entry != nil && entry.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path != root && d.skipDir(entry.Name()) {
				d.logger.Debug("skipping directory", "path", path)
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		if d.Matches(path) {
			targets = append(targets, Target{Path: path})
		}
		return nil
	})
	if err != nil {
		targets = append(targets, Target{Path: root, Err: err})
	}

	return targets
}

// skipDir reports whether a directory with the given name is excluded.
func (d *discoverer) skipDir(name string) bool {
	return d.skipDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// expandHome expands ~ in file paths to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	return filepath.Join(homeDir, path[2:])
}
