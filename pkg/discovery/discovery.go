// Package discovery enumerates candidate XML files under a root directory in
// a fully deterministic order.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// xmlExtension is the only file extension kept, compared case-insensitively.
const xmlExtension = "xml"

// WarnFunc receives non-fatal walk problems: unreadable entries, unresolved
// symlink targets, directories that disappear mid-scan.
type WarnFunc func(format string, args ...any)

// Scanner walks a directory tree and collects XML files.
type Scanner struct {
	root   string
	ignore *ignore.GitIgnore
	warn   WarnFunc
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithIgnore excludes paths matching gitignore-style rules.
func WithIgnore(matcher *ignore.GitIgnore) Option {
	return func(s *Scanner) {
		s.ignore = matcher
	}
}

// WithWarnFunc routes walk warnings to fn instead of discarding them.
func WithWarnFunc(fn WarnFunc) Option {
	return func(s *Scanner) {
		s.warn = fn
	}
}

// NewScanner creates a Scanner rooted at root.
func NewScanner(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root: root,
		warn: func(string, ...any) {},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Discover walks the tree under the root, following symbolic links, and
// returns every readable file with extension "xml" (case-insensitive).
// The result is sorted by a normalized form of each path so that two runs
// over an unchanged tree, or equivalent paths written with different
// separator repetition, always produce the same order. The returned strings
// keep their original spelling.
//
// Discover never fails hard: entries that cannot be resolved or read are
// skipped with a warning, and a directory that errors mid-walk contributes
// what was collected before the error.
func (s *Scanner) Discover() []string {
	visited := make(map[string]struct{})

	var files []string

	s.walk(s.root, visited, &files)

	sort.SliceStable(files, func(i, j int) bool {
		return sortKey(files[i]) < sortKey(files[j])
	})

	return files
}

func (s *Scanner) walk(dir string, visited map[string]struct{}, files *[]string) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		s.warn("skipping %s: cannot resolve directory: %v", dir, err)

		return
	}

	if _, seen := visited[resolved]; seen {
		s.warn("skipping %s: directory already visited (symlink cycle)", dir)

		return
	}

	visited[resolved] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.warn("skipping %s: %v", dir, err)

		return
	}

	for _, entry := range entries {
		name := entry.Name()

		// os.ReadDir never yields the pseudo-entries, but the walk must not
		// descend into them if a caller-constructed path smuggles them in.
		if name == "." || name == ".." {
			continue
		}

		path := joinPreserving(dir, name)

		if s.ignored(path) {
			continue
		}

		// Stat follows symlinks, so a link to a directory is walked and a
		// link to a file is treated as that file.
		info, err := os.Stat(path)
		if err != nil {
			s.warn("skipping %s: cannot resolve entry: %v", path, err)

			continue
		}

		if info.IsDir() {
			s.walk(path, visited, files)

			continue
		}

		if !hasXMLExtension(name) {
			continue
		}

		if !info.Mode().IsRegular() {
			s.warn("skipping %s: not a regular file", path)

			continue
		}

		probe, err := os.Open(path)
		if err != nil {
			s.warn("skipping %s: not readable: %v", path, err)

			continue
		}

		_ = probe.Close()

		*files = append(*files, path)
	}
}

func (s *Scanner) ignored(path string) bool {
	if s.ignore == nil {
		return false
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}

	return s.ignore.MatchesPath(rel)
}

func hasXMLExtension(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")

	return strings.ToLower(ext) == xmlExtension
}

// joinPreserving appends name to dir without cleaning dir, so the returned
// paths keep the caller's spelling of the root.
func joinPreserving(dir, name string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) || strings.HasSuffix(dir, "/") {
		return dir + name
	}

	return dir + string(os.PathSeparator) + name
}

// sortKey normalizes a path for ordering only: leading "./" prefixes are
// stripped, OS separators map to "/", and separator runs collapse to one.
func sortKey(path string) string {
	key := filepath.ToSlash(path)

	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}

	for strings.HasPrefix(key, "./") {
		key = key[2:]
	}

	return key
}
