// Package walker traverses a music library, honoring hidden-file
// visibility and per-directory ignore files.
package walker

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WalkFunc receives each candidate file, or a walk error for a path
// that could not be visited. The walk always continues.
type WalkFunc func(path string, err error)

// Walker yields regular files under a root directory. Hidden entries
// (dot-prefixed) are skipped unless Hidden is set. Each directory may
// contain an ignore file (IgnoreFile, e.g. ".lrcsyncignore") whose glob
// patterns exclude matching entries in that directory's subtree.
type Walker struct {
	Hidden     bool
	IgnoreFile string
}

// Walk visits every file under root in lexical order. Errors opening a
// directory or file are passed to fn and the walk moves on.
func (w *Walker) Walk(root string, fn WalkFunc) error {
	rules := map[string][]string{}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fn(path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && !w.Hidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if w.ignored(root, path, rules) {
				return filepath.SkipDir
			}
			return nil
		}

		if w.ignored(root, path, rules) {
			return nil
		}

		fn(path, nil)
		return nil
	})
}

// ignored checks the entry against the ignore files of every ancestor
// directory between root and the entry itself.
func (w *Walker) ignored(root, path string, rules map[string][]string) bool {
	if w.IgnoreFile == "" {
		return false
	}

	name := filepath.Base(path)
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		for _, pattern := range w.loadRules(dir, rules) {
			if matched, err := filepath.Match(pattern, name); err == nil && matched {
				return true
			}
			if rel, err := filepath.Rel(dir, path); err == nil {
				if matched, err := filepath.Match(pattern, rel); err == nil && matched {
					return true
				}
			}
		}
		if dir == root || dir == filepath.Dir(dir) {
			break
		}
	}
	return false
}

// loadRules reads and caches the ignore file of one directory.
// Blank lines and #-comments are skipped.
func (w *Walker) loadRules(dir string, rules map[string][]string) []string {
	if cached, ok := rules[dir]; ok {
		return cached
	}

	var patterns []string
	f, err := os.Open(filepath.Join(dir, w.IgnoreFile))
	if err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			patterns = append(patterns, line)
		}
		f.Close()
	}

	rules[dir] = patterns
	return patterns
}
