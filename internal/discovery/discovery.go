// Package discovery finds notes under a directory by matching glob patterns
// from config.
package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options controls how file discovery behaves.
type Options struct {
	// Patterns is the list of doublestar patterns to match files against,
	// relative to BaseDir. An empty or nil list means no files are
	// discovered.
	Patterns []string

	// BaseDir is the directory to walk from. Defaults to "." if empty.
	BaseDir string

	// Hidden includes files and directories whose names start with a dot.
	// Tool directories such as .git and .obsidian are skipped otherwise.
	Hidden bool

	// Skip, if set, is consulted with each candidate path; returning true
	// leaves the file out.
	Skip func(path string) bool
}

// Discover walks BaseDir and returns files matching any of the configured
// glob patterns. Results are deduplicated and sorted.
func Discover(opts Options) ([]string, error) {
	validPatterns := validatePatterns(opts.Patterns)
	if len(validPatterns) == 0 {
		return nil, nil
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = "."
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}

	w := &walker{
		baseDir:  baseDir,
		absBase:  absBase,
		patterns: validPatterns,
		opts:     opts,
		seen:     make(map[string]bool),
	}

	if err := filepath.WalkDir(absBase, w.visit); err != nil {
		return nil, err
	}

	sort.Strings(w.result)
	return w.result, nil
}

// validatePatterns returns patterns that are syntactically valid.
func validatePatterns(patterns []string) []string {
	valid := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if doublestar.ValidatePattern(p) {
			valid = append(valid, p)
		}
	}
	return valid
}

// walker holds state for the directory walk.
type walker struct {
	baseDir  string
	absBase  string
	patterns []string
	opts     Options
	seen     map[string]bool
	result   []string
}

// visit is the fs.WalkDirFunc callback.
func (w *walker) visit(path string, d fs.DirEntry, walkErr error) error {
	if walkErr != nil {
		return walkErr
	}

	rel, err := filepath.Rel(w.absBase, path)
	if err != nil || rel == "." {
		return nil
	}
	rel = filepath.ToSlash(rel)

	if !w.opts.Hidden && strings.HasPrefix(d.Name(), ".") {
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}

	if d.IsDir() {
		return nil
	}

	// Report paths relative to the caller's base so output stays short.
	out := filepath.Join(w.baseDir, filepath.FromSlash(rel))
	if w.matchesAny(rel) && (w.opts.Skip == nil || !w.opts.Skip(out)) {
		w.addFile(out)
	}
	return nil
}

// matchesAny returns true if rel matches any of the configured patterns.
func (w *walker) matchesAny(rel string) bool {
	for _, p := range w.patterns {
		matched, err := doublestar.Match(p, rel)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// addFile adds a file to the result set if not already seen.
func (w *walker) addFile(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	if !w.seen[absPath] {
		w.seen[absPath] = true
		w.result = append(w.result, path)
	}
}
