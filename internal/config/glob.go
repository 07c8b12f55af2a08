package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// ExpandGlobs expands log file paths and glob patterns into a sorted,
// de-duplicated list. Plain paths must exist; globs must match something.
// Globs support ** to match any number of directories.
func ExpandGlobs(fs afero.Fs, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no log files provided")
	}

	files := make([]string, 0, len(patterns))
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, pattern := range patterns {
		if !hasGlobMeta(pattern) {
			info, err := fs.Stat(pattern)
			if err != nil {
				return nil, fmt.Errorf("%s: not available: %w", pattern, err)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("%s: is a directory", pattern)
			}
			add(pattern)
			continue
		}

		matches, err := glob(fs, pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no matches for pattern %q", pattern)
		}
		for _, match := range matches {
			// Skip translation side files left by earlier runs.
			if strings.HasSuffix(match, TrimSuffix) {
				continue
			}
			add(match)
		}
	}

	sort.Strings(files)
	return files, nil
}

// TrimSuffix is appended to a log path to name its in-progress trimmed copy.
const TrimSuffix = ".trim.log"

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// glob walks the static prefix of pattern and matches every regular file
// below it against the remainder.
func glob(fs afero.Fs, pattern string) ([]string, error) {
	slashed := filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(slashed) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	base, rest := doublestar.SplitPattern(slashed)
	base = filepath.FromSlash(base)

	var matches []string
	err := afero.Walk(fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			// Unreadable entries and directories never match.
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(rest, filepath.ToSlash(rel)); ok {
			matches = append(matches, path)
		}
		return nil
	})
	return matches, err
}
