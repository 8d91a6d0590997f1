package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandInputs resolves file paths and doublestar globs to a sorted list of
// files, dropping those matching any exclude pattern. Literal paths that do
// not exist are an error; globs matching nothing are not.
func ExpandInputs(patterns, exclude []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, fmt.Errorf("input %s: %w", pattern, err)
			}
			if !info.IsDir() {
				add(pattern)
				continue
			}
			pattern = filepath.Join(pattern, "**", "*.{css,html,htm,js,mjs,ts}")
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	out := files[:0]
	for _, file := range files {
		excluded, err := matchesAny(exclude, file)
		if err != nil {
			return nil, err
		}
		if !excluded {
			out = append(out, file)
		}
	}
	slices.Sort(out)
	return out, nil
}

func matchesAny(patterns []string, path string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.PathMatch(filepath.Clean(pattern), path)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %s: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func hasMeta(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
