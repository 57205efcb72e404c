// Package ignore discovers source files for one extraction run: glob
// expansion against configured include/ignore patterns, plus a
// memory-mapped file cache for fast repeated reads in watch mode.
package ignore

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultExcludes are always applied in addition to user-supplied ignore
// globs, mirroring the engine's documented default of skipping
// node_modules regardless of configuration (§4.9).
var defaultExcludes = []string{"**/node_modules/**", "**/.git/**"}

// Discover walks rootDir, returning a sorted, absolute-path list of files
// matching include and not matching ignore (plus the always-on defaults).
func Discover(rootDir string, include, exclude []string) ([]string, error) {
	for _, p := range include {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid input pattern: %s", p)
		}
	}
	allExclude := append(append([]string{}, defaultExcludes...), exclude...)
	for _, p := range allExclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern: %s", p)
		}
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // keep walking past unreadable entries
		}

		relPath, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range allExclude {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if len(include) > 0 {
			matched := false
			for _, pattern := range include {
				if m, _ := doublestar.PathMatch(pattern, relPath); m {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
