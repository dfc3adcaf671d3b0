package util

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar"
)

// Glob returns the entries below root that match the slash separated pattern. The pattern may
// contain "**" to match any number of directories. The matches are sorted and relative to root.
func Glob(root string, pattern string) ([]string, error) {
	abs, err := doublestar.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
	if err != nil {
		return nil, err
	}
	matches := make([]string, 0, len(abs))
	for _, m := range abs {
		rel, err := filepath.Rel(root, m)
		if err != nil {
			return nil, err
		}
		matches = append(matches, filepath.ToSlash(rel))
	}
	sort.Strings(matches)
	return matches, nil
}
