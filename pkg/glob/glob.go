// Package glob provides glob pattern matching with `**` support, both
// against plain names and against an afero filesystem.
package glob

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/kitmi/k-utils/pkg/errors"
)

// Match reports whether a name matches a glob pattern. Patterns use `/`
// separators and support `*`, `?`, character classes, `{alt,ernates}`,
// and `**` for any number of path segments.
func Match(pattern, name string) (bool, error) {
	ok, err := doublestar.Match(pattern, name)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrBadPattern, "invalid glob pattern %q", pattern)
	}
	return ok, nil
}

// FilterNames returns the subset of names matching the pattern, in input
// order.
func FilterNames(pattern string, names []string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Newf(errors.ErrBadPattern, "invalid glob pattern %q", pattern)
	}
	var out []string
	for _, name := range names {
		if ok, _ := doublestar.Match(pattern, name); ok {
			out = append(out, name)
		}
	}
	return out, nil
}

// Find walks a filesystem rooted at dir and returns the paths (relative
// to dir, `/`-separated) matching the pattern.
func Find(fsys afero.Fs, dir, pattern string) ([]string, error) {
	if dir != "" && dir != "." {
		fsys = afero.NewBasePathFs(fsys, dir)
	}

	matches, err := doublestar.Glob(afero.NewIOFS(fsys), pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBadPattern, "invalid glob pattern %q", pattern)
	}
	return matches, nil
}
