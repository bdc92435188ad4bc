package locale

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrNotFound is returned when the discovery root does not exist.
	ErrNotFound = errors.New("root directory not found")

	// ErrInvalidRoot is returned when the discovery root is not a directory.
	ErrInvalidRoot = errors.New("root is not a directory")

	// ErrInvalidTemplate is returned when a template does not hold exactly one placeholder.
	ErrInvalidTemplate = errors.New("template must contain exactly one " + Placeholder)

	// ErrInvalidCode is returned when a locale code is not a single path segment.
	ErrInvalidCode = errors.New("invalid locale code")
)

// Match is a file found on disk together with the locale code embedded in its path.
type Match struct {
	// Path is relative to the discovery root and slash-separated.
	Path   string `yaml:"path"`
	Locale string `yaml:"locale"`
}

// DiscoverOptions tunes the directory walk.
type DiscoverOptions struct {
	// SkipHidden ignores files and directories whose name starts with a dot.
	SkipHidden bool
}

// Discover walks every regular file below root and returns those whose
// root-relative path matches template, with the locale code recovered from
// the placeholder position. Results follow the walk's lexical order.
func Discover(fsys afero.Fs, root, template string, opts DiscoverOptions) ([]Match, error) {
	prefix, suffix, ok := Split(template)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTemplate, template)
	}

	info, err := fsys.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
	}

	if err != nil {
		return nil, fmt.Errorf("accessing root: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, root)
	}

	var matches []Match

	err = afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			// Unreadable entries cannot hold translations we could upload.
			return nil
		}

		if path != root && opts.SkipHidden && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		rel = filepath.ToSlash(rel)

		code, ok := Extract(rel, prefix, suffix)
		if !ok {
			return nil
		}

		matches = append(matches, Match{Path: rel, Locale: code})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return matches, nil
}
