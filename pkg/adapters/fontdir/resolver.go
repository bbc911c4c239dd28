// Package fontdir resolves font names to font files by searching an
// ordered list of directories.
package fontdir

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"

	"github.com/user/fightwords/pkg/ports"
)

// fontExtensions are tried when the identifier omits an extension.
var fontExtensions = []string{"", ".ttf", ".otf", ".ttc"}

// DefaultRoots returns the conventional font directories for the current
// user. Missing directories are simply skipped during search.
func DefaultRoots() []string {
	roots := []string{
		"/usr/share/fonts",
		"/usr/local/share/fonts",
		"/System/Library/Fonts",
		"/Library/Fonts",
		`C:\Windows\Fonts`,
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots,
			filepath.Join(home, ".fonts"),
			filepath.Join(home, ".local", "share", "fonts"),
		)
	}
	return roots
}

// Resolver implements ports.FontResolver by walking search roots.
type Resolver struct {
	roots  []string
	logger ports.Logger

	// parse validates a candidate font file. Overridable in tests.
	parse func(data []byte) error
}

// New creates a Resolver searching the given roots in order.
func New(roots []string, logger ports.Logger) *Resolver {
	return &Resolver{
		roots:  roots,
		logger: logger.WithComponent("fontdir"),
		parse: func(data []byte) error {
			_, err := truetype.Parse(data)
			return err
		},
	}
}

// Resolve returns the path of a font file matching name. A name that is
// already a path to a readable font file is returned as-is. Otherwise the
// search roots are walked, matching the file name case-insensitively with
// or without a font extension, and with spaces mapped to "", "-" and "_".
func (r *Resolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty font identifier: %w", ports.ErrFontNotFound)
	}

	if ok, err := r.usable(name); err == nil && ok {
		return name, nil
	}

	wanted := candidateNames(name)
	for _, root := range r.roots {
		path, err := r.searchRoot(root, wanted)
		if err != nil {
			r.logger.Debug("Skipping font root %s: %s", root, err)
			continue
		}
		if path != "" {
			r.logger.Debug("Resolved font %s to %s", name, path)
			return path, nil
		}
	}

	return "", fmt.Errorf("%q: %w", name, ports.ErrFontNotFound)
}

// searchRoot walks a single root looking for any of the wanted file names.
func (r *Resolver) searchRoot(root string, wanted map[string]bool) (string, error) {
	if _, err := os.Stat(root); err != nil {
		return "", err
	}

	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return nil
		}
		if !wanted[strings.ToLower(d.Name())] {
			return nil
		}
		if ok, err := r.usable(path); err != nil || !ok {
			r.logger.Debug("Ignoring unparseable font file %s", path)
			return nil
		}
		found = path
		return filepath.SkipAll
	})
	if err != nil {
		return "", err
	}
	return found, nil
}

// usable reports whether path points at a parseable font file.
func (r *Resolver) usable(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if err := r.parse(data); err != nil {
		return false, nil
	}
	return true, nil
}

// candidateNames returns the lowercased file names that count as a match
// for the identifier: the name itself and its space variants, each with
// every known font extension.
func candidateNames(name string) map[string]bool {
	base := strings.ToLower(filepath.Base(name))
	variants := []string{
		base,
		strings.ReplaceAll(base, " ", ""),
		strings.ReplaceAll(base, " ", "-"),
		strings.ReplaceAll(base, " ", "_"),
	}

	wanted := make(map[string]bool)
	for _, v := range variants {
		for _, ext := range fontExtensions {
			wanted[v+ext] = true
		}
	}
	return wanted
}

// Ensure Resolver implements ports.FontResolver
var _ ports.FontResolver = (*Resolver)(nil)
