package ports

import "errors"

// ErrFontNotFound is returned when a font identifier matches no loadable
// font file in any search location. The batch driver treats it as a
// per-combination warning, never as a fatal error.
var ErrFontNotFound = errors.New("font not found")

// FontResolver maps a font identifier (file path or installed font name)
// to a loadable font file path.
type FontResolver interface {
	// Resolve returns the path of a font file matching name.
	// The error wraps ErrFontNotFound when no match exists.
	Resolve(name string) (string, error)
}
