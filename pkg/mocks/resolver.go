package mocks

import (
	"fmt"

	"github.com/user/fightwords/pkg/ports"
)

// FontResolver is a mock implementation of ports.FontResolver backed by a
// name-to-path map; unknown names fail with ports.ErrFontNotFound.
type FontResolver struct {
	Paths map[string]string

	ResolveFunc func(name string) (string, error)
}

func (m *FontResolver) Resolve(name string) (string, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(name)
	}
	if path, ok := m.Paths[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("%q: %w", name, ports.ErrFontNotFound)
}

var _ ports.FontResolver = (*FontResolver)(nil)
