package mocks

import (
	"image"
	"sync"

	"github.com/user/fightwords/pkg/ports"
)

// DebugSink is a recording mock implementation of ports.DebugSink.
type DebugSink struct {
	mu      sync.Mutex
	enabled bool

	Rasterized map[string]image.Image
	Distorted  map[string][]string // word -> distortion names in order
	Binarized  map[string]image.Image
	RunJSON    []byte
}

// NewDebugSink creates a mock sink that records saves when enabled.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:    enabled,
		Rasterized: map[string]image.Image{},
		Distorted:  map[string][]string{},
		Binarized:  map[string]image.Image{},
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveRasterized(word string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rasterized[word] = img
	return nil
}

func (m *DebugSink) SaveDistorted(word string, distortion string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Distorted[word] = append(m.Distorted[word], distortion)
	return nil
}

func (m *DebugSink) SaveBinarized(word string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Binarized[word] = img
	return nil
}

func (m *DebugSink) SaveRunJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
