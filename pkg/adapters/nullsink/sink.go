// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/fightwords/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveRasterized does nothing.
func (s *Sink) SaveRasterized(word string, img image.Image) error {
	return nil
}

// SaveDistorted does nothing.
func (s *Sink) SaveDistorted(word string, distortion string, img image.Image) error {
	return nil
}

// SaveBinarized does nothing.
func (s *Sink) SaveBinarized(word string, img image.Image) error {
	return nil
}

// SaveRunJSON does nothing.
func (s *Sink) SaveRunJSON(data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
