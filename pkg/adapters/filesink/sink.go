// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/fightwords/pkg/ports"
	"github.com/user/fightwords/pkg/wordlist"
)

// Sink saves per-stage intermediate images to files under a base directory.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new file sink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveRasterized saves the grayscale canvas right after text rendering.
func (s *Sink) SaveRasterized(word string, img image.Image) error {
	return s.savePNG(word, "rasterized.png", img)
}

// SaveDistorted saves the canvas after a single distortion was applied.
func (s *Sink) SaveDistorted(word string, distortion string, img image.Image) error {
	return s.savePNG(word, fmt.Sprintf("distort-%s.png", distortion), img)
}

// SaveBinarized saves the final two-tone image.
func (s *Sink) SaveBinarized(word string, img image.Image) error {
	return s.savePNG(word, "binarized.png", img)
}

// SaveRunJSON saves the batch run summary as JSON.
func (s *Sink) SaveRunJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "run.json"), data)
}

func (s *Sink) savePNG(word, name string, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.baseDir, wordlist.SafeName(word), name)
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
