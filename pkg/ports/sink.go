package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate pipeline results.
// It allows inspecting each stage of a word's generation.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveRasterized saves the grayscale canvas right after text rendering.
	SaveRasterized(word string, img image.Image) error

	// SaveDistorted saves the canvas after a single distortion was applied.
	SaveDistorted(word string, distortion string, img image.Image) error

	// SaveBinarized saves the final two-tone image.
	SaveBinarized(word string, img image.Image) error

	// SaveRunJSON saves the batch run summary as JSON.
	SaveRunJSON(data []byte) error
}
