package pipeline

import (
	"fmt"
	"image"
	"image/draw"
	"math/rand"
	"strings"

	"github.com/user/fightwords/pkg/ports"
)

// =============================================================================
// Distortions
// =============================================================================

// Distortion identifies a geometric transform applied to a rasterized canvas.
type Distortion int

const (
	// Shear offsets pixel rows and columns proportionally to their position.
	Shear Distortion = iota
	// Fisheye bulges the canvas radially around a near-center point.
	Fisheye
	// Perspective warps the canvas with a 4-corner projective transform.
	Perspective
)

// String returns the name used in configuration and output file names.
func (d Distortion) String() string {
	switch d {
	case Shear:
		return "shear"
	case Fisheye:
		return "fisheye"
	case Perspective:
		return "perspective"
	default:
		return "unknown"
	}
}

// DefaultDistortions returns the default sequence: all three transforms,
// applied shear first.
func DefaultDistortions() []Distortion {
	return []Distortion{Shear, Fisheye, Perspective}
}

// ParseDistortions parses a comma-separated distortion list. An empty
// string yields an empty sequence, which is a valid pass-through.
func ParseDistortions(s string) ([]Distortion, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var seq []Distortion
	for _, part := range strings.Split(s, ",") {
		switch strings.TrimSpace(part) {
		case "shear":
			seq = append(seq, Shear)
		case "fisheye":
			seq = append(seq, Fisheye)
		case "perspective":
			seq = append(seq, Perspective)
		default:
			return nil, fmt.Errorf("invalid distortion %q (valid: shear, fisheye, perspective)", strings.TrimSpace(part))
		}
	}
	return seq, nil
}

// DistortionTag returns the sequence as a file name fragment, e.g.
// "shear-fisheye". An empty sequence yields "plain".
func DistortionTag(seq []Distortion) string {
	if len(seq) == 0 {
		return "plain"
	}
	names := make([]string, len(seq))
	for i, d := range seq {
		names[i] = d.String()
	}
	return strings.Join(names, "-")
}

// =============================================================================
// Rasterize Stage Types
// =============================================================================

// RasterizeInput contains parameters for rendering a single word.
type RasterizeInput struct {
	Word     string // Non-empty word to render
	FontPath string // Resolved font file path; empty selects the builtin face
	Width    int    // Working canvas width (target width x supersample)
	Height   int    // Working canvas height

	Starburst      bool    // Draw the randomized starburst background
	MaxRotationDeg float64 // Rotation drawn uniformly from +- this; 0 disables

	Rand *rand.Rand // Entropy source for size jitter, offsets and rotation
}

// RasterizeResult contains the rendered grayscale canvas.
type RasterizeResult struct {
	Image    *image.Gray
	FontSize float64 // Final font size after the fit search
	Clipped  bool    // True when even the minimum size overflowed the canvas
}

// =============================================================================
// Distort Stage Types
// =============================================================================

// DistortInput contains the source canvas and the transform sequence.
type DistortInput struct {
	Image    *image.Gray
	Sequence []Distortion // Applied in order; empty is a literal pass-through
	Word     string       // For debug sink file naming only
	Rand     *rand.Rand   // Entropy source for per-transform magnitudes
}

// DistortResult contains the distorted canvas, same dimensions as the input.
type DistortResult struct {
	Image *image.Gray
}

// =============================================================================
// Binarize Stage Types
// =============================================================================

// BinarizeInput contains parameters for two-tone conversion.
type BinarizeInput struct {
	Image        *image.Gray
	TargetWidth  int  // Final output width; downscaled to when supersampled
	TargetHeight int  // Final output height
	Threshold    uint8 // Intensities below this become foreground
	Dither       bool // Floyd-Steinberg error diffusion instead of a hard cut
	Negate       bool // Swap foreground/background polarity
	Word         string
}

// DefaultThreshold is the midpoint of the 8-bit intensity range.
const DefaultThreshold uint8 = 128

// BinarizeResult contains the two-color paletted image.
type BinarizeResult struct {
	Image *image.Paletted
}

// =============================================================================
// Export Stage Types
// =============================================================================

// ExportInput contains the finished image and its destination.
type ExportInput struct {
	Image  image.Image
	Format ports.ImageFormat
	Path   string
}

// ExportResult reports what was written.
type ExportResult struct {
	Path  string
	Bytes int
}

// ToGray converts any image to 8-bit grayscale, copying the pixels.
func ToGray(img image.Image) *image.Gray {
	// Fast path only for zero-based, densely packed sources; a
	// SubImage-derived Gray has a wider stride and must go through the
	// generic draw below.
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) && g.Stride == g.Bounds().Dx() {
		out := image.NewGray(g.Bounds())
		copy(out.Pix, g.Pix)
		return out
	}
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
