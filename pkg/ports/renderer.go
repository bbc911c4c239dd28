package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image creation and processing operations.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data into an image.Image.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	// Used to downscale supersampled canvases before binarization.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides drawing operations for word art rendering.
type Canvas interface {
	// DrawText draws text with its anchor at the center of (x, y).
	DrawText(text string, x, y float64, style TextStyle)

	// MeasureText returns the width and height of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// FillPolygon fills the polygon described by pts.
	FillPolygon(pts []Point, c color.Color)

	// DrawImageRotated draws img centered on the canvas, rotated by
	// angleDeg degrees about the canvas center.
	DrawImageRotated(img image.Image, angleDeg float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
// An empty FontPath selects the renderer's builtin face.
type TextStyle struct {
	FontPath string
	FontSize float64
	Color    color.Color
}

// Point is a 2D point in canvas coordinates.
type Point struct {
	X float64
	Y float64
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	// FormatPNG is the default flat-file output format.
	FormatPNG ImageFormat = iota
	// FormatPBM is the device-native P4 bitmap format.
	FormatPBM
)

// String returns the file extension for the format, without the dot.
func (f ImageFormat) String() string {
	switch f {
	case FormatPBM:
		return "pbm"
	default:
		return "png"
	}
}
