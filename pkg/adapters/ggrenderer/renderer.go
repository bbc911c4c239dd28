// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/fightwords/pkg/adapters/pbm"
	"github.com/user/fightwords/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc}
}

// DecodeImage decodes image data into an image.Image.
func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	switch format {
	case ports.FormatPBM:
		return pbm.Decode(data)
	case ports.FormatPNG:
		return png.Decode(bytes.NewReader(data))
	default:
		img, _, err := image.Decode(bytes.NewReader(data))
		return img, err
	}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat) ([]byte, error) {
	switch format {
	case ports.FormatPBM:
		return pbm.Encode(img)
	case ports.FormatPNG:
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
}

// setFace loads the style's font face, falling back to the gg builtin face
// when the path is empty or the file cannot be loaded.
func (c *Canvas) setFace(style ports.TextStyle) {
	if style.FontPath == "" {
		return
	}
	if err := c.dc.LoadFontFace(style.FontPath, style.FontSize); err != nil {
		// Fall back to the builtin face; the resolver already validated
		// the file, so this should not normally happen.
		return
	}
}

// DrawText draws text anchored at the center of (x, y).
func (c *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	c.setFace(style)
	c.dc.SetColor(style.Color)
	c.dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

// MeasureText returns the width and height of the text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	c.setFace(style)
	return c.dc.MeasureString(text)
}

// FillPolygon fills the polygon described by pts.
func (c *Canvas) FillPolygon(pts []ports.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	c.dc.SetColor(col)
	c.dc.NewSubPath()
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.dc.Fill()
}

// DrawImageRotated draws img centered on the canvas, rotated by angleDeg
// about the canvas center.
func (c *Canvas) DrawImageRotated(img image.Image, angleDeg float64) {
	c.dc.Push()
	defer c.dc.Pop()

	cx := float64(c.dc.Width()) / 2
	cy := float64(c.dc.Height()) / 2
	c.dc.RotateAbout(gg.Radians(angleDeg), cx, cy)
	c.dc.DrawImageAnchored(img, int(cx), int(cy), 0.5, 0.5)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
