// Package mocks provides hand-written mock implementations of the ports
// for stage and orchestrator tests.
package mocks

import (
	"image"
	"image/color"

	"github.com/user/fightwords/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return NewCanvas(width, height)
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewRGBA(image.Rect(0, 0, 128, 64)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format)
	}
	return []byte("image-data"), nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// TextCall records a DrawText invocation on the mock canvas.
type TextCall struct {
	Text  string
	X, Y  float64
	Style ports.TextStyle
}

// Canvas is a mock implementation of ports.Canvas. Unless MeasureTextFunc
// is set, MeasureText reports 0.6 x FontSize per rune, FontSize tall.
type Canvas struct {
	Width  int
	Height int

	TextCalls    []TextCall
	PolygonCalls int
	RotateCalls  []float64

	MeasureTextFunc func(text string, style ports.TextStyle) (float64, float64)
	ToImageFunc     func() image.Image
}

// NewCanvas creates a mock canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{Width: width, Height: height}
}

func (m *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	m.TextCalls = append(m.TextCalls, TextCall{Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	if m.MeasureTextFunc != nil {
		return m.MeasureTextFunc(text, style)
	}
	return float64(len([]rune(text))) * style.FontSize * 0.6, style.FontSize
}

func (m *Canvas) FillPolygon(pts []ports.Point, c color.Color) {
	m.PolygonCalls++
}

func (m *Canvas) DrawImageRotated(img image.Image, angleDeg float64) {
	m.RotateCalls = append(m.RotateCalls, angleDeg)
}

func (m *Canvas) ToImage() image.Image {
	if m.ToImageFunc != nil {
		return m.ToImageFunc()
	}
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

var _ ports.Canvas = (*Canvas)(nil)
