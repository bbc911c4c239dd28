// Package rasterize implements the text rendering stage.
package rasterize

import (
	"context"
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/user/fightwords/pkg/pipeline"
	"github.com/user/fightwords/pkg/ports"
)

// Reference display height the size constants are expressed against.
// Working canvases are scaled relative to it, so supersampled runs keep
// the same proportions.
const referenceHeight = 64.0

const (
	fitShrinkFactor = 0.85
	fitMaxAttempts  = 5
	outlineWidth    = 2.0 // at reference height
)

// Stage renders a single word into a grayscale canvas.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new rasterize stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("rasterize"),
	}
}

// Execute renders input.Word centered on a Width x Height canvas, sized to
// roughly fill it, with a black outline around white strokes. The word is
// drawn on an oversized square first so the optional rotation never clips
// against the working edges.
func (s *Stage) Execute(ctx context.Context, input pipeline.RasterizeInput) (pipeline.RasterizeResult, error) {
	result := pipeline.RasterizeResult{}

	if input.Word == "" {
		return result, fmt.Errorf("rasterize: empty word")
	}
	if input.Width <= 0 || input.Height <= 0 {
		return result, fmt.Errorf("rasterize: invalid dimensions %dx%d", input.Width, input.Height)
	}

	rng := input.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	w := float64(input.Width)
	h := float64(input.Height)
	scale := h / referenceHeight

	// Oversized square working canvas, background white.
	side := input.Width
	if input.Height > side {
		side = input.Height
	}
	side *= 2
	canvas := s.renderer.CreateCanvas(side, side, color.White)
	cx := float64(side) / 2
	cy := float64(side) / 2

	if input.Starburst {
		drawStarburst(canvas, cx, cy, 20*scale, float64(side)/4, rng)
	}

	style := ports.TextStyle{
		FontPath: input.FontPath,
		FontSize: baseFontSize(input.Word, w-20*scale, h-20*scale, scale, rng),
		Color:    color.White,
	}
	s.logger.Debug("Rendering %q at size %.0f", input.Word, style.FontSize)

	// Shrink until the word fits the working area with a margin, or give
	// up and allow clipping.
	tw, th := canvas.MeasureText(input.Word, style)
	for attempts := fitMaxAttempts; attempts > 0 && (tw > w-10*scale || th > h-10*scale); attempts-- {
		style.FontSize *= fitShrinkFactor
		tw, th = canvas.MeasureText(input.Word, style)
	}
	if tw > w-10*scale || th > h-10*scale {
		result.Clipped = true
		s.logger.Warn("Word %q does not fit even at minimum size, clipping", input.Word)
	}

	// Small random position offset, bounded so the word stays on screen.
	x := cx + randomOffset(rng, 10*scale, (w-tw)/4)
	y := cy + randomOffset(rng, 8*scale, (h-th)/4)

	drawOutlined(canvas, input.Word, x, y, style, outlineWidth*scale)

	angle := 0.0
	if input.MaxRotationDeg > 0 {
		angle = (rng.Float64()*2 - 1) * input.MaxRotationDeg
	}

	// Rotate and crop back to the working dimensions in one draw.
	final := s.renderer.CreateCanvas(input.Width, input.Height, color.White)
	final.DrawImageRotated(canvas.ToImage(), angle)

	result.Image = pipeline.ToGray(final.ToImage())
	result.FontSize = style.FontSize

	if s.sink.Enabled() {
		s.sink.SaveRasterized(input.Word, result.Image)
	}

	return result, nil
}

// baseFontSize picks a starting size from the word length: short words
// like "POW!" get to fill most of the height, long ones start smaller.
// A +-20% jitter varies output across runs.
func baseFontSize(word string, maxWidth, maxHeight, scale float64, rng *rand.Rand) float64 {
	n := len([]rune(word))
	if n < 1 {
		n = 1
	}

	var size float64
	switch {
	case n <= 4:
		size = minf(maxWidth/float64(n)*3, maxHeight*0.7)
	case n <= 7:
		size = minf(maxWidth/float64(n)*2.5, maxHeight*0.6)
	default:
		size = minf(maxWidth/float64(n)*2, maxHeight*0.5)
	}

	size = clampf(size, 12*scale, 64*scale)
	size *= 0.8 + rng.Float64()*0.4
	return clampf(size, 12*scale, 64*scale)
}

// randomOffset draws a uniform offset in +-min(bound, slack), never negative.
func randomOffset(rng *rand.Rand, bound, slack float64) float64 {
	limit := minf(bound, slack)
	if limit <= 0 {
		return 0
	}
	return (rng.Float64()*2 - 1) * limit
}

// drawOutlined draws the word in white with a black outline, produced by
// repeating the draw at every offset within the outline radius.
func drawOutlined(canvas ports.Canvas, word string, x, y float64, style ports.TextStyle, width float64) {
	ow := int(width)
	if ow < 1 {
		ow = 1
	}

	outline := style
	outline.Color = color.Black
	for dx := -ow; dx <= ow; dx++ {
		for dy := -ow; dy <= ow; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			canvas.DrawText(word, x+float64(dx), y+float64(dy), outline)
		}
	}
	canvas.DrawText(word, x, y, style)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
