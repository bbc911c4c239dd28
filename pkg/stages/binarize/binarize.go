// Package binarize implements the two-tone conversion stage.
package binarize

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/user/fightwords/pkg/pipeline"
	"github.com/user/fightwords/pkg/ports"
)

// Palette layout: index 0 is background, index 1 is foreground. With the
// normal polarity background is white and foreground (glyph strokes) is
// black; negate swaps the colors, never the indices.
var (
	normalPalette = color.Palette{color.White, color.Black}
	negatePalette = color.Palette{color.Black, color.White}
)

// Stage converts a grayscale canvas to a strict two-color image.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new binarize stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("binarize"),
	}
}

// Execute downsamples the canvas to the target dimensions when it was
// supersampled, then cuts it to two tones: a hard threshold by default, or
// Floyd-Steinberg error diffusion when Dither is set.
func (s *Stage) Execute(ctx context.Context, input pipeline.BinarizeInput) (pipeline.BinarizeResult, error) {
	if input.Image == nil {
		return pipeline.BinarizeResult{}, fmt.Errorf("binarize: nil source image")
	}
	if input.TargetWidth <= 0 || input.TargetHeight <= 0 {
		return pipeline.BinarizeResult{}, fmt.Errorf("binarize: invalid target %dx%d", input.TargetWidth, input.TargetHeight)
	}

	threshold := input.Threshold
	if threshold == 0 {
		threshold = pipeline.DefaultThreshold
	}
	s.logger.Debug("Binarizing %q with threshold %d", input.Word, threshold)

	gray := input.Image
	b := gray.Bounds()
	if b.Dx() != input.TargetWidth || b.Dy() != input.TargetHeight {
		resized := s.renderer.ResizeImage(gray, input.TargetWidth, input.TargetHeight)
		gray = pipeline.ToGray(resized)
	}

	var out *image.Paletted
	if input.Dither {
		out = ditherFloydSteinberg(gray, input.Negate)
	} else {
		out = threshold2(gray, threshold, input.Negate)
	}

	if s.sink.Enabled() {
		s.sink.SaveBinarized(input.Word, out)
	}

	return pipeline.BinarizeResult{Image: out}, nil
}

// threshold2 cuts the canvas at the threshold: intensities at or above it
// become background (index 0), below become foreground (index 1).
func threshold2(src *image.Gray, threshold uint8, negate bool) *image.Paletted {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewPaletted(image.Rect(0, 0, w, h), paletteFor(negate))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if src.GrayAt(b.Min.X+x, b.Min.Y+y).Y < threshold {
				out.SetColorIndex(x, y, 1)
			}
		}
	}
	return out
}

// Negate returns a copy with swapped palette colors. Applying it twice
// yields an image identical to the original.
func Negate(src *image.Paletted) *image.Paletted {
	out := image.NewPaletted(src.Bounds(), paletteFor(!isNegated(src.Palette)))
	copy(out.Pix, src.Pix)
	return out
}

func paletteFor(negate bool) color.Palette {
	if negate {
		return negatePalette
	}
	return normalPalette
}

func isNegated(p color.Palette) bool {
	if len(p) != 2 {
		return false
	}
	r, g, bl, _ := p[0].RGBA()
	return r == 0 && g == 0 && bl == 0
}
