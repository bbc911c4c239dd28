// Package distort implements the geometric distortion stage.
//
// Every transform is an inverse mapping: for each destination pixel the
// source position is computed and sampled, so the output canvas always has
// exactly the input's dimensions.
package distort

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/user/fightwords/pkg/pipeline"
	"github.com/user/fightwords/pkg/ports"
)

// background is the intensity used for pixels that map outside the source.
const background = 0xff

// Stage applies an ordered sequence of transforms to a rasterized canvas.
type Stage struct {
	sink   ports.DebugSink
	logger ports.Logger
}

// NewStage creates a new distort stage.
func NewStage(sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		sink:   sink,
		logger: logger.WithComponent("distort"),
	}
}

// Execute applies input.Sequence in order, each transform consuming the
// previous one's output. An empty sequence returns a copy of the source
// untouched. Magnitudes are drawn fresh from input.Rand per transform.
func (s *Stage) Execute(ctx context.Context, input pipeline.DistortInput) (pipeline.DistortResult, error) {
	if input.Image == nil {
		return pipeline.DistortResult{}, fmt.Errorf("distort: nil source image")
	}

	rng := input.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	img := pipeline.ToGray(input.Image)
	for _, d := range input.Sequence {
		select {
		case <-ctx.Done():
			return pipeline.DistortResult{}, ctx.Err()
		default:
		}

		s.logger.Debug("Applying %s distortion to %q", d, input.Word)
		img = s.apply(d, img, rng)

		if s.sink.Enabled() {
			s.sink.SaveDistorted(input.Word, d.String(), img)
		}
	}

	return pipeline.DistortResult{Image: img}, nil
}

// apply runs one transform with randomized magnitudes within its fixed,
// legibility-preserving range.
func (s *Stage) apply(d pipeline.Distortion, src *image.Gray, rng *rand.Rand) *image.Gray {
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	switch d {
	case pipeline.Shear:
		kx := uniform(rng, -0.25, 0.25)
		ky := uniform(rng, -0.15, 0.15)
		return Shear(src, kx, ky)

	case pipeline.Fisheye:
		cx := w/2 + uniform(rng, -w/6, w/6)
		cy := h/2 + uniform(rng, -h/6, h/6)
		strength := uniform(rng, 0.3, 0.9)
		radius := minf(w, h) * 0.7
		return Fisheye(src, cx, cy, strength, radius)

	case pipeline.Perspective:
		quad := randomQuad(rng, w, h, 0.18)
		return Perspective(src, quad)

	default:
		return src
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
