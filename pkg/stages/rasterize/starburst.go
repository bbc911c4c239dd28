package rasterize

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/user/fightwords/pkg/ports"
)

// drawStarburst fills randomized gray spikes radiating from (cx, cy).
// Spike count, angles, radii and the gray fill intensity all vary.
func drawStarburst(canvas ports.Canvas, cx, cy, innerRadius, outerRadius float64, rng *rand.Rand) {
	points := 12 + rng.Intn(9)
	step := 2 * math.Pi / float64(points)

	for i := 0; i < points; i++ {
		angle := float64(i)*step + (rng.Float64()*0.2 - 0.1)

		outerVar := 0.7 + rng.Float64()*0.6
		innerVar := 0.6 + rng.Float64()*0.6

		outer := ports.Point{
			X: cx + outerRadius*outerVar*math.Cos(angle),
			Y: cy + outerRadius*outerVar*math.Sin(angle),
		}
		inner := ports.Point{
			X: cx + innerRadius*innerVar*math.Cos(angle+step/2),
			Y: cy + innerRadius*innerVar*math.Sin(angle+step/2),
		}

		gray := color.Gray{Y: uint8(160 + rng.Intn(41))}
		canvas.FillPolygon([]ports.Point{{X: cx, Y: cy}, outer, inner}, gray)
	}
}
