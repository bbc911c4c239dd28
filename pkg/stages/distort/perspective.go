package distort

import (
	"image"
	"math"
	"math/rand"
)

// Quad is the projected position of the canvas corners, in pixel
// coordinates, ordered top-left, top-right, bottom-right, bottom-left.
type Quad [4][2]float64

// rectQuad returns the undisplaced corner positions of a w x h canvas.
func rectQuad(w, h float64) Quad {
	return Quad{
		{0, 0},
		{w - 1, 0},
		{w - 1, h - 1},
		{0, h - 1},
	}
}

// randomQuad displaces each canvas corner by a bounded uniform offset, at
// most maxFrac of the respective dimension, keeping the word legible.
func randomQuad(rng *rand.Rand, w, h, maxFrac float64) Quad {
	q := rectQuad(w, h)
	for i := range q {
		q[i][0] += (rng.Float64()*2 - 1) * maxFrac * w
		q[i][1] += (rng.Float64()*2 - 1) * maxFrac * h
	}
	return q
}

// Perspective maps the canvas rectangle onto quad, simulating an off-axis
// view. It inverts the square-to-quad homography and samples the source
// bilinearly; destination pixels outside the quad become background.
func Perspective(src *image.Gray, quad Quad) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))

	inv, ok := invert(squareToQuad(quad))
	if !ok {
		// Degenerate quad; leave the canvas untouched.
		copy(dst.Pix, pixAligned(src).Pix)
		return dst
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u, v, z := applyHomography(inv, float64(x), float64(y))

			val := uint8(background)
			if z != 0 {
				u /= z
				v /= z
				if u >= 0 && u <= 1 && v >= 0 && v <= 1 {
					val = sampleBilinear(src, u*float64(w-1), v*float64(h-1))
				}
			}
			dst.Pix[y*dst.Stride+x] = val
		}
	}
	return dst
}

// homography is a row-major 3x3 projective transform matrix.
type homography [9]float64

// squareToQuad builds the homography mapping the unit square, corners in
// (u, v) order (0,0) (1,0) (1,1) (0,1), onto quad.
func squareToQuad(q Quad) homography {
	x0, y0 := q[0][0], q[0][1]
	x1, y1 := q[1][0], q[1][1]
	x2, y2 := q[2][0], q[2][1]
	x3, y3 := q[3][0], q[3][1]

	sx := x0 - x1 + x2 - x3
	sy := y0 - y1 + y2 - y3

	if sx == 0 && sy == 0 {
		// Affine case.
		return homography{
			x1 - x0, x3 - x0, x0,
			y1 - y0, y3 - y0, y0,
			0, 0, 1,
		}
	}

	dx1, dy1 := x1-x2, y1-y2
	dx2, dy2 := x3-x2, y3-y2
	denom := dx1*dy2 - dx2*dy1

	g := (sx*dy2 - dx2*sy) / denom
	hh := (dx1*sy - sx*dy1) / denom

	return homography{
		x1 - x0 + g*x1, x3 - x0 + hh*x3, x0,
		y1 - y0 + g*y1, y3 - y0 + hh*y3, y0,
		g, hh, 1,
	}
}

// invert returns the inverse of m via the adjugate, with ok false when m
// is singular.
func invert(m homography) (homography, bool) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if math.Abs(det) < 1e-12 {
		return homography{}, false
	}

	return homography{
		(e*i - f*h) / det, (c*h - b*i) / det, (b*f - c*e) / det,
		(f*g - d*i) / det, (a*i - c*g) / det, (c*d - a*f) / det,
		(d*h - e*g) / det, (b*g - a*h) / det, (a*e - b*d) / det,
	}, true
}

// applyHomography returns the homogeneous image of (x, y).
func applyHomography(m homography, x, y float64) (u, v, z float64) {
	u = m[0]*x + m[1]*y + m[2]
	v = m[3]*x + m[4]*y + m[5]
	z = m[6]*x + m[7]*y + m[8]
	return
}

// sampleBilinear samples src at a fractional position, clamping to edges.
func sampleBilinear(src *image.Gray, x, y float64) uint8 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	at := func(px, py int) float64 {
		if px < 0 {
			px = 0
		}
		if py < 0 {
			py = 0
		}
		if px > w-1 {
			px = w - 1
		}
		if py > h-1 {
			py = h - 1
		}
		return float64(src.GrayAt(b.Min.X+px, b.Min.Y+py).Y)
	}

	top := at(x0, y0)*(1-fx) + at(x0+1, y0)*fx
	bottom := at(x0, y0+1)*(1-fx) + at(x0+1, y0+1)*fx
	return uint8(math.Round(top*(1-fy) + bottom*fy))
}

// pixAligned returns src itself when its bounds start at the origin, or a
// zero-based copy otherwise, so Pix offsets line up between images.
func pixAligned(src *image.Gray) *image.Gray {
	if src.Bounds().Min == (image.Point{}) && src.Stride == src.Bounds().Dx() {
		return src
	}
	out := image.NewGray(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	b := src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Pix[y*out.Stride+x] = src.GrayAt(b.Min.X+x, b.Min.Y+y).Y
		}
	}
	return out
}
