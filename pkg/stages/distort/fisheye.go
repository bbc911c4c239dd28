package distort

import (
	"image"
	"math"
)

// Fisheye bulges the canvas radially about (cx, cy). Inside the effective
// radius each destination pixel samples the source closer to the center by
// a factor growing with strength; pixels outside the radius, and pixels
// whose bulged source leaves the canvas, keep their original value.
func Fisheye(src *image.Gray, cx, cy, strength, radius float64) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			dist := math.Sqrt(dx*dx + dy*dy)

			v := src.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			if dist > 0 && dist < radius {
				factor := 1 + strength*(1-dist/radius)
				sx := int(cx + dx/factor)
				sy := int(cy + dy/factor)
				if sx >= 0 && sx < w && sy >= 0 && sy < h {
					v = src.GrayAt(b.Min.X+sx, b.Min.Y+sy).Y
				}
			}
			dst.Pix[y*dst.Stride+x] = v
		}
	}
	return dst
}
