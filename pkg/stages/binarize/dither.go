package binarize

import (
	"image"
)

// ditherFloydSteinberg converts the canvas to two tones with standard
// Floyd-Steinberg error diffusion. Quantization error spreads right 7/16,
// below-left 3/16, below 5/16 and below-right 1/16.
func ditherFloydSteinberg(src *image.Gray, negate bool) *image.Paletted {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewPaletted(image.Rect(0, 0, w, h), paletteFor(negate))

	// Working copy with headroom for accumulated error.
	buf := make([]int32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = int32(src.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
		}
	}

	spread := func(x, y int, err int32, num int32) {
		if x < 0 || x >= w || y >= h {
			return
		}
		buf[y*w+x] += err * num / 16
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			old := buf[y*w+x]
			var quantized int32
			if old >= 128 {
				quantized = 255
			} else {
				out.SetColorIndex(x, y, 1)
			}

			err := old - quantized
			spread(x+1, y, err, 7)
			spread(x-1, y+1, err, 3)
			spread(x, y+1, err, 5)
			spread(x+1, y+1, err, 1)
		}
	}
	return out
}
