package distort

import "image"

// Shear slants the canvas: each destination pixel samples the source at
// (x - kx*y, y - ky*x). Pixels whose source falls outside the canvas
// become background.
func Shear(src *image.Gray, kx, ky float64) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := int(float64(x) - kx*float64(y))
			sy := int(float64(y) - ky*float64(x))

			v := uint8(background)
			if sx >= 0 && sx < w && sy >= 0 && sy < h {
				v = src.GrayAt(b.Min.X+sx, b.Min.Y+sy).Y
			}
			dst.Pix[y*dst.Stride+x] = v
		}
	}
	return dst
}
