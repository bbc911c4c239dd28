// Package pbm encodes and decodes binary (P4) portable bitmaps, the
// format the MicroPython display companion reads into a framebuffer.
package pbm

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrBadMagic is returned when the data does not start with "P4".
	ErrBadMagic = errors.New("pbm: not a P4 bitmap")

	// ErrBadHeader is returned when the dimensions line is malformed.
	ErrBadHeader = errors.New("pbm: malformed header")

	// ErrShortData is returned when the pixel data ends early.
	ErrShortData = errors.New("pbm: truncated pixel data")
)

// Palette is the two-color palette of decoded bitmaps: index 0 is white
// (paper), index 1 is black (ink), matching the P4 bit meaning.
var Palette = color.Palette{color.White, color.Black}

// Encode serializes img as a P4 bitmap. Rows are packed MSB first, eight
// pixels per byte, 1 = black; any pixel with luminance below the midpoint
// is treated as black.
func Encode(img image.Image) ([]byte, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pbm: invalid dimensions %dx%d", w, h)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P4\n%d %d\n", w, h)

	rowBytes := (w + 7) / 8
	row := make([]byte, rowBytes)
	for y := 0; y < h; y++ {
		for i := range row {
			row[i] = 0
		}
		for x := 0; x < w; x++ {
			if blackAt(img, b.Min.X+x, b.Min.Y+y) {
				row[x/8] |= 0x80 >> (x % 8)
			}
		}
		buf.Write(row)
	}
	return buf.Bytes(), nil
}

// Decode parses a P4 bitmap into a two-color paletted image.
// Comment lines between header tokens are skipped.
func Decode(data []byte) (*image.Paletted, error) {
	rest, magic := readLine(data)
	if string(bytes.TrimSpace(magic)) != "P4" {
		return nil, ErrBadMagic
	}

	var dims []byte
	for {
		if len(rest) == 0 {
			return nil, ErrBadHeader
		}
		rest, dims = readLine(rest)
		dims = bytes.TrimSpace(dims)
		if len(dims) == 0 || dims[0] == '#' {
			continue
		}
		break
	}

	var w, h int
	if n, err := fmt.Sscanf(string(dims), "%d %d", &w, &h); err != nil || n != 2 || w <= 0 || h <= 0 {
		return nil, ErrBadHeader
	}

	rowBytes := (w + 7) / 8
	if len(rest) < rowBytes*h {
		return nil, ErrShortData
	}

	img := image.NewPaletted(image.Rect(0, 0, w, h), Palette)
	for y := 0; y < h; y++ {
		row := rest[y*rowBytes : (y+1)*rowBytes]
		for x := 0; x < w; x++ {
			if row[x/8]&(0x80>>(x%8)) != 0 {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img, nil
}

// readLine splits data at the first newline, returning the remainder and
// the line without its terminator.
func readLine(data []byte) (rest, line []byte) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[i+1:], data[:i]
	}
	return nil, data
}

func blackAt(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	// Rec. 601 luma, in 16-bit channel space.
	luma := (299*r + 587*g + 114*b) / 1000
	return luma < 0x8000
}
