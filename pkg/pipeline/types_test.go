package pipeline

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

func TestParseDistortions(t *testing.T) {
	seq, err := ParseDistortions("shear,fisheye,perspective")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(seq, []Distortion{Shear, Fisheye, Perspective}) {
		t.Errorf("unexpected sequence: %v", seq)
	}
}

func TestParseDistortions_Whitespace(t *testing.T) {
	seq, err := ParseDistortions(" fisheye , shear ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(seq, []Distortion{Fisheye, Shear}) {
		t.Errorf("unexpected sequence: %v", seq)
	}
}

func TestParseDistortions_Empty(t *testing.T) {
	seq, err := ParseDistortions("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seq) != 0 {
		t.Errorf("expected empty sequence, got %v", seq)
	}
}

func TestParseDistortions_Invalid(t *testing.T) {
	if _, err := ParseDistortions("shear,wobble"); err == nil {
		t.Error("expected error for invalid distortion name")
	}
}

func TestDistortionTag(t *testing.T) {
	if tag := DistortionTag(DefaultDistortions()); tag != "shear-fisheye-perspective" {
		t.Errorf("unexpected tag: %q", tag)
	}
	if tag := DistortionTag(nil); tag != "plain" {
		t.Errorf("expected plain for empty sequence, got %q", tag)
	}
}

func TestToGray_CopiesPixels(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	src.SetGray(1, 1, color.Gray{Y: 42})

	dst := ToGray(src)
	dst.SetGray(1, 1, color.Gray{Y: 0})

	if src.GrayAt(1, 1).Y != 42 {
		t.Error("ToGray must copy, not alias, the source pixels")
	}
}

func TestToGray_SubImage(t *testing.T) {
	parent := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range parent.Pix {
		parent.Pix[i] = 0xff
	}
	parent.SetGray(3, 3, color.Gray{Y: 7})

	// The sub-image shares the parent's wider stride, so the packed fast
	// path must not apply.
	sub := parent.SubImage(image.Rect(2, 2, 6, 6)).(*image.Gray)
	dst := ToGray(sub)

	if dst.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("expected zero-based 4x4 bounds, got %v", dst.Bounds())
	}
	// Parent (3, 3) lands at (1, 1) in the re-based copy.
	if dst.GrayAt(1, 1).Y != 7 {
		t.Errorf("pixel (1, 1) = %d, want 7", dst.GrayAt(1, 1).Y)
	}
	if dst.GrayAt(0, 0).Y != 0xff {
		t.Errorf("pixel (0, 0) = %d, want 255", dst.GrayAt(0, 0).Y)
	}
}

func TestToGray_FromRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 10, 7))

	dst := ToGray(src)

	if dst.Bounds().Min != (image.Point{}) {
		t.Errorf("expected zero-based bounds, got %v", dst.Bounds())
	}
	if dst.Bounds().Dx() != 8 || dst.Bounds().Dy() != 4 {
		t.Errorf("unexpected dimensions: %v", dst.Bounds())
	}
}
