package rasterize

import (
	"context"
	"image/color"
	"math/rand"
	"testing"

	"github.com/user/fightwords/pkg/mocks"
	"github.com/user/fightwords/pkg/pipeline"
	"github.com/user/fightwords/pkg/ports"
)

// trackingRenderer records the canvases it hands out so tests can inspect
// draw calls after Execute returns.
type trackingRenderer struct {
	mocks.Renderer
	canvases []*mocks.Canvas
}

func newTrackingRenderer() *trackingRenderer {
	r := &trackingRenderer{}
	r.CreateCanvasFunc = func(width, height int, bg color.Color) ports.Canvas {
		c := mocks.NewCanvas(width, height)
		r.canvases = append(r.canvases, c)
		return c
	}
	return r
}

// working returns the oversized draw canvas, final the display-sized one.
func (r *trackingRenderer) working(t *testing.T) *mocks.Canvas {
	t.Helper()
	if len(r.canvases) < 2 {
		t.Fatalf("expected 2 canvases, got %d", len(r.canvases))
	}
	return r.canvases[0]
}

func (r *trackingRenderer) final(t *testing.T) *mocks.Canvas {
	t.Helper()
	if len(r.canvases) < 2 {
		t.Fatalf("expected 2 canvases, got %d", len(r.canvases))
	}
	return r.canvases[1]
}

func TestExecute_OutputDimensions(t *testing.T) {
	renderer := newTrackingRenderer()
	stage := NewStage(renderer, mocks.NewDebugSink(false), mocks.NewLogger())

	result, err := stage.Execute(context.Background(), pipeline.RasterizeInput{
		Word:   "POW",
		Width:  128,
		Height: 64,
		Rand:   rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := result.Image.Bounds()
	if b.Dx() != 128 || b.Dy() != 64 {
		t.Errorf("output is %dx%d, want 128x64", b.Dx(), b.Dy())
	}

	// The working canvas is an oversized square so rotation cannot clip.
	work := renderer.working(t)
	if work.Width != 256 || work.Height != 256 {
		t.Errorf("working canvas is %dx%d, want 256x256", work.Width, work.Height)
	}
}

func TestExecute_OutlineDraws(t *testing.T) {
	renderer := newTrackingRenderer()
	stage := NewStage(renderer, mocks.NewDebugSink(false), mocks.NewLogger())

	_, err := stage.Execute(context.Background(), pipeline.RasterizeInput{
		Word:   "BAM!",
		Width:  128,
		Height: 64,
		Rand:   rand.New(rand.NewSource(2)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := renderer.working(t).TextCalls
	if len(calls) < 2 {
		t.Fatalf("expected outline plus fill draws, got %d calls", len(calls))
	}

	// All but the last call paint the black outline, the last the white fill.
	fill := calls[len(calls)-1]
	if fill.Style.Color != color.White {
		t.Error("final draw must be the white fill")
	}
	for _, c := range calls[:len(calls)-1] {
		if c.Style.Color != color.Black {
			t.Error("outline draws must be black")
		}
		if c.X == fill.X && c.Y == fill.Y {
			t.Error("outline draws must be offset from the fill position")
		}
	}
}

func TestExecute_ShrinksUntilFit(t *testing.T) {
	renderer := newTrackingRenderer()
	stage := NewStage(renderer, mocks.NewDebugSink(false), mocks.NewLogger())

	// With the mock's width metric (0.6 x size per rune), a long word forces
	// the fit loop to shrink below the base size for a 4-rune word.
	short, err := stage.Execute(context.Background(), pipeline.RasterizeInput{
		Word: "POW!", Width: 128, Height: 64, Rand: rand.New(rand.NewSource(3)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	long, err := stage.Execute(context.Background(), pipeline.RasterizeInput{
		Word: "KRAKA-THOOM!", Width: 128, Height: 64, Rand: rand.New(rand.NewSource(3)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if long.FontSize >= short.FontSize {
		t.Errorf("long word size %.1f not below short word size %.1f", long.FontSize, short.FontSize)
	}
}

func TestExecute_ClippedWhenWordCannotFit(t *testing.T) {
	renderer := newTrackingRenderer()
	logger := mocks.NewLogger()
	stage := NewStage(renderer, mocks.NewDebugSink(false), logger)

	result, err := stage.Execute(context.Background(), pipeline.RasterizeInput{
		Word:   "ABSOLUTELY-UNREASONABLY-LONG-BATTLE-CRY!!!",
		Width:  32,
		Height: 16,
		Rand:   rand.New(rand.NewSource(4)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Clipped {
		t.Error("expected Clipped for a word that cannot fit at minimum size")
	}
	if len(logger.Warns) == 0 {
		t.Error("expected a clipping warning")
	}
}

func TestExecute_Rotation(t *testing.T) {
	renderer := newTrackingRenderer()
	stage := NewStage(renderer, mocks.NewDebugSink(false), mocks.NewLogger())

	_, err := stage.Execute(context.Background(), pipeline.RasterizeInput{
		Word: "ZAP", Width: 128, Height: 64,
		MaxRotationDeg: 15,
		Rand:           rand.New(rand.NewSource(5)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rotations := renderer.final(t).RotateCalls
	if len(rotations) != 1 {
		t.Fatalf("expected one rotated draw, got %d", len(rotations))
	}
	if a := rotations[0]; a < -15 || a > 15 {
		t.Errorf("rotation %.2f outside +-15 degrees", a)
	}
}

func TestExecute_NoRotationWhenDisabled(t *testing.T) {
	renderer := newTrackingRenderer()
	stage := NewStage(renderer, mocks.NewDebugSink(false), mocks.NewLogger())

	_, err := stage.Execute(context.Background(), pipeline.RasterizeInput{
		Word: "ZAP", Width: 128, Height: 64,
		MaxRotationDeg: 0,
		Rand:           rand.New(rand.NewSource(6)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rotations := renderer.final(t).RotateCalls
	if len(rotations) != 1 || rotations[0] != 0 {
		t.Errorf("expected a single zero-angle draw, got %v", rotations)
	}
}

func TestExecute_Starburst(t *testing.T) {
	renderer := newTrackingRenderer()
	stage := NewStage(renderer, mocks.NewDebugSink(false), mocks.NewLogger())

	_, err := stage.Execute(context.Background(), pipeline.RasterizeInput{
		Word: "POW", Width: 128, Height: 64,
		Starburst: true,
		Rand:      rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if renderer.working(t).PolygonCalls == 0 {
		t.Error("expected starburst polygon draws on the working canvas")
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	stage := NewStage(&mocks.Renderer{}, mocks.NewDebugSink(false), mocks.NewLogger())

	if _, err := stage.Execute(context.Background(), pipeline.RasterizeInput{
		Width: 128, Height: 64,
	}); err == nil {
		t.Error("expected error for empty word")
	}
	if _, err := stage.Execute(context.Background(), pipeline.RasterizeInput{
		Word: "POW",
	}); err == nil {
		t.Error("expected error for zero dimensions")
	}
}

func TestBaseFontSize_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for _, word := range []string{"X", "POW!", "CRASH!!", "KRAKA-THOOM!!!!"} {
		for i := 0; i < 20; i++ {
			size := baseFontSize(word, 108, 44, 1, rng)
			if size < 12 || size > 64 {
				t.Fatalf("baseFontSize(%q) = %.1f outside [12, 64]", word, size)
			}
		}
	}
}
