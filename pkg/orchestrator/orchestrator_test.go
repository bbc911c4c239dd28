package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/user/fightwords/pkg/adapters/ggrenderer"
	"github.com/user/fightwords/pkg/mocks"
	"github.com/user/fightwords/pkg/pipeline"
	"github.com/user/fightwords/pkg/ports"
	"github.com/user/fightwords/pkg/stages/binarize"
	"github.com/user/fightwords/pkg/stages/distort"
	"github.com/user/fightwords/pkg/stages/export"
	"github.com/user/fightwords/pkg/stages/rasterize"
)

type fixture struct {
	orch     *Orchestrator
	fs       *mocks.FileSystem
	resolver *mocks.FontResolver
	sink     *mocks.DebugSink
	logger   *mocks.Logger
}

func newFixture(t *testing.T, words string) *fixture {
	t.Helper()

	fs := mocks.NewFileSystem()
	fs.Files["words.txt"] = []byte(words)
	resolver := &mocks.FontResolver{Paths: map[string]string{}}
	sink := mocks.NewDebugSink(false)
	logger := mocks.NewLogger()
	renderer := &mocks.Renderer{}

	orch := New(
		rasterize.NewStage(renderer, sink, logger),
		distort.NewStage(sink, logger),
		binarize.NewStage(renderer, sink, logger),
		export.NewStage(renderer, fs, logger),
		resolver,
		fs,
		sink,
		logger,
	)
	return &fixture{orch: orch, fs: fs, resolver: resolver, sink: sink, logger: logger}
}

func testConfig() Config {
	config := DefaultConfig()
	config.WordsPath = "words.txt"
	config.OutputDir = "out"
	config.Seed = 42
	config.Workers = 2
	return config
}

func TestRun_GeneratesAllWords(t *testing.T) {
	f := newFixture(t, "POW!\nBAM!\nZAP!\n")

	result, err := f.orch.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Words != 3 || result.Generated != 3 || result.Failed != 0 {
		t.Errorf("result = %+v, want 3 words all generated", result)
	}

	want := []string{
		"out/BAM__builtin__shear-fisheye-perspective.png",
		"out/POW__builtin__shear-fisheye-perspective.png",
		"out/ZAP__builtin__shear-fisheye-perspective.png",
		"words.txt",
	}
	got := f.fs.Paths()
	if len(got) != len(want) {
		t.Fatalf("paths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !f.fs.Dirs["out"] {
		t.Error("output directory not created")
	}
}

func TestRun_MissingWordList(t *testing.T) {
	f := newFixture(t, "POW!\n")

	config := testConfig()
	config.WordsPath = "nope.txt"

	if _, err := f.orch.Run(context.Background(), config); err == nil {
		t.Fatal("expected error for missing word list")
	}
}

func TestRun_UnresolvableFontSkipped(t *testing.T) {
	f := newFixture(t, "POW!\n")
	f.resolver.Paths["bangers"] = "/fonts/Bangers.ttf"

	config := testConfig()
	config.Fonts = []string{"bangers", "no-such-font"}

	result, err := f.orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FontsSkipped != 1 {
		t.Errorf("FontsSkipped = %d, want 1", result.FontsSkipped)
	}
	if result.Generated != 1 {
		t.Errorf("Generated = %d, want 1", result.Generated)
	}
	if len(result.Fonts) != 1 || result.Fonts[0] != "/fonts/Bangers.ttf" {
		t.Errorf("Fonts = %v, want the resolved path only", result.Fonts)
	}

	found := false
	for _, p := range f.fs.Paths() {
		if strings.Contains(p, "__Bangers__") {
			found = true
		}
	}
	if !found {
		t.Errorf("no output named after the resolved font: %v", f.fs.Paths())
	}
}

func TestRun_AllFontsUnresolvableFallsBackToBuiltin(t *testing.T) {
	f := newFixture(t, "POW!\n")

	config := testConfig()
	config.Fonts = []string{"ghost-font"}

	result, err := f.orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Generated != 1 {
		t.Errorf("Generated = %d, want 1", result.Generated)
	}
	if len(f.logger.Warns) == 0 {
		t.Error("expected a fallback warning")
	}

	if _, ok := f.fs.Files["out/POW__builtin__shear-fisheye-perspective.png"]; !ok {
		t.Errorf("expected builtin-face output, got %v", f.fs.Paths())
	}
}

func TestRun_WriteFailureIsolatedPerWord(t *testing.T) {
	f := newFixture(t, "POW!\nBAM!\n")
	f.fs.WriteFileFunc = func(path string, data []byte) error {
		if strings.Contains(path, "BAM") {
			return errors.New("disk full")
		}
		return nil
	}

	result, err := f.orch.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Generated != 1 || result.Failed != 1 {
		t.Errorf("result = %+v, want one generated and one failed", result)
	}
	if len(f.logger.Warns) == 0 {
		t.Error("expected a per-word failure warning")
	}
}

func TestRun_EmptyDistortionListIsPassThrough(t *testing.T) {
	f := newFixture(t, "POW!\n")

	config := testConfig()
	config.Distortions = []pipeline.Distortion{}

	if _, err := f.orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := f.fs.Files["out/POW__builtin__plain.png"]; !ok {
		t.Errorf("expected plain-tagged output, got %v", f.fs.Paths())
	}
}

func TestRun_PBMOutput(t *testing.T) {
	f := newFixture(t, "POW!\n")

	config := testConfig()
	config.Format = ports.FormatPBM

	if _, err := f.orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := f.fs.Files["out/POW__builtin__shear-fisheye-perspective.pbm"]; !ok {
		t.Errorf("expected .pbm output, got %v", f.fs.Paths())
	}
}

func TestRun_SavesRunSummaryWhenDebugging(t *testing.T) {
	f := newFixture(t, "POW!\nBAM!\n")
	f.sink = mocks.NewDebugSink(true)
	f.orch.sink = f.sink

	result, err := f.orch.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.sink.RunJSON == nil {
		t.Fatal("expected a run summary in the debug sink")
	}

	var decoded RunResult
	if err := json.Unmarshal(f.sink.RunJSON, &decoded); err != nil {
		t.Fatalf("run summary is not valid JSON: %v", err)
	}
	if decoded.Generated != result.Generated {
		t.Errorf("summary reports %d generated, run returned %d", decoded.Generated, result.Generated)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	f := newFixture(t, "POW!\nBAM!\nZAP!\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.orch.Run(ctx, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Generated != 0 || result.Failed != 3 {
		t.Errorf("result = %+v, want every word failed after cancellation", result)
	}
}

// TestRun_GlyphConfinedToCenter runs the real rendering pipeline with the
// builtin face and no distortions and checks that every foreground pixel
// of the final bitmap lies in the central glyph region.
func TestRun_GlyphConfinedToCenter(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["words.txt"] = []byte("POW\n")
	sink := mocks.NewDebugSink(false)
	logger := mocks.NewLogger()
	renderer := ggrenderer.New()

	orch := New(
		rasterize.NewStage(renderer, sink, logger),
		distort.NewStage(sink, logger),
		binarize.NewStage(renderer, sink, logger),
		export.NewStage(renderer, fs, logger),
		&mocks.FontResolver{},
		fs,
		sink,
		logger,
	)

	config := testConfig()
	config.Distortions = []pipeline.Distortion{}
	config.MaxRotationDeg = 0
	config.Dither = false

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Generated != 1 {
		t.Fatalf("result = %+v, want one generated image", result)
	}

	data := fs.Files["out/POW__builtin__plain.png"]
	if data == nil {
		t.Fatalf("missing output, have %v", fs.Paths())
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}

	center := image.Rect(32, 12, 96, 52)
	dark := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 128; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			if gray >= 128 {
				continue
			}
			if !image.Pt(x, y).In(center) {
				t.Fatalf("foreground pixel at (%d, %d) outside the glyph region", x, y)
			}
			dark++
		}
	}
	if dark == 0 {
		t.Fatal("no foreground pixels rendered")
	}
}

func TestOutputName(t *testing.T) {
	cases := []struct {
		word string
		font string
		seq  []pipeline.Distortion
		want string
	}{
		{"POW!", "", nil, "POW__builtin__plain.png"},
		{"Ka-Pow!", "/fonts/Bangers.ttf", []pipeline.Distortion{pipeline.Shear}, "Ka_Pow__Bangers__shear.png"},
		{"BAM BAM", "/a/b/Impact.otf", pipeline.DefaultDistortions(), "BAM_BAM__Impact__shear-fisheye-perspective.png"},
	}

	for _, c := range cases {
		got := outputName(c.word, c.font, c.seq, ports.FormatPNG)
		if got != c.want {
			t.Errorf("outputName(%q, %q) = %q, want %q", c.word, c.font, got, c.want)
		}
	}
}
