// Package orchestrator coordinates the word art pipeline over a word list.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/fightwords/pkg/pipeline"
	"github.com/user/fightwords/pkg/ports"
	"github.com/user/fightwords/pkg/wordlist"
)

// Config contains all configuration for a batch run.
type Config struct {
	// Input/Output
	WordsPath string
	OutputDir string
	Format    ports.ImageFormat

	// Fonts: identifiers to resolve; empty falls back to the builtin face.
	Fonts []string

	// Canvas
	Width       int
	Height      int
	Supersample int // Working canvas multiplier, 1 = render at target size

	// Rendering
	Starburst      bool
	MaxRotationDeg float64

	// Distortions applied in order. nil selects the default sequence
	// (shear, fisheye, perspective); an empty non-nil slice is a literal
	// pass-through.
	Distortions []pipeline.Distortion

	// Binarization
	Threshold uint8
	Dither    bool
	Negate    bool

	// Execution
	Seed    int64 // 0 seeds from the clock; fixed values reproduce a run
	Workers int   // 0 = NumCPU
}

// DefaultConfig returns a Config with default values for a 128x64 OLED.
func DefaultConfig() Config {
	return Config{
		OutputDir:      "output",
		Format:         ports.FormatPNG,
		Width:          128,
		Height:         64,
		Supersample:    1,
		MaxRotationDeg: 15,
		Threshold:      pipeline.DefaultThreshold,
		Dither:         true,
	}
}

// Orchestrator runs the rasterize, distort, binarize and export stages for
// every word in the input list, isolating failures per word.
type Orchestrator struct {
	rasterizeStage pipeline.Stage[pipeline.RasterizeInput, pipeline.RasterizeResult]
	distortStage   pipeline.Stage[pipeline.DistortInput, pipeline.DistortResult]
	binarizeStage  pipeline.Stage[pipeline.BinarizeInput, pipeline.BinarizeResult]
	exportStage    pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult]
	resolver       ports.FontResolver
	fs             ports.FileSystem
	sink           ports.DebugSink
	logger         ports.Logger
}

// New creates a new Orchestrator.
func New(
	rasterizeStage pipeline.Stage[pipeline.RasterizeInput, pipeline.RasterizeResult],
	distortStage pipeline.Stage[pipeline.DistortInput, pipeline.DistortResult],
	binarizeStage pipeline.Stage[pipeline.BinarizeInput, pipeline.BinarizeResult],
	exportStage pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult],
	resolver ports.FontResolver,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		rasterizeStage: rasterizeStage,
		distortStage:   distortStage,
		binarizeStage:  binarizeStage,
		exportStage:    exportStage,
		resolver:       resolver,
		fs:             fs,
		sink:           sink,
		logger:         logger,
	}
}

// RunResult summarizes a batch run.
type RunResult struct {
	Words        int      `json:"words"`
	Generated    int      `json:"generated"`
	Failed       int      `json:"failed"`
	Clipped      int      `json:"clipped"`
	FontsSkipped int      `json:"fonts_skipped"`
	Fonts        []string `json:"fonts"`
	OutputDir    string   `json:"output_dir"`
}

// Run executes the batch. Per-word failures are logged and counted but
// never abort the run; only an unreadable word list is fatal.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	result := RunResult{OutputDir: config.OutputDir}

	words, err := wordlist.Load(o.fs, config.WordsPath)
	if err != nil {
		o.logger.Error(l10n.F("Failed to read word list: %s", err))
		return result, fmt.Errorf("read word list: %w", err)
	}
	result.Words = len(words)
	o.logger.Info(l10n.F("Processing %d fight words...", len(words)))

	fontPaths, skipped := o.resolveFonts(config.Fonts)
	result.FontsSkipped = skipped
	result.Fonts = fontPaths

	if err := o.fs.MkdirAll(config.OutputDir); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}

	seq := config.Distortions
	if seq == nil {
		seq = pipeline.DefaultDistortions()
	}

	baseSeed := config.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type outcome struct {
		word    string
		clipped bool
		err     error
	}

	jobs := make(chan int, len(words))
	outcomes := make(chan outcome, len(words))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					outcomes <- outcome{word: words[i], err: ctx.Err()}
					continue
				default:
				}

				rng := rand.New(rand.NewSource(baseSeed + int64(i)))
				clipped, err := o.generateWord(ctx, words[i], fontPaths, seq, config, rng)
				outcomes <- outcome{word: words[i], clipped: clipped, err: err}
			}
		}()
	}

	for i := range words {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for out := range outcomes {
		switch {
		case out.err != nil:
			result.Failed++
			o.logger.Warn(l10n.F("Failed to generate %q: %s", out.word, out.err))
		default:
			result.Generated++
			if out.clipped {
				result.Clipped++
			}
		}
	}

	o.logger.Info(l10n.F("Batch completed: %d generated, %d failed", result.Generated, result.Failed))

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(result, "", "  "); err == nil {
			o.sink.SaveRunJSON(data)
		}
	}

	return result, nil
}

// resolveFonts maps font identifiers to file paths, dropping unresolvable
// ones with a warning. An empty result falls back to the builtin face,
// represented by a single empty path.
func (o *Orchestrator) resolveFonts(names []string) (paths []string, skipped int) {
	for _, name := range names {
		path, err := o.resolver.Resolve(name)
		if err != nil {
			skipped++
			o.logger.Warn(l10n.F("Font %q not found, skipping", name))
			continue
		}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		if len(names) > 0 {
			o.logger.Warn(l10n.T("No usable fonts, falling back to builtin face"))
		} else {
			o.logger.Debug("Using builtin font")
		}
		paths = []string{""}
	}
	return paths, skipped
}

// generateWord runs the full pipeline for one word with one randomly
// chosen font.
func (o *Orchestrator) generateWord(
	ctx context.Context,
	word string,
	fontPaths []string,
	seq []pipeline.Distortion,
	config Config,
	rng *rand.Rand,
) (bool, error) {
	fontPath := fontPaths[rng.Intn(len(fontPaths))]

	supersample := config.Supersample
	if supersample < 1 {
		supersample = 1
	}

	o.logger.Debug("Generating %s...", word)

	rasterized, err := o.rasterizeStage.Execute(ctx, pipeline.RasterizeInput{
		Word:           word,
		FontPath:       fontPath,
		Width:          config.Width * supersample,
		Height:         config.Height * supersample,
		Starburst:      config.Starburst,
		MaxRotationDeg: config.MaxRotationDeg,
		Rand:           rng,
	})
	if err != nil {
		return false, fmt.Errorf("rasterize stage: %w", err)
	}

	distorted, err := o.distortStage.Execute(ctx, pipeline.DistortInput{
		Image:    rasterized.Image,
		Sequence: seq,
		Word:     word,
		Rand:     rng,
	})
	if err != nil {
		return rasterized.Clipped, fmt.Errorf("distort stage: %w", err)
	}

	binarized, err := o.binarizeStage.Execute(ctx, pipeline.BinarizeInput{
		Image:        distorted.Image,
		TargetWidth:  config.Width,
		TargetHeight: config.Height,
		Threshold:    config.Threshold,
		Dither:       config.Dither,
		Negate:       config.Negate,
		Word:         word,
	})
	if err != nil {
		return rasterized.Clipped, fmt.Errorf("binarize stage: %w", err)
	}

	name := outputName(word, fontPath, seq, config.Format)
	_, err = o.exportStage.Execute(ctx, pipeline.ExportInput{
		Image:  binarized.Image,
		Format: config.Format,
		Path:   filepath.Join(config.OutputDir, name),
	})
	if err != nil {
		return rasterized.Clipped, fmt.Errorf("export stage: %w", err)
	}

	return rasterized.Clipped, nil
}

// outputName encodes word, font and distortion sequence in the file name
// so runs stay traceable.
func outputName(word, fontPath string, seq []pipeline.Distortion, format ports.ImageFormat) string {
	return fmt.Sprintf("%s__%s__%s.%s",
		wordlist.SafeName(word),
		fontStem(fontPath),
		pipeline.DistortionTag(seq),
		format,
	)
}

// fontStem returns the font file name without directory and extension;
// the builtin face is tagged "builtin".
func fontStem(fontPath string) string {
	if fontPath == "" {
		return "builtin"
	}
	base := filepath.Base(fontPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
