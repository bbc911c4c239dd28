// Package main provides the CLI entry point for fightwords.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/fightwords/pkg/adapters/filesink"
	"github.com/user/fightwords/pkg/adapters/fontdir"
	"github.com/user/fightwords/pkg/adapters/ggrenderer"
	"github.com/user/fightwords/pkg/adapters/logger"
	"github.com/user/fightwords/pkg/adapters/nullsink"
	"github.com/user/fightwords/pkg/adapters/osfilesystem"
	"github.com/user/fightwords/pkg/config"
	"github.com/user/fightwords/pkg/orchestrator"
	"github.com/user/fightwords/pkg/ports"
	"github.com/user/fightwords/pkg/stages/binarize"
	"github.com/user/fightwords/pkg/stages/distort"
	"github.com/user/fightwords/pkg/stages/export"
	"github.com/user/fightwords/pkg/stages/rasterize"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "fightwords",
		Usage:   l10n.T("Generate comic-style fight word bitmaps for monochrome OLED displays"),
		Version: version,
		Commands: []*cli.Command{
			generateCommand(),
			convertCommand(),
		},
		DefaultCommand: "generate",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     l10n.T("Generate one distorted bitmap per word from a word list"),
		ArgsUsage: "[WORDS_FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file")},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output directory (default: output)")},
			&cli.StringFlag{Name: "font", Usage: l10n.T("Comma-separated list of font paths or names")},
			&cli.StringSliceFlag{Name: "font-dir", Usage: l10n.T("Font search directory (repeatable, replaces system defaults)")},
			&cli.StringFlag{Name: "distortion", Usage: l10n.T("Comma-separated distortions to apply (shear,fisheye,perspective), or none. Default: all")},
			&cli.BoolFlag{Name: "negate", Usage: l10n.T("Reverse colors (white text on black background)")},
			&cli.BoolFlag{Name: "no-dither", Usage: l10n.T("Use a hard threshold instead of Floyd-Steinberg dithering")},
			&cli.UintFlag{Name: "threshold", Usage: l10n.T("Binarization threshold (1-255, default: 128)")},
			&cli.StringFlag{Name: "format", Usage: l10n.T("Output format: png or pbm (default: png)")},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Output width in pixels (default: 128)")},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Output height in pixels (default: 64)")},
			&cli.IntFlag{Name: "supersample", Usage: l10n.T("Render at a multiple of the output size (default: 1)")},
			&cli.BoolFlag{Name: "starburst", Usage: l10n.T("Draw a randomized starburst background")},
			&cli.Float64Flag{Name: "max-rotation", Usage: l10n.T("Maximum random rotation in degrees (0 disables, default: 15)")},
			&cli.Int64Flag{Name: "seed", Usage: l10n.T("Random seed for reproducible runs (0 = random)")},
			&cli.IntFlag{Name: "workers", Usage: l10n.T("Parallel workers (0 = number of CPUs)")},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Save per-stage intermediate images")},
			&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
		},
		Action: runGenerate,
	}
}

func runGenerate(cCtx *cli.Context) error {
	cfg, err := buildConfig(cCtx)
	if err != nil {
		return err
	}

	var log ports.Logger
	if cCtx.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cCtx.String("log-level")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	roots := cfg.FontDirs
	if len(roots) == 0 {
		roots = fontdir.DefaultRoots()
	}
	resolver := fontdir.New(roots, log)

	var sink ports.DebugSink
	if cCtx.Bool("debug") {
		if err := fs.MkdirAll(cCtx.String("debug-dir")); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cCtx.String("debug-dir"), fs, renderer)
	} else {
		sink = nullsink.New()
	}

	orch := orchestrator.New(
		rasterize.NewStage(renderer, sink, log),
		distort.NewStage(sink, log),
		binarize.NewStage(renderer, sink, log),
		export.NewStage(renderer, fs, log),
		resolver,
		fs,
		sink,
		log,
	)

	orchConfig, err := cfg.ToOrchestratorConfig()
	if err != nil {
		return err
	}

	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Generated %d images in %s", result.Generated, result.OutputDir))
	return nil
}

// buildConfig merges defaults, an optional YAML file and CLI overrides.
func buildConfig(cCtx *cli.Context) (config.Config, error) {
	cfg := config.Defaults()

	if path := cCtx.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if words := cCtx.Args().First(); words != "" {
		cfg.Words = words
	}
	if cCtx.IsSet("output") {
		cfg.OutputDir = cCtx.String("output")
	}
	if cCtx.IsSet("font") {
		cfg.Fonts = splitList(cCtx.String("font"))
	}
	if cCtx.IsSet("font-dir") {
		cfg.FontDirs = cCtx.StringSlice("font-dir")
	}
	if cCtx.IsSet("distortion") {
		cfg.Distortions = splitList(cCtx.String("distortion"))
	}
	if cCtx.IsSet("negate") {
		cfg.Negate = cCtx.Bool("negate")
	}
	if cCtx.IsSet("no-dither") {
		cfg.Dither = !cCtx.Bool("no-dither")
	}
	if cCtx.IsSet("threshold") {
		cfg.Threshold = uint8(cCtx.Uint("threshold"))
	}
	if cCtx.IsSet("format") {
		cfg.Format = cCtx.String("format")
	}
	if cCtx.IsSet("width") {
		cfg.Width = cCtx.Int("width")
	}
	if cCtx.IsSet("height") {
		cfg.Height = cCtx.Int("height")
	}
	if cCtx.IsSet("supersample") {
		cfg.Supersample = cCtx.Int("supersample")
	}
	if cCtx.IsSet("starburst") {
		cfg.Starburst = cCtx.Bool("starburst")
	}
	if cCtx.IsSet("max-rotation") {
		cfg.MaxRotationDeg = cCtx.Float64("max-rotation")
	}
	if cCtx.IsSet("seed") {
		cfg.Seed = cCtx.Int64("seed")
	}
	if cCtx.IsSet("workers") {
		cfg.Workers = cCtx.Int("workers")
	}

	return cfg, nil
}

// splitList splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     l10n.T("Convert generated PNG images to device-native PBM P4 bitmaps"),
		ArgsUsage: "INPUT...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "pbms", Usage: l10n.T("Output directory for PBM files (default: pbms)")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
		},
		Action: runConvert,
	}
}

// runConvert re-encodes PNG files (or directories of them) as PBM P4, the
// format the MicroPython slideshow reads into its framebuffer.
func runConvert(cCtx *cli.Context) error {
	if cCtx.NArg() == 0 {
		return fmt.Errorf("no input files")
	}

	log := logger.NewConsole(ports.ParseLogLevel(cCtx.String("log-level")))
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	outDir := cCtx.String("output")

	var inputs []string
	for _, arg := range cCtx.Args().Slice() {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if info.IsDir() {
			matches, err := fs.Glob(filepath.Join(arg, "*.png"))
			if err != nil {
				return err
			}
			inputs = append(inputs, matches...)
		} else {
			inputs = append(inputs, arg)
		}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no PNG files found")
	}

	converted := 0
	for _, input := range inputs {
		data, err := fs.ReadFile(input)
		if err != nil {
			log.Warn(l10n.F("Failed to convert %s: %s", input, err))
			continue
		}
		img, err := renderer.DecodeImage(data, ports.FormatPNG)
		if err != nil {
			log.Warn(l10n.F("Failed to convert %s: %s", input, err))
			continue
		}
		encoded, err := renderer.EncodeImage(img, ports.FormatPBM)
		if err != nil {
			log.Warn(l10n.F("Failed to convert %s: %s", input, err))
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		out := filepath.Join(outDir, stem+".pbm")
		if err := fs.WriteFile(out, encoded); err != nil {
			log.Warn(l10n.F("Failed to convert %s: %s", input, err))
			continue
		}
		converted++
	}

	log.Info(l10n.F("Converted %d images to %s", converted, outDir))
	return nil
}
