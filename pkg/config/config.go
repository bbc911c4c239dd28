// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/fightwords/pkg/orchestrator"
	"github.com/user/fightwords/pkg/pipeline"
	"github.com/user/fightwords/pkg/ports"
)

// Config represents the full configuration for fightwords.
type Config struct {
	// Input/Output
	Words     string `yaml:"words"`
	OutputDir string `yaml:"output"`
	Format    string `yaml:"format"` // png or pbm

	// Fonts
	Fonts    []string `yaml:"fonts"`
	FontDirs []string `yaml:"font_dirs"`

	// Canvas
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	Supersample int `yaml:"supersample"`

	// Rendering
	Starburst      bool    `yaml:"starburst"`
	MaxRotationDeg float64 `yaml:"max_rotation_deg"`

	// Distortions: nil applies the default sequence, an explicit empty
	// list (or the single word "none") disables all distortions.
	Distortions []string `yaml:"distortions"`

	// Binarization
	Threshold uint8 `yaml:"threshold"`
	Dither    bool  `yaml:"dither"`
	Negate    bool  `yaml:"negate"`

	// Execution
	Seed    int64 `yaml:"seed"`
	Workers int   `yaml:"workers"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Words:     "words.txt",
		OutputDir: "output",
		Format:    "png",

		Width:       128,
		Height:      64,
		Supersample: 1,

		MaxRotationDeg: 15,

		Threshold: 128,
		Dither:    true,

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config, validating
// the format and distortion names.
func (c Config) ToOrchestratorConfig() (orchestrator.Config, error) {
	format, err := ParseFormat(c.Format)
	if err != nil {
		return orchestrator.Config{}, err
	}

	distortions, err := parseDistortionList(c.Distortions)
	if err != nil {
		return orchestrator.Config{}, err
	}

	return orchestrator.Config{
		WordsPath: c.Words,
		OutputDir: c.OutputDir,
		Format:    format,

		Fonts: c.Fonts,

		Width:       c.Width,
		Height:      c.Height,
		Supersample: c.Supersample,

		Starburst:      c.Starburst,
		MaxRotationDeg: c.MaxRotationDeg,

		Distortions: distortions,

		Threshold: c.Threshold,
		Dither:    c.Dither,
		Negate:    c.Negate,

		Seed:    c.Seed,
		Workers: c.Workers,
	}, nil
}

// ParseFormat maps a format name to its ports.ImageFormat.
func ParseFormat(s string) (ports.ImageFormat, error) {
	switch s {
	case "", "png":
		return ports.FormatPNG, nil
	case "pbm":
		return ports.FormatPBM, nil
	default:
		return ports.FormatPNG, fmt.Errorf("invalid format %q (valid: png, pbm)", s)
	}
}

// parseDistortionList maps configured distortion names to the pipeline
// enum. nil stays nil (default sequence); "none" yields an explicit empty
// sequence.
func parseDistortionList(names []string) ([]pipeline.Distortion, error) {
	if names == nil {
		return nil, nil
	}
	if len(names) == 1 && names[0] == "none" {
		return []pipeline.Distortion{}, nil
	}

	seq := []pipeline.Distortion{}
	for _, name := range names {
		parsed, err := pipeline.ParseDistortions(name)
		if err != nil {
			return nil, err
		}
		seq = append(seq, parsed...)
	}
	return seq, nil
}
