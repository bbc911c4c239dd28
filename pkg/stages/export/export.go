// Package export implements the output writing stage.
package export

import (
	"context"
	"fmt"

	"github.com/user/fightwords/pkg/pipeline"
	"github.com/user/fightwords/pkg/ports"
)

// Stage encodes a finished image and persists it through the filesystem
// port. A write failure aborts only the word being exported; the batch
// driver keeps going.
type Stage struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	logger   ports.Logger
}

// NewStage creates a new export stage.
func NewStage(renderer ports.Renderer, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		fs:       fs,
		logger:   logger.WithComponent("export"),
	}
}

// Execute encodes input.Image in input.Format and writes it to input.Path.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExportInput) (pipeline.ExportResult, error) {
	if input.Image == nil {
		return pipeline.ExportResult{}, fmt.Errorf("export: nil image")
	}
	if input.Path == "" {
		return pipeline.ExportResult{}, fmt.Errorf("export: empty output path")
	}

	data, err := s.renderer.EncodeImage(input.Image, input.Format)
	if err != nil {
		return pipeline.ExportResult{}, fmt.Errorf("encode %s: %w", input.Format, err)
	}

	if err := s.fs.WriteFile(input.Path, data); err != nil {
		return pipeline.ExportResult{}, fmt.Errorf("write %s: %w", input.Path, err)
	}

	s.logger.Debug("Wrote %s (%d bytes)", input.Path, len(data))
	return pipeline.ExportResult{Path: input.Path, Bytes: len(data)}, nil
}
