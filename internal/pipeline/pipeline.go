// Package pipeline sequences the raster→vector conversion: optional
// neural edge preprocessing, raster cleanup, contour extraction,
// simplification, geometry validation/repair and export generation. Each
// invocation owns its buffers, so independent invocations may run in
// parallel without locking.
package pipeline

import (
	"fmt"

	"github.com/MeKo-Tech/vectra/internal/edge"
	"github.com/MeKo-Tech/vectra/internal/geomfix"
	"github.com/MeKo-Tech/vectra/internal/utils"
)

// Config holds configuration for the conversion pipeline.
type Config struct {
	// BlurRadius is the Gaussian pre-blur radius in pixels; 0 disables.
	BlurRadius float64
	// CloseIterations is the morphological closing repeat count.
	CloseIterations int
	// Constraints bound the input image size before processing.
	Constraints utils.ImageConstraints
	// EnableAI turns on the neural edge-detection stage when a request
	// asks for it. The stage is optional: failures fall back to the
	// unprocessed bitmap.
	EnableAI bool
	// Edge configures the neural edge-detection stage.
	Edge edge.Config
	// DebugDir, when set, receives intermediate-stage PNG dumps.
	DebugDir string
}

// DefaultConfig returns a default pipeline config.
func DefaultConfig() Config {
	return Config{
		BlurRadius:      1.0,
		CloseIterations: 1,
		Constraints:     utils.DefaultImageConstraints(),
		EnableAI:        false,
		Edge:            edge.DefaultConfig(),
		DebugDir:        "",
	}
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg      Config
	repairer geomfix.Repairer
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig(), repairer: geomfix.NewRepairer()}
}

// WithBlurRadius sets the Gaussian pre-blur radius (if >= 0).
func (b *Builder) WithBlurRadius(r float64) *Builder {
	if r >= 0 {
		b.cfg.BlurRadius = r
	}
	return b
}

// WithCloseIterations sets the morphological closing repeat count (if >= 0).
func (b *Builder) WithCloseIterations(n int) *Builder {
	if n >= 0 {
		b.cfg.CloseIterations = n
	}
	return b
}

// WithConstraints overrides the input image size constraints.
func (b *Builder) WithConstraints(c utils.ImageConstraints) *Builder {
	b.cfg.Constraints = c
	return b
}

// WithAI enables the neural edge stage and sets its model path.
func (b *Builder) WithAI(modelPath string) *Builder {
	if modelPath != "" {
		b.cfg.EnableAI = true
		b.cfg.Edge.ModelPath = modelPath
	}
	return b
}

// WithAIThreads sets intra-op thread count for the edge session (if >0).
func (b *Builder) WithAIThreads(n int) *Builder {
	if n > 0 {
		b.cfg.Edge.NumThreads = n
	}
	return b
}

// WithGPU enables GPU acceleration for the edge session.
func (b *Builder) WithGPU(enabled bool) *Builder {
	b.cfg.Edge.GPU.UseGPU = enabled
	return b
}

// WithDebugDir enables intermediate-stage dumps into dir.
func (b *Builder) WithDebugDir(dir string) *Builder {
	if dir != "" {
		b.cfg.DebugDir = dir
	}
	return b
}

// WithRepairer injects the polygon-boolean collaborator used for
// self-intersection repair. A nil repairer disables the repair step.
func (b *Builder) WithRepairer(r geomfix.Repairer) *Builder {
	b.repairer = r
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Pipeline converts decoded bitmaps into CAD-ready vector output.
type Pipeline struct {
	cfg      Config
	repairer geomfix.Repairer
	edge     *edge.Detector
}

// Build initializes the pipeline. The edge session itself is created
// lazily on first use, so a missing ONNX runtime only surfaces when the
// AI stage is actually requested.
func (b *Builder) Build() (*Pipeline, error) {
	p := &Pipeline{cfg: b.cfg, repairer: b.repairer}
	if b.cfg.EnableAI {
		det, err := edge.New(b.cfg.Edge)
		if err != nil {
			return nil, fmt.Errorf("init edge detector: %w", err)
		}
		p.edge = det
	}
	return p, nil
}

// Close releases all resources, including the edge session if it was
// ever created.
func (p *Pipeline) Close() error {
	if p.edge != nil {
		err := p.edge.Close()
		p.edge = nil
		return err
	}
	return nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }
