package config

import (
	"fmt"
	"strings"
)

// Valid output formats for the CLI.
var validFormats = []string{"files", "json"}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Pipeline: PipelineConfig{
			Fidelity:         50,
			WhiteFill:        false,
			Threshold:        0,
			DespeckleAreaMin: 0,
			BlurRadius:       1.0,
			CloseIterations:  1,
			MaxImageSize:     4096,
			AI: AIConfig{
				Enabled:    false,
				ModelPath:  "",
				NumThreads: 0,
				UseGPU:     false,
				DeviceID:   0,
			},
		},
		Output: OutputConfig{
			Directory: ".",
			Format:    "files",
			DebugDir:  "",
			Overwrite: false,
		},
		Batch: BatchConfig{Workers: 0},
	}
}

// Validate range-checks the configuration.
func (c *Config) Validate() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch: workers must be non-negative, got %d", c.Batch.Workers)
	}
	return nil
}

func (c *Config) validateLogLevel() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", c.LogLevel)
	}
}

// Validate range-checks the pipeline settings.
func (p *PipelineConfig) Validate() error {
	if p.Fidelity < 0 || p.Fidelity > 100 {
		return fmt.Errorf("fidelity must be in [0, 100], got %d", p.Fidelity)
	}
	if p.Threshold < 0 || p.Threshold > 255 {
		return fmt.Errorf("threshold must be in [0, 255], got %d", p.Threshold)
	}
	if p.DespeckleAreaMin < 0 {
		return fmt.Errorf("despeckle_area_min must be non-negative, got %g", p.DespeckleAreaMin)
	}
	if p.BlurRadius < 0 {
		return fmt.Errorf("blur_radius must be non-negative, got %g", p.BlurRadius)
	}
	if p.CloseIterations < 0 {
		return fmt.Errorf("close_iterations must be non-negative, got %d", p.CloseIterations)
	}
	if p.MaxImageSize < 16 {
		return fmt.Errorf("max_image_size must be at least 16, got %d", p.MaxImageSize)
	}
	if p.AI.Enabled && p.AI.ModelPath == "" {
		return fmt.Errorf("ai.model_path is required when ai.enabled is set")
	}
	if p.AI.DeviceID < 0 {
		return fmt.Errorf("ai.device_id must be non-negative, got %d", p.AI.DeviceID)
	}
	return nil
}

// Validate checks the output settings.
func (o *OutputConfig) Validate() error {
	for _, f := range validFormats {
		if o.Format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q (must be one of %s)", o.Format, strings.Join(validFormats, ", "))
}
