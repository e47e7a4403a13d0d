package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 50, cfg.Pipeline.Fidelity)
	assert.InDelta(t, 1.0, cfg.Pipeline.BlurRadius, 1e-9)
	assert.Equal(t, 4096, cfg.Pipeline.MaxImageSize)
	assert.Equal(t, "files", cfg.Output.Format)
	assert.False(t, cfg.Pipeline.AI.Enabled)
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		cfg := DefaultConfig()
		cfg.LogLevel = level
		assert.NoError(t, cfg.Validate(), level)
	}

	cfg := DefaultConfig()
	cfg.LogLevel = "trace"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestValidatePipeline(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PipelineConfig)
		errStr string
	}{
		{"fidelity too high", func(p *PipelineConfig) { p.Fidelity = 101 }, "fidelity"},
		{"fidelity negative", func(p *PipelineConfig) { p.Fidelity = -1 }, "fidelity"},
		{"threshold too high", func(p *PipelineConfig) { p.Threshold = 256 }, "threshold"},
		{"negative despeckle", func(p *PipelineConfig) { p.DespeckleAreaMin = -0.5 }, "despeckle_area_min"},
		{"negative blur", func(p *PipelineConfig) { p.BlurRadius = -1 }, "blur_radius"},
		{"negative close iterations", func(p *PipelineConfig) { p.CloseIterations = -1 }, "close_iterations"},
		{"max image size too small", func(p *PipelineConfig) { p.MaxImageSize = 8 }, "max_image_size"},
		{"ai without model", func(p *PipelineConfig) { p.AI.Enabled = true }, "model_path"},
		{"negative device id", func(p *PipelineConfig) { p.AI.DeviceID = -1 }, "device_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg.Pipeline)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errStr)
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "json"
	assert.NoError(t, cfg.Validate())

	cfg.Output.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestValidateBatchWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Batch.Workers = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
}
