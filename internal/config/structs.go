// Package config defines the range-validated configuration for the
// vectra raster→vector converter and a viper-based loader supporting
// config files, environment variables and command-line flags.
package config

// Config represents the complete configuration for the vectra application.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Conversion pipeline configuration
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// PipelineConfig contains conversion pipeline settings.
type PipelineConfig struct {
	Fidelity         int     `mapstructure:"fidelity" yaml:"fidelity" json:"fidelity"`
	WhiteFill        bool    `mapstructure:"white_fill" yaml:"white_fill" json:"white_fill"`
	Threshold        int     `mapstructure:"threshold" yaml:"threshold" json:"threshold"`
	DespeckleAreaMin float64 `mapstructure:"despeckle_area_min" yaml:"despeckle_area_min" json:"despeckle_area_min"`
	BlurRadius       float64 `mapstructure:"blur_radius" yaml:"blur_radius" json:"blur_radius"`
	CloseIterations  int     `mapstructure:"close_iterations" yaml:"close_iterations" json:"close_iterations"`
	MaxImageSize     int     `mapstructure:"max_image_size" yaml:"max_image_size" json:"max_image_size"`

	// Neural edge-detection stage
	AI AIConfig `mapstructure:"ai" yaml:"ai" json:"ai"`
}

// AIConfig contains settings for the optional neural edge-detection stage.
type AIConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	ModelPath  string `mapstructure:"model_path" yaml:"model_path" json:"model_path"`
	NumThreads int    `mapstructure:"num_threads" yaml:"num_threads" json:"num_threads"`
	UseGPU     bool   `mapstructure:"use_gpu" yaml:"use_gpu" json:"use_gpu"`
	DeviceID   int    `mapstructure:"device_id" yaml:"device_id" json:"device_id"`
}

// OutputConfig contains output settings.
type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory" json:"directory"`
	Format    string `mapstructure:"format" yaml:"format" json:"format"`
	DebugDir  string `mapstructure:"debug_dir" yaml:"debug_dir" json:"debug_dir"`
	Overwrite bool   `mapstructure:"overwrite" yaml:"overwrite" json:"overwrite"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}
