package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "vectra"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "VECTRA"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	// Use the global viper instance to ensure flag bindings work
	return &Loader{v: viper.GetViper()}
}

// Load loads configuration from files, environment variables and defaults,
// then validates it.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, continue with defaults and env vars
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// Get returns a raw value from the configuration.
func (l *Loader) Get(key string) interface{} {
	return l.v.Get(key)
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "vectra"))
	}
	l.v.AddConfigPath("/etc/vectra")
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("pipeline.fidelity", defaults.Pipeline.Fidelity)
	l.v.SetDefault("pipeline.white_fill", defaults.Pipeline.WhiteFill)
	l.v.SetDefault("pipeline.threshold", defaults.Pipeline.Threshold)
	l.v.SetDefault("pipeline.despeckle_area_min", defaults.Pipeline.DespeckleAreaMin)
	l.v.SetDefault("pipeline.blur_radius", defaults.Pipeline.BlurRadius)
	l.v.SetDefault("pipeline.close_iterations", defaults.Pipeline.CloseIterations)
	l.v.SetDefault("pipeline.max_image_size", defaults.Pipeline.MaxImageSize)
	l.v.SetDefault("pipeline.ai.enabled", defaults.Pipeline.AI.Enabled)
	l.v.SetDefault("pipeline.ai.model_path", defaults.Pipeline.AI.ModelPath)
	l.v.SetDefault("pipeline.ai.num_threads", defaults.Pipeline.AI.NumThreads)
	l.v.SetDefault("pipeline.ai.use_gpu", defaults.Pipeline.AI.UseGPU)
	l.v.SetDefault("pipeline.ai.device_id", defaults.Pipeline.AI.DeviceID)

	l.v.SetDefault("output.directory", defaults.Output.Directory)
	l.v.SetDefault("output.format", defaults.Output.Format)
	l.v.SetDefault("output.debug_dir", defaults.Output.DebugDir)
	l.v.SetDefault("output.overwrite", defaults.Output.Overwrite)

	l.v.SetDefault("batch.workers", defaults.Batch.Workers)
}
