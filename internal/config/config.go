package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/virtual930/image-processor/pkg/aspect"
	"github.com/virtual930/image-processor/pkg/backdrop"
	"github.com/virtual930/image-processor/pkg/format"
	"github.com/virtual930/image-processor/pkg/pipeline"
)

// Bounds for the requested output size.
const (
	MinSize = 25
	MaxSize = 10000
)

// Config holds the application configuration
type Config struct {
	Pipeline PipelineConfig `json:"pipeline"`
	Output   OutputConfig   `json:"output"`
}

// PipelineConfig holds the per-image transformation settings
type PipelineConfig struct {
	Size         int     `json:"size"`
	Tolerance    float64 `json:"tolerance"`
	BlurSigma    float64 `json:"blur_sigma"`
	WhiteOpacity float64 `json:"white_opacity"`
	Quality      int     `json:"quality"`
}

// OutputConfig holds settings for the batch output
type OutputConfig struct {
	Token   string `json:"token"`
	Folder  string `json:"folder"`
	Workers int    `json:"workers"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Size:         pipeline.DefaultSize,
			Tolerance:    aspect.DefaultTolerance,
			BlurSigma:    backdrop.DefaultSigma,
			WhiteOpacity: backdrop.DefaultWhiteOpacity,
			Quality:      format.DefaultQuality,
		},
		Output: OutputConfig{
			Token:   format.KeepOriginal,
			Folder:  "revised images",
			Workers: 4,
		},
	}
}

// Spec converts the pipeline section into a TargetSpec.
func (c *Config) Spec() pipeline.TargetSpec {
	return pipeline.TargetSpec{
		Size:         c.Pipeline.Size,
		Tolerance:    c.Pipeline.Tolerance,
		OutputToken:  c.Output.Token,
		BlurSigma:    c.Pipeline.BlurSigma,
		WhiteOpacity: c.Pipeline.WhiteOpacity,
		Quality:      c.Pipeline.Quality,
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Pipeline.Size < MinSize || c.Pipeline.Size > MaxSize {
		return fmt.Errorf("pipeline.size must be between %d and %d", MinSize, MaxSize)
	}

	if c.Pipeline.Tolerance <= 0 || c.Pipeline.Tolerance >= 1 {
		return fmt.Errorf("pipeline.tolerance must be between 0 and 1")
	}

	if c.Pipeline.BlurSigma <= 0 {
		return fmt.Errorf("pipeline.blur_sigma must be positive")
	}

	if c.Pipeline.WhiteOpacity <= 0 || c.Pipeline.WhiteOpacity > 1 {
		return fmt.Errorf("pipeline.white_opacity must be between 0 and 1")
	}

	if c.Pipeline.Quality < 1 || c.Pipeline.Quality > 100 {
		return fmt.Errorf("pipeline.quality must be between 1 and 100")
	}

	if !format.ValidToken(c.Output.Token) {
		return fmt.Errorf("output.token %q is not a supported format", c.Output.Token)
	}

	if c.Output.Workers < 1 {
		return fmt.Errorf("output.workers must be positive")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "image-processor", "config.json")
}
