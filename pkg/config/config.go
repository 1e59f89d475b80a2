package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the render settings normally passed on the command line,
// so repeated renders can be driven from a file instead.
type Config struct {
	Scene  SceneConfig  `yaml:"scene"`
	Render RenderConfig `yaml:"render"`
	Output OutputConfig `yaml:"output"`
}

// SceneConfig selects what to render.
type SceneConfig struct {
	Name string `yaml:"name"`
	Mesh string `yaml:"mesh"` // glTF file for the mesh scene
}

// RenderConfig contains sampling and scheduling settings.
type RenderConfig struct {
	Width           int    `yaml:"width"`
	SamplesPerPixel int    `yaml:"samples"`
	MaxDepth        int    `yaml:"depth"`
	Workers         int    `yaml:"workers"`   // 0 uses every CPU
	TileSize        int    `yaml:"tile_size"` // 0 uses the renderer default
	Seed            uint64 `yaml:"seed"`      // 0 keeps the scene's seed
}

// OutputConfig controls where and how the image is written.
type OutputConfig struct {
	Path        string `yaml:"path"`
	Progressive bool   `yaml:"progressive"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Scene: SceneConfig{
			Name: "default",
		},
		Render: RenderConfig{
			Width:           1200,
			SamplesPerPixel: 100,
			MaxDepth:        50,
			Workers:         0,
			TileSize:        0,
			Seed:            0,
		},
		Output: OutputConfig{
			Path:        "output.png",
			Progressive: false,
		},
	}
}

// LoadConfig loads the configuration from a file. The file is parsed over
// the defaults, so a partial file only overrides what it names. On error
// the returned config still holds usable defaults.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not readable: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks that the settings can drive a render.
func (c *Config) Validate() error {
	if c.Scene.Name == "" {
		return fmt.Errorf("scene name must not be empty")
	}
	if c.Render.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Render.Width)
	}
	if c.Render.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples must be positive, got %d", c.Render.SamplesPerPixel)
	}
	if c.Render.MaxDepth <= 0 {
		return fmt.Errorf("depth must be positive, got %d", c.Render.MaxDepth)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Render.Workers)
	}
	if c.Render.TileSize < 0 {
		return fmt.Errorf("tile size must not be negative, got %d", c.Render.TileSize)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output path must not be empty")
	}
	return nil
}
