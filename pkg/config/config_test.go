package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	if c.Scene.Name != "default" {
		t.Errorf("Expected scene \"default\", got %q", c.Scene.Name)
	}
	if c.Render.Width != 1200 {
		t.Errorf("Expected width 1200, got %d", c.Render.Width)
	}
	if c.Render.SamplesPerPixel != 100 {
		t.Errorf("Expected 100 samples, got %d", c.Render.SamplesPerPixel)
	}
	if c.Render.MaxDepth != 50 {
		t.Errorf("Expected depth 50, got %d", c.Render.MaxDepth)
	}
	if c.Output.Path != "output.png" {
		t.Errorf("Expected output.png, got %q", c.Output.Path)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Expected the defaults to validate, got %v", err)
	}
}

func TestLoadConfig_MissingFileKeepsDefaults(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Expected an error for a missing file")
	}
	if c == nil {
		t.Fatal("Expected a usable default config despite the error")
	}
	if *c != *DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", c)
	}
}

func TestLoadConfig_PartialFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	partial := "render:\n  width: 640\n  seed: 7\nscene:\n  name: cornell\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if c.Render.Width != 640 {
		t.Errorf("Expected width 640, got %d", c.Render.Width)
	}
	if c.Render.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", c.Render.Seed)
	}
	if c.Scene.Name != "cornell" {
		t.Errorf("Expected scene cornell, got %q", c.Scene.Name)
	}

	// Everything the file does not name keeps its default.
	if c.Render.SamplesPerPixel != 100 {
		t.Errorf("Expected 100 samples, got %d", c.Render.SamplesPerPixel)
	}
	if c.Output.Path != "output.png" {
		t.Errorf("Expected output.png, got %q", c.Output.Path)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("render: [not a map"), 0644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected a parse error for malformed YAML")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	saved := DefaultConfig()
	saved.Scene.Name = "final"
	saved.Scene.Mesh = "models/bunny.gltf"
	saved.Render.Width = 800
	saved.Render.Seed = 1234
	saved.Output.Progressive = true

	if err := SaveConfig(saved, path); err != nil {
		t.Fatalf("SaveConfig returned error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if *loaded != *saved {
		t.Errorf("Expected %+v after the round trip, got %+v", saved, loaded)
	}
}

func TestValidate_RejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty scene name", mutate: func(c *Config) { c.Scene.Name = "" }},
		{name: "zero width", mutate: func(c *Config) { c.Render.Width = 0 }},
		{name: "negative samples", mutate: func(c *Config) { c.Render.SamplesPerPixel = -1 }},
		{name: "zero depth", mutate: func(c *Config) { c.Render.MaxDepth = 0 }},
		{name: "negative workers", mutate: func(c *Config) { c.Render.Workers = -2 }},
		{name: "negative tile size", mutate: func(c *Config) { c.Render.TileSize = -8 }},
		{name: "empty output path", mutate: func(c *Config) { c.Output.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("Expected a validation error, got nil")
			}
		})
	}
}
