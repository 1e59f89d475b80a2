package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DenisKolodin/lustre-go/pkg/core"
	"github.com/DenisKolodin/lustre-go/pkg/renderer"
)

// ErrUnknownScene reports a scene name that is not in the catalog.
var ErrUnknownScene = errors.New("unknown scene")

// Overrides adjusts a catalog scene's defaults, typically from command
// line flags. Zero values keep the scene's own settings; camera fields
// merge individually.
type Overrides struct {
	Camera          renderer.CameraConfig
	SamplesPerPixel int
	MaxDepth        int
	Workers         int
	TileSize        int
	Seed            uint64
	MeshPath        string // Only the mesh scene reads this
}

// mergeOverrides collapses the optional variadic argument.
func mergeOverrides(overrides []Overrides) Overrides {
	if len(overrides) > 0 {
		return overrides[0]
	}
	return Overrides{}
}

func (o Overrides) camera(base renderer.CameraConfig) renderer.CameraConfig {
	return renderer.MergeCameraConfig(base, o.Camera)
}

func (o Overrides) sampling(base core.SamplingConfig) core.SamplingConfig {
	if o.SamplesPerPixel > 0 {
		base.SamplesPerPixel = o.SamplesPerPixel
	}
	if o.MaxDepth > 0 {
		base.MaxDepth = o.MaxDepth
	}
	if o.Workers > 0 {
		base.Workers = o.Workers
	}
	if o.TileSize > 0 {
		base.TileSize = o.TileSize
	}
	if o.Seed != 0 {
		base.Seed = o.Seed
	}
	return base
}

// Names lists the catalog scenes in presentation order.
func Names() []string {
	return []string{
		"default",
		"cornell",
		"cornell-boxes",
		"cornell-smoke",
		"simple-light",
		"final",
		"mesh",
	}
}

// ByName builds a catalog scene. The empty name maps to the default
// scene, so callers can pass flag values straight through.
func ByName(name string, overrides ...Overrides) (*Scene, error) {
	switch name {
	case "", "default":
		return NewDefaultScene(overrides...), nil
	case "cornell":
		return NewCornellScene(overrides...), nil
	case "cornell-boxes":
		return NewCornellBoxesScene(overrides...), nil
	case "cornell-smoke":
		return NewCornellSmokeScene(overrides...), nil
	case "simple-light":
		return NewSimpleLightScene(overrides...), nil
	case "final":
		return NewFinalScene(overrides...)
	case "mesh":
		return NewMeshScene(overrides...)
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}
