package scene

import (
	"github.com/DenisKolodin/lustre-go/pkg/core"
	"github.com/DenisKolodin/lustre-go/pkg/geometry"
	"github.com/DenisKolodin/lustre-go/pkg/material"
	"github.com/DenisKolodin/lustre-go/pkg/renderer"
)

// Scene holds everything a render needs: the camera, the shapes, the
// gradient background, and the sampling settings. Shapes are kept as a
// flat list until Preprocess builds the BVH.
type Scene struct {
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Shapes         []core.Shape
	Top            core.Vec3 // Background gradient at the zenith
	Bottom         core.Vec3 // Background gradient at the horizon
	SamplingConfig core.SamplingConfig
	World          *geometry.BVH
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetBackgroundColors implements renderer.Scene
func (s *Scene) GetBackgroundColors() (core.Vec3, core.Vec3) {
	return s.Top, s.Bottom
}

// GetWorld implements renderer.Scene. It returns nil until Preprocess has
// built the BVH.
func (s *Scene) GetWorld() core.Shape {
	if s.World == nil {
		return nil
	}
	return s.World
}

// GetSamplingConfig implements renderer.Scene
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// Preprocess validates the shapes and builds the BVH over the camera's
// shutter interval, so moving shapes are bounded across the whole
// exposure. Malformed geometry surfaces here as a ConstructionError,
// before any pixel is traced. Calling it again rebuilds the tree.
func (s *Scene) Preprocess() error {
	for _, shape := range s.Shapes {
		if validator, ok := shape.(core.Validator); ok {
			if err := validator.Validate(); err != nil {
				return err
			}
		}
	}

	world, err := geometry.NewBVH(s.Shapes, s.CameraConfig.ShutterOpen, s.CameraConfig.ShutterClose)
	if err != nil {
		return err
	}
	s.World = world
	return nil
}

// Add appends shapes to the scene. Preprocess must run afterwards for
// them to become visible to rays.
func (s *Scene) Add(shapes ...core.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddSphereLight adds an emissive sphere.
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) {
	s.Add(geometry.NewSphere(center, radius, material.NewEmissive(emission)))
}

// AddQuadLight adds an emissive quad, the usual ceiling panel.
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) {
	s.Add(geometry.NewQuad(corner, u, v, material.NewEmissive(emission)))
}

// NewGroundQuad creates a large horizontal quad centered on the given
// point, a finite stand-in for an infinite ground plane that still has
// proper bounds for the BVH.
func NewGroundQuad(center core.Vec3, size float64, mat core.Material) *geometry.Quad {
	return geometry.NewQuad(
		core.NewVec3(center.X-size/2, center.Y, center.Z-size/2),
		core.NewVec3(size, 0, 0),
		core.NewVec3(0, 0, size),
		mat,
	)
}

// PrimitiveCount reports how many primitives the shape list expands to,
// counting each mesh triangle individually.
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += primitiveCount(shape)
	}
	return count
}

func primitiveCount(shape core.Shape) int {
	switch v := shape.(type) {
	case *geometry.TriangleMesh:
		return v.TriangleCount()
	case *geometry.Transformed:
		return primitiveCount(v.Shape)
	}
	return 1
}

// fitSampling copies the camera's pixel dimensions into the sampling
// config so the render buffer always matches the viewport.
func fitSampling(config core.SamplingConfig, camera *renderer.Camera) core.SamplingConfig {
	config.Width = camera.Width()
	config.Height = camera.Height()
	return config
}
