package scene

import (
	"github.com/DenisKolodin/lustre-go/pkg/core"
	"github.com/DenisKolodin/lustre-go/pkg/geometry"
	"github.com/DenisKolodin/lustre-go/pkg/material"
	"github.com/DenisKolodin/lustre-go/pkg/renderer"
)

// NewSimpleLightScene places two marble-noise spheres in the dark with a
// single rectangular lamp, so every pixel owes its color to the light.
func NewSimpleLightScene(overrides ...Overrides) *Scene {
	o := mergeOverrides(overrides)
	cameraConfig := o.camera(renderer.CameraConfig{
		Center:      core.NewVec3(26, 3, 6),
		LookAt:      core.NewVec3(0, 2, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        20,
	})
	camera := renderer.NewCamera(cameraConfig)
	sampling := fitSampling(o.sampling(core.SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
		Seed:            42,
	}), camera)

	s := &Scene{
		Camera:         camera,
		CameraConfig:   cameraConfig,
		Top:            core.NewVec3(0, 0, 0),
		Bottom:         core.NewVec3(0, 0, 0),
		SamplingConfig: sampling,
	}

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, int64(sampling.Seed)))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	s.AddQuadLight(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), core.NewVec3(4, 4, 4))

	return s
}
