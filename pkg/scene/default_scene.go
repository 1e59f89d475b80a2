package scene

import (
	"github.com/DenisKolodin/lustre-go/pkg/core"
	"github.com/DenisKolodin/lustre-go/pkg/geometry"
	"github.com/DenisKolodin/lustre-go/pkg/material"
	"github.com/DenisKolodin/lustre-go/pkg/renderer"
)

// NewDefaultScene builds the material showcase: a diffuse, a brushed metal
// and a mirror sphere over a checkered ground, flanked by a solid and a
// hollow glass marble, lit by the sky gradient and a warm sun sphere.
func NewDefaultScene(overrides ...Overrides) *Scene {
	o := mergeOverrides(overrides)
	cameraConfig := o.camera(renderer.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2),
		LookAt:      core.NewVec3(0, 0.5, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40,
		Aperture:    0.05,
	})
	camera := renderer.NewCamera(cameraConfig)

	s := &Scene{
		Camera:       camera,
		CameraConfig: cameraConfig,
		Top:          core.NewVec3(0.5, 0.7, 1.0),
		Bottom:       core.NewVec3(1.0, 1.0, 1.0),
		SamplingConfig: fitSampling(o.sampling(core.SamplingConfig{
			SamplesPerPixel:    200,
			MaxDepth:           50,
			Seed:               42,
			AdaptiveMinSamples: 0.15,
			AdaptiveThreshold:  0.01,
		}), camera),
	}

	// The sine checker has no sign on exact axis planes, so the ground is
	// a large sphere rather than a quad at y=0.
	ground := material.NewTexturedLambertian(material.NewCheckerColors(3,
		core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.3, 0.1)))
	glass := material.NewDielectric(1.5)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0)),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),
	)

	// Hollow marble: the inner shell's negative radius flips its normals
	// inward, leaving a thin glass wall around a diffuse core.
	hollowCenter := core.NewVec3(-0.5, 0.25, -0.5)
	s.Add(
		geometry.NewSphere(hollowCenter, 0.25, glass),
		geometry.NewSphere(hollowCenter, -0.24, glass),
		geometry.NewSphere(hollowCenter, 0.2, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
	)

	s.AddSphereLight(core.NewVec3(30, 30.5, 15), 10, core.NewVec3(15, 14, 13))

	return s
}
