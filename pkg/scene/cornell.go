package scene

import (
	"github.com/DenisKolodin/lustre-go/pkg/core"
	"github.com/DenisKolodin/lustre-go/pkg/geometry"
	"github.com/DenisKolodin/lustre-go/pkg/material"
	"github.com/DenisKolodin/lustre-go/pkg/renderer"
)

// Edge length of the Cornell box.
const cornellSize = 555.0

func cornellWhite() *material.Lambertian {
	return material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
}

// newCornellBase assembles the empty box: five walls, the ceiling light,
// the standard square camera, and a black background.
func newCornellBase(o Overrides, lightCorner, lightU, lightV, emission core.Vec3) *Scene {
	cameraConfig := o.camera(renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40,
	})
	camera := renderer.NewCamera(cameraConfig)

	s := &Scene{
		Camera:       camera,
		CameraConfig: cameraConfig,
		Top:          core.NewVec3(0, 0, 0),
		Bottom:       core.NewVec3(0, 0, 0),
		SamplingConfig: fitSampling(o.sampling(core.SamplingConfig{
			SamplesPerPixel: 150,
			MaxDepth:        40,
			Seed:            42,
		}), camera),
	}

	white := cornellWhite()
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	xAxis := core.NewVec3(cornellSize, 0, 0)
	yAxis := core.NewVec3(0, cornellSize, 0)
	zAxis := core.NewVec3(0, 0, cornellSize)

	s.Add(
		geometry.NewQuad(core.NewVec3(0, 0, 0), xAxis, zAxis, white),           // floor
		geometry.NewQuad(core.NewVec3(0, cornellSize, 0), xAxis, zAxis, white), // ceiling
		geometry.NewQuad(core.NewVec3(0, 0, cornellSize), xAxis, yAxis, white), // back wall
		geometry.NewQuad(core.NewVec3(0, 0, 0), zAxis, yAxis, red),             // left wall
		geometry.NewQuad(core.NewVec3(cornellSize, 0, 0), yAxis, zAxis, green), // right wall
	)
	s.AddQuadLight(lightCorner, lightU, lightV, emission)

	return s
}

// NewCornellScene is the classic Cornell box with a mirrored and a glass
// sphere standing in for the usual blocks.
func NewCornellScene(overrides ...Overrides) *Scene {
	s := newCornellBase(mergeOverrides(overrides),
		core.NewVec3(213, 554, 227), core.NewVec3(130, 0, 0), core.NewVec3(0, 0, 105),
		core.NewVec3(15, 15, 15))

	s.Add(
		geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0)),
		geometry.NewSphere(core.NewVec3(370, 90, 351), 90, material.NewDielectric(1.5)),
	)

	return s
}

// cornellBlocks returns the two white boxes, each rotated about its own
// base and pushed into place.
func cornellBlocks() (short, tall core.Shape) {
	white := cornellWhite()

	shortBox := geometry.NewBoxFromCorners(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	short = geometry.NewTranslated(geometry.NewRotatedY(shortBox, -18), core.NewVec3(130, 0, 65))

	tallBox := geometry.NewBoxFromCorners(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	tall = geometry.NewTranslated(geometry.NewRotatedY(tallBox, 15), core.NewVec3(265, 0, 295))

	return short, tall
}

// NewCornellBoxesScene is the Cornell box with the traditional rotated
// blocks.
func NewCornellBoxesScene(overrides ...Overrides) *Scene {
	s := newCornellBase(mergeOverrides(overrides),
		core.NewVec3(213, 554, 227), core.NewVec3(130, 0, 0), core.NewVec3(0, 0, 105),
		core.NewVec3(15, 15, 15))

	short, tall := cornellBlocks()
	s.Add(short, tall)

	return s
}

// NewCornellSmokeScene replaces the blocks with participating media: white
// fog over the short block, black smoke over the tall one, under a wider
// and dimmer ceiling light.
func NewCornellSmokeScene(overrides ...Overrides) *Scene {
	s := newCornellBase(mergeOverrides(overrides),
		core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305),
		core.NewVec3(7, 7, 7))

	short, tall := cornellBlocks()
	s.Add(
		geometry.NewConstantMedium(short, 0.01, material.NewIsotropic(core.NewVec3(1, 1, 1))),
		geometry.NewConstantMedium(tall, 0.01, material.NewIsotropic(core.NewVec3(0, 0, 0))),
	)

	return s
}
