package scene

import (
	"math/rand"

	"github.com/DenisKolodin/lustre-go/pkg/core"
	"github.com/DenisKolodin/lustre-go/pkg/geometry"
	"github.com/DenisKolodin/lustre-go/pkg/loaders"
	"github.com/DenisKolodin/lustre-go/pkg/material"
	"github.com/DenisKolodin/lustre-go/pkg/renderer"
)

// NewFinalScene builds the kitchen-sink showcase: a box-grid terrain under
// a large ceiling light, a motion-blurred sphere, glass and brushed metal,
// a subsurface marble, thin world mist, an image-textured globe, a noise
// sphere, and a rotated cluster of a thousand small white spheres.
func NewFinalScene(overrides ...Overrides) (*Scene, error) {
	o := mergeOverrides(overrides)
	cameraConfig := o.camera(renderer.CameraConfig{
		Center:       core.NewVec3(478, 278, -600),
		LookAt:       core.NewVec3(278, 278, 0),
		Up:           core.NewVec3(0, 1, 0),
		Width:        400,
		AspectRatio:  1.0,
		VFov:         40,
		ShutterOpen:  0,
		ShutterClose: 1,
	})
	camera := renderer.NewCamera(cameraConfig)
	sampling := fitSampling(o.sampling(core.SamplingConfig{
		SamplesPerPixel: 250,
		MaxDepth:        40,
		Seed:            42,
	}), camera)

	s := &Scene{
		Camera:         camera,
		CameraConfig:   cameraConfig,
		Top:            core.NewVec3(0, 0, 0),
		Bottom:         core.NewVec3(0, 0, 0),
		SamplingConfig: sampling,
	}

	// The procedural layout is driven by the sampling seed.
	rng := rand.New(rand.NewSource(int64(sampling.Seed)))

	terrain, err := groundBoxes(rng)
	if err != nil {
		return nil, err
	}
	s.Add(terrain)

	s.AddQuadLight(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), core.NewVec3(7, 7, 7))

	glass := material.NewDielectric(1.5)

	// Drifts +x over the exposure for motion blur.
	blurCenter := core.NewVec3(400, 400, 200)
	s.Add(geometry.NewMovingSphere(blurCenter, blurCenter.Add(core.NewVec3(30, 0, 0)), 0, 1, 50,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	s.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, glass),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Dense blue medium inside a glass shell for a subsurface look.
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, glass)
	s.Add(
		boundary,
		geometry.NewConstantMedium(boundary, 0.2, material.NewIsotropic(core.NewVec3(0.2, 0.4, 0.9))),
	)

	// Thin mist over the whole scene.
	mistBoundary := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, glass)
	s.Add(geometry.NewConstantMedium(mistBoundary, 0.00001, material.NewIsotropic(core.NewVec3(1, 1, 1))))

	// The globe falls back to a placeholder checker when the image file
	// is missing.
	earth, _ := loaders.LoadImageTexture("assets/earthmap.jpg")
	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earth)))

	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 90,
		material.NewTexturedLambertian(material.NewNoiseTexture(0.5, int64(sampling.Seed)))))

	cluster, err := sphereCluster(rng)
	if err != nil {
		return nil, err
	}
	s.Add(geometry.NewTranslated(geometry.NewRotatedY(cluster, 15), core.NewVec3(-100, 270, 395)))

	return s, nil
}

// groundBoxes builds the 20x20 grid of boxes with random heights that
// forms the terrain, bundled into its own BVH.
func groundBoxes(rng *rand.Rand) (*geometry.BVH, error) {
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))

	const perSide = 20
	const step = 100.0
	boxes := make([]core.Shape, 0, perSide*perSide)
	for i := 0; i < perSide; i++ {
		x0 := -1000.0 + float64(i)*step
		for j := 0; j < perSide; j++ {
			z0 := -1000.0 + float64(j)*step
			y1 := 1 + 100*rng.Float64()
			boxes = append(boxes, geometry.NewBoxFromCorners(
				core.NewVec3(x0, 0, z0),
				core.NewVec3(x0+step, y1, z0+step),
				ground,
			))
		}
	}

	return geometry.NewBVH(boxes, 0, 1)
}

// sphereCluster scatters a thousand small white spheres through a
// 165-unit cube anchored at the origin.
func sphereCluster(rng *rand.Rand) (*geometry.BVH, error) {
	white := cornellWhite()

	spheres := make([]core.Shape, 0, 1000)
	for i := 0; i < 1000; i++ {
		center := core.NewVec3(165*rng.Float64(), 165*rng.Float64(), 165*rng.Float64())
		spheres = append(spheres, geometry.NewSphere(center, 10, white))
	}

	return geometry.NewBVH(spheres, 0, 1)
}
