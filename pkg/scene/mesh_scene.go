package scene

import (
	"math"

	"github.com/DenisKolodin/lustre-go/pkg/core"
	"github.com/DenisKolodin/lustre-go/pkg/geometry"
	"github.com/DenisKolodin/lustre-go/pkg/loaders"
	"github.com/DenisKolodin/lustre-go/pkg/material"
	"github.com/DenisKolodin/lustre-go/pkg/renderer"
)

// NewMeshScene showcases triangle meshes under two sphere lights. With a
// MeshPath override it renders the glTF file at that path; otherwise it
// builds a procedural box, pyramid, and icosahedron.
func NewMeshScene(overrides ...Overrides) (*Scene, error) {
	o := mergeOverrides(overrides)
	cameraConfig := o.camera(renderer.CameraConfig{
		Center:      core.NewVec3(0, 2, 6),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       600,
		AspectRatio: 16.0 / 9.0,
		VFov:        45,
		Aperture:    0.02,
	})
	camera := renderer.NewCamera(cameraConfig)

	s := &Scene{
		Camera:       camera,
		CameraConfig: cameraConfig,
		Top:          core.NewVec3(0.5, 0.7, 1.0),
		Bottom:       core.NewVec3(1.0, 1.0, 1.0),
		SamplingConfig: fitSampling(o.sampling(core.SamplingConfig{
			SamplesPerPixel:    150,
			MaxDepth:           40,
			Seed:               42,
			AdaptiveMinSamples: 0.1,
			AdaptiveThreshold:  0.015,
		}), camera),
	}

	s.AddSphereLight(core.NewVec3(2, 6, 3), 1.5, core.NewVec3(12, 11, 10))
	s.AddSphereLight(core.NewVec3(-3, 4, 2), 0.8, core.NewVec3(6, 7, 8))
	s.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 100, material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))))

	if o.MeshPath != "" {
		shapes, err := loaders.LoadGLTF(o.MeshPath, material.NewLambertian(core.NewVec3(0.75, 0.75, 0.75)))
		if err != nil {
			return nil, err
		}
		s.Add(shapes...)
		return s, nil
	}

	box, err := boxMesh(core.NewVec3(1, 1, 1), material.NewMetal(core.NewVec3(0.8, 0.2, 0.2), 0.1))
	if err != nil {
		return nil, err
	}
	pyramid, err := pyramidMesh(1.5, 2.0, material.NewLambertian(core.NewVec3(0.2, 0.3, 0.8)))
	if err != nil {
		return nil, err
	}
	ico, err := icosahedronMesh(0.8, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.05))
	if err != nil {
		return nil, err
	}

	// Each mesh is modeled around the origin, spun about its own axis,
	// then pushed into place.
	s.Add(
		geometry.NewTranslated(geometry.NewRotatedY(box, 30), core.NewVec3(-2, 0.5, 0)),
		geometry.NewTranslated(geometry.NewRotatedY(pyramid, 45), core.NewVec3(0, 1, 0)),
		geometry.NewTranslated(geometry.NewRotatedY(ico, 60), core.NewVec3(2, 0.8, 0)),
	)

	return s, nil
}

// boxMesh builds an axis-aligned box of the given size centered on the
// origin, two triangles per face.
func boxMesh(size core.Vec3, mat core.Material) (*geometry.TriangleMesh, error) {
	h := size.Multiply(0.5)
	vertices := []core.Vec3{
		core.NewVec3(-h.X, -h.Y, -h.Z), // 0: left-bottom-back
		core.NewVec3(h.X, -h.Y, -h.Z),  // 1: right-bottom-back
		core.NewVec3(h.X, h.Y, -h.Z),   // 2: right-top-back
		core.NewVec3(-h.X, h.Y, -h.Z),  // 3: left-top-back
		core.NewVec3(-h.X, -h.Y, h.Z),  // 4: left-bottom-front
		core.NewVec3(h.X, -h.Y, h.Z),   // 5: right-bottom-front
		core.NewVec3(h.X, h.Y, h.Z),    // 6: right-top-front
		core.NewVec3(-h.X, h.Y, h.Z),   // 7: left-top-front
	}
	faces := []int{
		0, 1, 2, 0, 2, 3, // back
		4, 6, 5, 4, 7, 6, // front
		0, 3, 7, 0, 7, 4, // left
		1, 5, 6, 1, 6, 2, // right
		0, 4, 5, 0, 5, 1, // bottom
		3, 2, 6, 3, 6, 7, // top
	}
	return geometry.NewTriangleMesh(vertices, faces, mat, nil)
}

// pyramidMesh builds a square pyramid centered on the origin: the base
// sits at -height/2 and the apex at +height/2.
func pyramidMesh(baseSize, height float64, mat core.Material) (*geometry.TriangleMesh, error) {
	halfBase := baseSize / 2
	halfHeight := height / 2
	vertices := []core.Vec3{
		core.NewVec3(-halfBase, -halfHeight, -halfBase), // 0: left-back
		core.NewVec3(halfBase, -halfHeight, -halfBase),  // 1: right-back
		core.NewVec3(halfBase, -halfHeight, halfBase),   // 2: right-front
		core.NewVec3(-halfBase, -halfHeight, halfBase),  // 3: left-front
		core.NewVec3(0, halfHeight, 0),                  // 4: apex
	}
	faces := []int{
		0, 2, 1, 0, 3, 2, // base
		0, 1, 4, // back
		1, 2, 4, // right
		2, 3, 4, // front
		3, 0, 4, // left
	}
	return geometry.NewTriangleMesh(vertices, faces, mat, nil)
}

// icosahedronMesh builds a regular icosahedron whose vertices sit exactly
// at the given radius from the origin.
func icosahedronMesh(radius float64, mat core.Material) (*geometry.TriangleMesh, error) {
	phi := (1 + math.Sqrt(5)) / 2
	// Raw vertices are (0, +-1, +-phi) and cyclic permutations, all at
	// distance sqrt(1+phi^2) from the origin.
	scale := radius / math.Sqrt(1+phi*phi)

	raw := [][3]float64{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	vertices := make([]core.Vec3, len(raw))
	for i, v := range raw {
		vertices[i] = core.NewVec3(v[0]*scale, v[1]*scale, v[2]*scale)
	}

	faces := []int{
		// top cap around vertex 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// upper belt
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// bottom cap around vertex 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// lower belt
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return geometry.NewTriangleMesh(vertices, faces, mat, nil)
}
