package geometry

import (
	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// Box is an axis-aligned rectangular box assembled from six quads.
// Rotated boxes are built by wrapping a Box in a Transformed shape.
type Box struct {
	Center   core.Vec3     // midpoint of the box
	Size     core.Vec3     // half-extent along each axis
	Material core.Material // shared by all six faces
	faces    [6]*Quad
	bbox     core.AABB
}

// NewBox builds an axis-aligned box around center with the given half-extents,
// so a size of (1,1,1) yields a 2x2x2 box
func NewBox(center, size core.Vec3, material core.Material) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Material: material,
	}

	box.buildFaces()

	return box
}

// NewBoxFromCorners builds an axis-aligned box spanning two opposite corners
func NewBoxFromCorners(min, max core.Vec3, material core.Material) *Box {
	center := min.Add(max).Multiply(0.5)
	size := max.Subtract(min).Multiply(0.5)
	return NewBox(center, size, material)
}

// buildFaces assembles the six quads and the cached bounding box
func (b *Box) buildFaces() {
	// Eight corners, wound as two XY rings: indices 0-3 on the back
	// (Z-) side, 4-7 on the front (Z+) side
	ring := [4]core.Vec2{
		core.NewVec2(-1, -1),
		core.NewVec2(1, -1),
		core.NewVec2(1, 1),
		core.NewVec2(-1, 1),
	}
	var corners [8]core.Vec3
	for zi, z := range [2]float64{-1, 1} {
		for ri, rc := range ring {
			corners[zi*4+ri] = core.NewVec3(
				rc.X*b.Size.X,
				rc.Y*b.Size.Y,
				z*b.Size.Z,
			).Add(b.Center)
		}
	}

	// Each face is a quad anchored at one corner with two edge vectors
	// running to adjacent corners. Winding keeps normals pointing outward.
	faceIndex := [6][3]int{
		{4, 5, 7}, // Z+ front
		{1, 0, 2}, // Z- back
		{5, 1, 6}, // X+ right
		{0, 4, 3}, // X- left
		{3, 7, 2}, // Y+ top
		{4, 0, 5}, // Y- bottom
	}
	for i, f := range faceIndex {
		anchor := corners[f[0]]
		b.faces[i] = NewQuad(
			anchor,
			corners[f[1]].Subtract(anchor),
			corners[f[2]].Subtract(anchor),
			b.Material,
		)
	}

	b.bbox = core.NewAABBFromPoints(corners[0], corners[1], corners[2], corners[3],
		corners[4], corners[5], corners[6], corners[7])
}

// Hit finds the nearest intersection across all six faces
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	var nearest *core.HitRecord
	nearestT := tMax

	for _, face := range b.faces {
		if hit, isHit := face.Hit(ray, tMin, nearestT, sampler); isHit {
			if hit.T < nearestT {
				nearestT = hit.T
				nearest = hit
			}
		}
	}

	return nearest, nearest != nil
}

// BoundingBox returns the box's own extent, which motion does not change
func (b *Box) BoundingBox(time0, time1 float64) core.AABB {
	return b.bbox
}

// Validate rejects boxes with undefined geometry
func (b *Box) Validate() error {
	if !b.Center.IsFinite() || !b.Size.IsFinite() {
		return core.NewConstructionError("box", "center or size is not finite")
	}
	if b.Size.X <= 0 || b.Size.Y <= 0 || b.Size.Z <= 0 {
		return core.NewConstructionError("box", "size %v must be positive along every axis", b.Size)
	}
	if b.Material == nil {
		return core.NewConstructionError("box", "material is nil")
	}
	return nil
}
