package geometry

import (
	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// Triangle is a single triangle with an optional set of vertex UVs
type Triangle struct {
	V0, V1, V2    core.Vec3
	Material      core.Material
	normal        core.Vec3 // cached unit normal
	bbox          core.AABB // cached padded box
	uv0, uv1, uv2 core.Vec2 // per-vertex texture coordinates
	hasUV         bool
}

// NewTriangle builds a triangle from three vertices, deriving the normal
// from the winding order
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}

	t.computeNormal()
	t.computeBoundingBox()

	return t
}

// NewTriangleWithNormal builds a triangle that uses the supplied normal
// instead of the geometric one
func NewTriangleWithNormal(v0, v1, v2 core.Vec3, normal core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		normal:   normal.Normalize(),
	}

	t.computeBoundingBox()

	return t
}

// NewTriangleWithUVs builds a triangle carrying per-vertex texture coordinates
func NewTriangleWithUVs(v0, v1, v2 core.Vec3, uv0, uv1, uv2 core.Vec2, material core.Material) *Triangle {
	t := NewTriangle(v0, v1, v2, material)
	t.uv0, t.uv1, t.uv2 = uv0, uv1, uv2
	t.hasUV = true
	return t
}

func (t *Triangle) computeNormal() {
	e1 := t.V1.Subtract(t.V0)
	e2 := t.V2.Subtract(t.V0)
	t.normal = e1.Cross(e2).Normalize()
}

// computeBoundingBox caches the padded box. Axis-aligned triangles are flat
// along one axis, and the padding keeps the slab test from missing them.
func (t *Triangle) computeBoundingBox() {
	t.bbox = core.NewAABBFromPoints(t.V0, t.V1, t.V2).Pad(1e-4)
}

// Hit intersects the ray with the triangle using Moller-Trumbore
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	const epsilon = 1e-8

	e1 := t.V1.Subtract(t.V0)
	e2 := t.V2.Subtract(t.V0)

	pvec := ray.Direction.Cross(e2)
	det := e1.Dot(pvec)

	// A near-zero determinant means the ray runs in the triangle's plane
	if det > -epsilon && det < epsilon {
		return nil, false
	}

	invDet := 1.0 / det
	tvec := ray.Origin.Subtract(t.V0)
	u := invDet * tvec.Dot(pvec)

	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	qvec := tvec.Cross(e1)
	v := invDet * ray.Direction.Dot(qvec)

	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := invDet * e2.Dot(qvec)

	if tHit < tMin || tHit > tMax {
		return nil, false
	}

	rec := &core.HitRecord{
		T:        tHit,
		Point:    ray.At(tHit),
		Material: t.Material,
	}

	// Interpolate texture coordinates from the barycentric weights,
	// falling back to the weights themselves
	if t.hasUV {
		w := 1.0 - u - v
		rec.U = w*t.uv0.X + u*t.uv1.X + v*t.uv2.X
		rec.V = w*t.uv0.Y + u*t.uv1.Y + v*t.uv2.Y
	} else {
		rec.U = u
		rec.V = v
	}

	rec.SetFaceNormal(ray, t.normal)

	return rec, true
}

// BoundingBox returns the cached box, which motion does not change
func (t *Triangle) BoundingBox(time0, time1 float64) core.AABB {
	return t.bbox
}

// GetNormal returns the triangle's unit normal
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}

// Validate rejects triangles with undefined or degenerate geometry
func (t *Triangle) Validate() error {
	if !t.V0.IsFinite() || !t.V1.IsFinite() || !t.V2.IsFinite() {
		return core.NewConstructionError("triangle", "vertices are not finite")
	}
	e1 := t.V1.Subtract(t.V0)
	e2 := t.V2.Subtract(t.V0)
	if e1.Cross(e2).LengthSquared() < 1e-24 {
		return core.NewConstructionError("triangle", "vertices %v, %v, %v are collinear", t.V0, t.V1, t.V2)
	}
	if t.Material == nil {
		return core.NewConstructionError("triangle", "material is nil")
	}
	return nil
}
