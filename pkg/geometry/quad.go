package geometry

import (
	"math"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// Quad is a parallelogram anchored at a corner and spanned by two edge vectors
type Quad struct {
	Corner   core.Vec3
	U        core.Vec3 // first spanning edge
	V        core.Vec3 // second spanning edge
	Normal   core.Vec3 // unit normal, U x V direction
	Material core.Material
	D        float64   // plane constant in normal . p = D
	W        core.Vec3 // cached factor for the planar coordinates
	bbox     core.AABB // padded so axis-aligned quads stay hittable
}

// NewQuad builds a quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material core.Material) *Quad {
	span := u.Cross(v)
	normal := span.Normalize()

	// Plane through the corner: normal . p = D
	d := normal.Dot(corner)

	// W maps a point on the plane to its (alpha, beta) edge coordinates
	w := normal.Multiply(1.0 / normal.Dot(span))

	// A flat quad has zero extent along its normal, so the box needs padding
	// for the slab test
	bbox := core.NewAABBFromPoints(corner, corner.Add(u), corner.Add(v), corner.Add(u).Add(v)).Pad(1e-4)

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: material,
		D:        d,
		W:        w,
		bbox:     bbox,
	}
}

// Hit intersects the ray with the quad's plane, then tests the planar
// coordinates against the spanned parallelogram
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	denom := ray.Direction.Dot(q.Normal)

	// Parallel rays never cross the plane
	if math.Abs(denom) < 1e-8 {
		return nil, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denom

	if t < tMin || t > tMax {
		return nil, false
	}

	point := ray.At(t)

	// Planar coordinates of the hit relative to the corner
	rel := point.Subtract(q.Corner)
	alpha := q.W.Dot(rel.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(rel))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	// The planar coordinates double as texture coordinates
	rec := &core.HitRecord{
		T:        t,
		Point:    point,
		Material: q.Material,
		U:        alpha,
		V:        beta,
	}

	rec.SetFaceNormal(ray, q.Normal)

	return rec, true
}

// BoundingBox returns the padded box around the four corners
func (q *Quad) BoundingBox(time0, time1 float64) core.AABB {
	return q.bbox
}

// Validate rejects quads with undefined or degenerate geometry
func (q *Quad) Validate() error {
	if !q.Corner.IsFinite() || !q.U.IsFinite() || !q.V.IsFinite() {
		return core.NewConstructionError("quad", "corner or edge vectors are not finite")
	}
	if q.U.Cross(q.V).LengthSquared() < 1e-16 {
		return core.NewConstructionError("quad", "edge vectors %v and %v do not span a surface", q.U, q.V)
	}
	if q.Material == nil {
		return core.NewConstructionError("quad", "material is nil")
	}
	return nil
}
