package geometry

import (
	"math"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// Sphere is a stationary sphere
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere. A negative radius flips the surface normal
// inward, which is how hollow glass shells are modeled.
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit solves the quadratic for the ray and sphere, picking the nearest
// root inside [tMin, tMax]
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(disc)

	// Prefer the near root, fall back to the far one
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	rec := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Dividing by the signed radius flips the normal inward for hollow shells
	outward := rec.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	rec.SetFaceNormal(ray, outward)
	rec.U, rec.V = sphereUV(outward)

	return rec, true
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u in [0,1] is the angle around the Y axis from X = -1,
// v in [0,1] is the angle from the south pole up to the north pole.
func sphereUV(point core.Vec3) (u, v float64) {
	theta := math.Acos(-point.Y)
	phi := math.Atan2(-point.Z, point.X) + math.Pi

	u = phi / (2 * math.Pi)
	v = theta / math.Pi
	return u, v
}

// BoundingBox returns the cube around the sphere. The absolute value keeps
// boxes of inward-facing shells valid.
func (s *Sphere) BoundingBox(time0, time1 float64) core.AABB {
	r := math.Abs(s.Radius)
	extent := core.NewVec3(r, r, r)
	return core.NewAABB(
		s.Center.Subtract(extent),
		s.Center.Add(extent),
	)
}

// Validate rejects spheres with undefined geometry
func (s *Sphere) Validate() error {
	if !s.Center.IsFinite() {
		return core.NewConstructionError("sphere", "center %v is not finite", s.Center)
	}
	if math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) {
		return core.NewConstructionError("sphere", "radius %v is not finite", s.Radius)
	}
	if s.Radius == 0 {
		return core.NewConstructionError("sphere", "radius is zero")
	}
	if s.Material == nil {
		return core.NewConstructionError("sphere", "material is nil")
	}
	return nil
}
