package geometry

import (
	"math"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// MovingSphere represents a sphere whose center moves linearly between two
// points over a time interval, producing motion blur when rays carry times
// sampled across the camera shutter.
type MovingSphere struct {
	Center0, Center1 core.Vec3 // Center at Time0 and Time1
	Time0, Time1     float64   // Motion interval
	Radius           float64
	Material         core.Material
}

// NewMovingSphere creates a sphere moving from center0 at time0 to center1 at time1
func NewMovingSphere(center0, center1 core.Vec3, time0, time1 float64, radius float64, material core.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: material,
	}
}

// CenterAt returns the sphere center at the given time, extrapolating
// linearly outside the motion interval
func (s *MovingSphere) CenterAt(time float64) core.Vec3 {
	if s.Time1 == s.Time0 {
		return s.Center0
	}
	fraction := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(fraction))
}

// Hit tests if a ray intersects with the sphere at the ray's time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	center := s.CenterAt(ray.Time)

	oc := ray.Origin.Subtract(center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(center).Multiply(1.0 / s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.U, hitRecord.V = sphereUV(outwardNormal)

	return hitRecord, true
}

// BoundingBox returns a box enclosing the sphere at both ends of the time
// range, which also covers every position in between for linear motion
func (s *MovingSphere) BoundingBox(time0, time1 float64) core.AABB {
	r := math.Abs(s.Radius)
	radius := core.NewVec3(r, r, r)

	box0 := core.NewAABB(s.CenterAt(time0).Subtract(radius), s.CenterAt(time0).Add(radius))
	box1 := core.NewAABB(s.CenterAt(time1).Subtract(radius), s.CenterAt(time1).Add(radius))
	return box0.Union(box1)
}

// Validate rejects moving spheres with undefined geometry
func (s *MovingSphere) Validate() error {
	if !s.Center0.IsFinite() || !s.Center1.IsFinite() {
		return core.NewConstructionError("moving sphere", "centers %v, %v are not finite", s.Center0, s.Center1)
	}
	if math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) || s.Radius == 0 {
		return core.NewConstructionError("moving sphere", "radius %v is not usable", s.Radius)
	}
	if math.IsNaN(s.Time0) || math.IsNaN(s.Time1) {
		return core.NewConstructionError("moving sphere", "time interval [%v, %v] is not finite", s.Time0, s.Time1)
	}
	if s.Material == nil {
		return core.NewConstructionError("moving sphere", "material is nil")
	}
	return nil
}
