package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// Transformed wraps a shape with an affine transform. Rays are mapped into
// the shape's local space for intersection, hit points and normals are mapped
// back out. The wrapped shape itself is never modified, so one shape can be
// instanced under several transforms.
type Transformed struct {
	Shape     core.Shape
	forward   mgl64.Mat4 // local space to world space
	inverse   mgl64.Mat4 // world space to local space
	normalMat mgl64.Mat4 // inverse transpose, maps local normals to world
}

// NewTransformed wraps a shape with an arbitrary affine transform.
// Fails if the transform is singular, since rays could not be mapped
// into local space.
func NewTransformed(shape core.Shape, transform mgl64.Mat4) (*Transformed, error) {
	det := transform.Det()
	if math.IsNaN(det) || math.Abs(det) < 1e-12 {
		return nil, core.NewConstructionError("transformed shape", "transform is singular (det %v)", det)
	}

	inverse := transform.Inv()
	return &Transformed{
		Shape:     shape,
		forward:   transform,
		inverse:   inverse,
		normalMat: inverse.Transpose(),
	}, nil
}

// NewTranslated wraps a shape moved by the given offset
func NewTranslated(shape core.Shape, offset core.Vec3) *Transformed {
	t, _ := NewTransformed(shape, mgl64.Translate3D(offset.X, offset.Y, offset.Z))
	return t
}

// NewRotatedY wraps a shape rotated about the Y axis by the given angle in degrees
func NewRotatedY(shape core.Shape, angleDegrees float64) *Transformed {
	t, _ := NewTransformed(shape, mgl64.HomogRotate3DY(mgl64.DegToRad(angleDegrees)))
	return t
}

// transformPoint applies the full affine transform to a position
func transformPoint(m mgl64.Mat4, p core.Vec3) core.Vec3 {
	v := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return core.NewVec3(v.X(), v.Y(), v.Z())
}

// transformDirection applies only the linear part of the transform
func transformDirection(m mgl64.Mat4, d core.Vec3) core.Vec3 {
	v := m.Mul4x1(mgl64.Vec4{d.X, d.Y, d.Z, 0})
	return core.NewVec3(v.X(), v.Y(), v.Z())
}

// Hit maps the ray into local space, intersects the wrapped shape, and maps
// the result back to world space. The ray parameter t is identical in both
// spaces because the direction vector is transformed without normalization.
func (t *Transformed) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	localRay := core.Ray{
		Origin:    transformPoint(t.inverse, ray.Origin),
		Direction: transformDirection(t.inverse, ray.Direction),
		Time:      ray.Time,
	}

	hit, ok := t.Shape.Hit(localRay, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	// Normals map through the inverse transpose, which preserves their
	// orientation against the ray direction, so the face flag carries over
	hit.Point = transformPoint(t.forward, hit.Point)
	hit.Normal = transformDirection(t.normalMat, hit.Normal).Normalize()

	return hit, true
}

// BoundingBox transforms all 8 corners of the wrapped shape's box and
// bounds them in world space
func (t *Transformed) BoundingBox(time0, time1 float64) core.AABB {
	box := t.Shape.BoundingBox(time0, time1)

	corners := [8]core.Vec3{
		core.NewVec3(box.Min.X, box.Min.Y, box.Min.Z),
		core.NewVec3(box.Max.X, box.Min.Y, box.Min.Z),
		core.NewVec3(box.Min.X, box.Max.Y, box.Min.Z),
		core.NewVec3(box.Max.X, box.Max.Y, box.Min.Z),
		core.NewVec3(box.Min.X, box.Min.Y, box.Max.Z),
		core.NewVec3(box.Max.X, box.Min.Y, box.Max.Z),
		core.NewVec3(box.Min.X, box.Max.Y, box.Max.Z),
		core.NewVec3(box.Max.X, box.Max.Y, box.Max.Z),
	}

	for i := range corners {
		corners[i] = transformPoint(t.forward, corners[i])
	}

	return core.NewAABBFromPoints(corners[:]...)
}

// Validate rejects wrappers around invalid shapes
func (t *Transformed) Validate() error {
	if t.Shape == nil {
		return core.NewConstructionError("transformed shape", "wrapped shape is nil")
	}
	if validator, ok := t.Shape.(core.Validator); ok {
		return validator.Validate()
	}
	return nil
}
