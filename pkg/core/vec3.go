package core

import (
	"math"
)

// Vec3 is a 3D vector that doubles as a point and as an RGB color
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 builds a vector from its components
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + u
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

// Subtract returns v - u
func (v Vec3) Subtract(u Vec3) Vec3 {
	return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z}
}

// Multiply scales every component by s
func (v Vec3) Multiply(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// MultiplyVec multiplies component by component, the way colors filter light
func (v Vec3) MultiplyVec(u Vec3) Vec3 {
	return Vec3{
		X: v.X * u.X,
		Y: v.Y * u.Y,
		Z: v.Z * u.Z,
	}
}

// Length returns the Euclidean norm
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared norm without the square root
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of v and u
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product of v and u
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Normalize returns the unit vector pointing the same way.
// The zero vector normalizes to itself rather than dividing by zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{0, 0, 0}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Negate flips the sign of every component
func (v Vec3) Negate() Vec3 {
	return Vec3{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// Clamp limits every component to the interval [lo, hi]
func (v Vec3) Clamp(lo, hi float64) Vec3 {
	return Vec3{
		X: max(lo, min(hi, v.X)),
		Y: max(lo, min(hi, v.Y)),
		Z: max(lo, min(hi, v.Z)),
	}
}

// GammaCorrect raises each component to 1/gamma for display encoding
func (v Vec3) GammaCorrect(gamma float64) Vec3 {
	inv := 1.0 / gamma
	return Vec3{
		X: math.Pow(v.X, inv),
		Y: math.Pow(v.Y, inv),
		Z: math.Pow(v.Z, inv),
	}
}

// Luminance weights the RGB channels by the Rec. 601 coefficients
// 0.299*R + 0.587*G + 0.114*B
func (v Vec3) Luminance() float64 {
	return 0.299*v.X + 0.587*v.Y + 0.114*v.Z
}

// NearZero reports whether every component sits within 1e-8 of zero
func (v Vec3) NearZero() bool {
	const epsilon = 1e-8
	return math.Abs(v.X) < epsilon && math.Abs(v.Y) < epsilon && math.Abs(v.Z) < epsilon
}

// IsFinite reports whether no component is NaN or infinite
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Vec2 is a 2D vector, used for texture coordinates and sample points
type Vec2 struct {
	X, Y float64
}

// NewVec2 builds a 2D vector from its components
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Ray is a half-line with an origin, a direction, and a capture time for
// motion blur. Direction need not be normalized; intersection code works
// with the parametric form Origin + t*Direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64
}

// NewRay builds a ray at time zero
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point t units along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
