package core

import "math"

// AABB is an axis-aligned bounding box described by two opposite corners
type AABB struct {
	Min Vec3 // smallest coordinate on every axis
	Max Vec3 // largest coordinate on every axis
}

// NewAABB builds a box from its two corners
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints builds the tightest box containing every given point
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	lo := points[0]
	hi := points[0]

	for _, p := range points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		lo.Z = math.Min(lo.Z, p.Z)

		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
		hi.Z = math.Max(hi.Z, p.Z)
	}

	return AABB{Min: lo, Max: hi}
}

// Hit runs the slab test against the ray over the interval [tMin, tMax]
func (b AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		var lo, hi, o, d float64

		switch axis {
		case 0:
			lo, hi = b.Min.X, b.Max.X
			o, d = ray.Origin.X, ray.Direction.X
		case 1:
			lo, hi = b.Min.Y, b.Max.Y
			o, d = ray.Origin.Y, ray.Direction.Y
		case 2:
			lo, hi = b.Min.Z, b.Max.Z
			o, d = ray.Origin.Z, ray.Direction.Z
		}

		// A ray parallel to the slab either stays inside it forever or misses
		if math.Abs(d) < 1e-8 {
			if o < lo || o > hi {
				return false
			}
			continue
		}

		invD := 1.0 / d
		t1 := (lo - o) * invD
		t2 := (hi - o) * invD

		if t1 > t2 {
			t1, t2 = t2, t1
		}

		// Shrink the running interval by this slab's entry and exit
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)

		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns the smallest box enclosing both b and other
func (b AABB) Union(other AABB) AABB {
	lo := NewVec3(
		math.Min(b.Min.X, other.Min.X),
		math.Min(b.Min.Y, other.Min.Y),
		math.Min(b.Min.Z, other.Min.Z),
	)
	hi := NewVec3(
		math.Max(b.Max.X, other.Max.X),
		math.Max(b.Max.Y, other.Max.Y),
		math.Max(b.Max.Z, other.Max.Z),
	)
	return AABB{Min: lo, Max: hi}
}

// Center returns the midpoint of the box
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the extent of the box along each axis
func (b AABB) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

// SurfaceArea returns the total area of the six faces
func (b AABB) SurfaceArea() float64 {
	size := b.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis picks the axis with the largest extent (0=X, 1=Y, 2=Z)
func (b AABB) LongestAxis() int {
	size := b.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// AxisValue returns the box center's coordinate along the chosen axis
func (b AABB) AxisValue(axis int) float64 {
	center := b.Center()
	switch axis {
	case 0:
		return center.X
	case 1:
		return center.Y
	default:
		return center.Z
	}
}

// IsValid reports whether Min does not exceed Max on any axis
func (b AABB) IsValid() bool {
	return b.Min.X <= b.Max.X &&
		b.Min.Y <= b.Max.Y &&
		b.Min.Z <= b.Max.Z
}

// IsFinite reports whether both corners contain only finite values
func (b AABB) IsFinite() bool {
	return b.Min.IsFinite() && b.Max.IsFinite()
}

// Pad widens any axis thinner than epsilon so flat boxes survive the slab test
func (b AABB) Pad(epsilon float64) AABB {
	lo, hi := b.Min, b.Max
	if hi.X-lo.X < epsilon {
		lo.X -= epsilon / 2
		hi.X += epsilon / 2
	}
	if hi.Y-lo.Y < epsilon {
		lo.Y -= epsilon / 2
		hi.Y += epsilon / 2
	}
	if hi.Z-lo.Z < epsilon {
		lo.Z -= epsilon / 2
		hi.Z += epsilon / 2
	}
	return AABB{Min: lo, Max: hi}
}

// Expand grows the box by the given amount on every side
func (b AABB) Expand(amount float64) AABB {
	growth := NewVec3(amount, amount, amount)
	return AABB{
		Min: b.Min.Subtract(growth),
		Max: b.Max.Add(growth),
	}
}
