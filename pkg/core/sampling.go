package core

import (
	"math"
	"math/rand"
)

// Sampler supplies the random numbers consumed during rendering.
// Implementations decide the source, so tests can plug in fixed sequences.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler draws samples from a math/rand generator
type RandomSampler struct {
	rng *rand.Rand
}

// NewRandomSampler wraps an existing generator as a Sampler
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{rng: random}
}

// Get1D draws one value in [0, 1)
func (s *RandomSampler) Get1D() float64 {
	return s.rng.Float64()
}

// Get2D draws a pair of values in [0, 1)
func (s *RandomSampler) Get2D() Vec2 {
	return NewVec2(s.rng.Float64(), s.rng.Float64())
}

// Get3D draws a triple of values in [0, 1)
func (s *RandomSampler) Get3D() Vec3 {
	return NewVec3(s.rng.Float64(), s.rng.Float64(), s.rng.Float64())
}

// SampleCosineHemisphere maps a 2D sample to a cosine-weighted direction
// in the hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	// Disk coordinates whose projection gives the cosine weighting
	phi := 2.0 * math.Pi * sample.X
	h := sample.Y
	radius := math.Sqrt(h)

	dx := radius * math.Cos(phi)
	dy := radius * math.Sin(phi)
	up := math.Sqrt(1.0 - h)

	// Build an orthonormal frame with normal as its third axis.
	// The helper axis only needs to avoid being parallel to normal.
	var helper Vec3
	if math.Abs(normal.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	} else {
		helper = NewVec3(1, 0, 0)
	}

	tangent := helper.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return tangent.Multiply(dx).Add(bitangent.Multiply(dy)).Add(normal.Multiply(up))
}

// SampleOnUnitSphere maps a 2D sample to a uniform direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // latitude is uniform in [-1, 1]
	rim := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := rim * math.Cos(phi)
	y := rim * math.Sin(phi)
	return NewVec3(x, y, z)
}

// SamplePointInUnitDisk maps a 2D sample to a point in the unit disk via
// concentric mapping, which keeps the distribution uniform without rejection
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	// Recenter the square onto [-1,1] x [-1,1]
	mapped := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if mapped.X == 0 && mapped.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	// Pick the dominant axis so the square folds onto the disk evenly
	var theta, radius float64
	if math.Abs(mapped.X) > math.Abs(mapped.Y) {
		radius = mapped.X
		theta = math.Pi / 4 * (mapped.Y / mapped.X)
	} else {
		radius = mapped.Y
		theta = math.Pi/2 - math.Pi/4*(mapped.X/mapped.Y)
	}

	return NewVec3(radius*math.Cos(theta), radius*math.Sin(theta), 0)
}

// SamplePointInUnitSphere maps a 3D sample to a point inside the unit sphere
// by inverting the CDF in spherical coordinates, so no rejection loop is needed
func SamplePointInUnitSphere(sample Vec3) Vec3 {
	// Cube root keeps the radial density proportional to shell volume,
	// and the polar cosine is uniform in [-1, 1]
	radius := math.Pow(sample.X, 1.0/3.0)
	phi := 2 * math.Pi * sample.Y
	cosTheta := 2*sample.Z - 1
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)

	x := radius * sinTheta * math.Cos(phi)
	y := radius * sinTheta * math.Sin(phi)
	z := radius * cosTheta

	return NewVec3(x, y, z)
}
