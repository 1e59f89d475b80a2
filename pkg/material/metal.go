package material

import (
	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// Metal reflects specularly, with an optional fuzz that roughens the mirror
type Metal struct {
	Albedo   core.Vec3
	Fuzzness float64 // 0 is a perfect mirror, 1 is maximally rough
}

// NewMetal builds a metal, clamping fuzz into [0, 1]
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter mirrors the incoming ray about the normal and jitters it by fuzz
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	dir := reflect(rayIn.Direction.Normalize(), hit.Normal)

	if m.Fuzzness > 0 {
		jitter := core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzzness)
		dir = dir.Add(jitter)
	}

	// The jitter can cancel the reflection entirely; absorb the ray
	// rather than scatter a zero direction
	if dir.NearZero() {
		return core.ScatterResult{}, false
	}
	dir = dir.Normalize()

	scattered := core.Ray{Origin: hit.Point, Direction: dir, Time: rayIn.Time}

	// Rays pushed under the surface are absorbed
	aboveSurface := scattered.Direction.Dot(hit.Normal) > 0

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo, // no pi factor for specular
		PDF:         0,        // specular
	}, aboveSurface
}

// reflect mirrors v about the surface normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
