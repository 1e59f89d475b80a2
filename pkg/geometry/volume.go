package geometry

import (
	"math"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// ConstantMedium represents a participating medium of uniform density filling
// a boundary shape, such as smoke or fog. Rays entering the boundary scatter
// at a random depth with probability rising exponentially with the distance
// traveled inside.
type ConstantMedium struct {
	Boundary      core.Shape    // Shape enclosing the medium
	Phase         core.Material // Phase function, usually Isotropic
	Density       float64       // Average scattering events per unit distance
	negInvDensity float64       // Cached -1/density for free-path sampling
}

// NewConstantMedium creates a medium of the given density inside the boundary
func NewConstantMedium(boundary core.Shape, density float64, phase core.Material) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Phase:         phase,
		Density:       density,
		negInvDensity: -1.0 / density,
	}
}

// Hit samples a scattering event inside the boundary. The ray first has to
// enter and exit the boundary; the free path is then drawn from an
// exponential distribution and compared against the distance inside.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	// Find where the ray enters the boundary, searching the whole line so
	// rays starting inside the medium still register the entry behind them
	hit1, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	// And where it exits, just past the entry point
	hit2, ok := m.Boundary.Hit(ray, hit1.T+0.0001, math.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	tEnter, tExit := hit1.T, hit2.T
	if tEnter < tMin {
		tEnter = tMin
	}
	if tExit > tMax {
		tExit = tMax
	}
	if tEnter >= tExit {
		return nil, false
	}
	if tEnter < 0 {
		tEnter = 0
	}

	rayLength := ray.Direction.Length()
	distanceInside := (tExit - tEnter) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())

	// The ray passes through without scattering
	if hitDistance > distanceInside {
		return nil, false
	}

	t := tEnter + hitDistance/rayLength
	hitRecord := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: m.Phase,
		// Normal and face are arbitrary for a scattering event in a medium
		Normal:    core.NewVec3(1, 0, 0),
		FrontFace: true,
	}

	return hitRecord, true
}

// BoundingBox returns the boundary's bounding box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) core.AABB {
	return m.Boundary.BoundingBox(time0, time1)
}

// Validate rejects media with unusable densities or boundaries
func (m *ConstantMedium) Validate() error {
	if m.Boundary == nil {
		return core.NewConstructionError("constant medium", "boundary shape is nil")
	}
	if math.IsNaN(m.Density) || m.Density <= 0 {
		return core.NewConstructionError("constant medium", "density %v must be positive", m.Density)
	}
	if m.Phase == nil {
		return core.NewConstructionError("constant medium", "phase function material is nil")
	}
	if validator, ok := m.Boundary.(core.Validator); ok {
		return validator.Validate()
	}
	return nil
}
