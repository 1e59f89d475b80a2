package material

import (
	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// Emissive represents a light-emitting material. It never scatters; rays
// that hit it terminate with the emitted radiance.
type Emissive struct {
	Texture    ColorSource // Emitted color, possibly spatially varying
	Brightness float64     // Multiplier applied to the texture value
}

// NewEmissive creates an emissive material with a solid color at unit brightness
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Texture: NewSolidColor(emission), Brightness: 1.0}
}

// NewTexturedEmissive creates an emissive material from a texture and a
// brightness multiplier
func NewTexturedEmissive(texture ColorSource, brightness float64) *Emissive {
	return &Emissive{Texture: texture, Brightness: brightness}
}

// Scatter implements the Material interface for emissive materials.
// Emissive materials absorb all incoming rays.
func (e *Emissive) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emit returns the emitted light at the hit point. Emission is two-sided:
// both faces of a light glow.
func (e *Emissive) Emit(rayIn core.Ray, hit core.HitRecord) core.Vec3 {
	return e.Texture.Evaluate(core.NewVec2(hit.U, hit.V), hit.Point).Multiply(e.Brightness)
}
