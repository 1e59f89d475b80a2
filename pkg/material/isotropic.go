package material

import (
	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// Isotropic scatters rays uniformly in all directions. It is the phase
// function of constant-density media like smoke and fog.
type Isotropic struct {
	Albedo ColorSource
}

// NewIsotropic creates an isotropic material with a solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic material with a texture
func NewTexturedIsotropic(albedoTexture ColorSource) *Isotropic {
	return &Isotropic{Albedo: albedoTexture}
}

// Scatter implements the Material interface for isotropic scattering.
// The uniform sphere density and the uniform phase function cancel exactly,
// so the result is reported as specular with plain albedo attenuation and
// no surface-cosine weighting applies.
func (i *Isotropic) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	direction := core.SampleOnUnitSphere(sampler.Get2D())
	scattered := core.Ray{Origin: hit.Point, Direction: direction, Time: rayIn.Time}

	albedo := i.Albedo.Evaluate(core.NewVec2(hit.U, hit.V), hit.Point)

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: albedo,
		PDF:         0,
	}, true
}
