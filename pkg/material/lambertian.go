package material

import (
	"math"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// Lambertian is an ideal diffuse surface
type Lambertian struct {
	Albedo ColorSource // solid color or texture
}

// NewLambertian builds a diffuse material with a uniform color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian builds a diffuse material that reads its color
// from a texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

// Scatter bounces the ray into a cosine-weighted direction above the surface
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	bounce := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	scattered := core.Ray{Origin: hit.Point, Direction: bounce, Time: rayIn.Time}

	// The sampling density is cos(theta)/pi over the hemisphere
	cosTheta := bounce.Normalize().Dot(hit.Normal)
	if cosTheta < 0 {
		cosTheta = 0
	}
	pdf := cosTheta / math.Pi

	albedo := l.Albedo.Evaluate(core.NewVec2(hit.U, hit.V), hit.Point)

	// The diffuse BRDF is albedo/pi
	attenuation := albedo.Multiply(1.0 / math.Pi)

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
		PDF:         pdf,
	}, true
}
