package material

import (
	"math"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// Dielectric is a clear material such as glass that splits incoming light
// between reflection and refraction
type Dielectric struct {
	RefractiveIndex float64 // 1.5 is typical window glass
}

// NewDielectric builds a dielectric with the given index of refraction
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter refracts where Snell's law allows it and reflects otherwise,
// choosing probabilistically by the Fresnel term in between
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	// Clear glass absorbs nothing
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	// Entering uses 1/n, exiting uses n
	var ratio float64
	if hit.FrontFace {
		ratio = 1.0 / d.RefractiveIndex
	} else {
		ratio = d.RefractiveIndex
	}

	unit := rayIn.Direction.Normalize()

	// A ratio of exactly 1 means no optical boundary at all, so the ray
	// passes straight through without the Schlick coin flip
	if ratio == 1.0 {
		return core.ScatterResult{
			Scattered:   core.Ray{Origin: hit.Point, Direction: unit, Time: rayIn.Time},
			Attenuation: attenuation,
			PDF:         0,
		}, true
	}

	cosTheta := math.Min(-unit.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	// Past the critical angle refraction has no solution
	mustReflect := ratio*sinTheta > 1.0

	var direction core.Vec3
	if mustReflect || Reflectance(cosTheta, ratio) > sampler.Get1D() {
		direction = reflect(unit, hit.Normal)
	} else {
		direction = refractVector(unit, hit.Normal, ratio)
	}

	scattered := core.Ray{Origin: hit.Point, Direction: direction, Time: rayIn.Time}

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
		PDF:         0, // specular
	}, true
}

// refractVector bends a unit vector through the boundary by Snell's law
func refractVector(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance approximates the Fresnel reflectance with Schlick's polynomial
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
