package integrator

import (
	"math"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// PathTracer implements unidirectional path tracing: rays bounce through
// the scene accumulating attenuation until they are absorbed, leave the
// scene, or run out of depth.
type PathTracer struct {
	MaxDepth   int
	Background Background

	// RussianRouletteMinBounces enables probabilistic path termination
	// from the given bounce onward. Zero or negative disables it, which
	// keeps low-depth renders exact.
	RussianRouletteMinBounces int
}

// NewPathTracer creates a path tracer with Russian roulette disabled
func NewPathTracer(maxDepth int, background Background) *PathTracer {
	return &PathTracer{
		MaxDepth:   maxDepth,
		Background: background,
	}
}

// RayColor computes the radiance arriving along a camera ray
func (pt *PathTracer) RayColor(ray core.Ray, world core.Shape, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, sampler, pt.MaxDepth, core.NewVec3(1, 1, 1))
}

func (pt *PathTracer) rayColor(ray core.Ray, world core.Shape, sampler core.Sampler, depth int, throughput core.Vec3) core.Vec3 {
	// Past the bounce limit no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	shouldTerminate, rrCompensation := false, 1.0
	bounce := pt.MaxDepth - depth
	if pt.RussianRouletteMinBounces > 0 && bounce >= pt.RussianRouletteMinBounces {
		shouldTerminate, rrCompensation = pt.ApplyRussianRoulette(throughput, sampler.Get1D())
	}
	if shouldTerminate {
		return core.Vec3{}
	}

	// The epsilon lower bound avoids self-intersection at the origin of
	// scattered rays
	hit, isHit := world.Hit(ray, 0.001, math.Inf(1), sampler)
	if !isHit {
		return pt.Background.Radiance(ray).Multiply(rrCompensation)
	}

	// Emitted light contributes regardless of scattering
	colorEmitted := pt.emittedLight(ray, hit)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return colorEmitted.Multiply(rrCompensation)
	}

	// A malformed scatter would poison the whole pixel sum; drop the
	// bounce and keep the emitted light
	if !scatter.Scattered.Direction.IsFinite() || !scatter.Attenuation.IsFinite() ||
		math.IsNaN(scatter.PDF) || math.IsInf(scatter.PDF, 0) {
		return colorEmitted.Multiply(rrCompensation)
	}

	var colorScattered core.Vec3
	if scatter.IsSpecular() {
		colorScattered = pt.specularColor(scatter, world, sampler, depth, throughput)
	} else {
		colorScattered = pt.diffuseColor(scatter, hit, world, sampler, depth, throughput)
	}

	return colorEmitted.Add(colorScattered).Multiply(rrCompensation)
}

// specularColor follows a delta-scattered ray; the attenuation applies as-is
func (pt *PathTracer) specularColor(scatter core.ScatterResult, world core.Shape, sampler core.Sampler, depth int, throughput core.Vec3) core.Vec3 {
	newThroughput := throughput.MultiplyVec(scatter.Attenuation)
	return scatter.Attenuation.MultiplyVec(
		pt.rayColor(scatter.Scattered, world, sampler, depth-1, newThroughput))
}

// diffuseColor follows a PDF-sampled ray, weighting the BRDF-valued
// attenuation by cos(θ)/pdf
func (pt *PathTracer) diffuseColor(scatter core.ScatterResult, hit *core.HitRecord, world core.Shape, sampler core.Sampler, depth int, throughput core.Vec3) core.Vec3 {
	scatterDirection := scatter.Scattered.Direction.Normalize()
	cosine := scatterDirection.Dot(hit.Normal)
	if cosine <= 0 {
		return core.Vec3{}
	}

	weight := cosine / scatter.PDF
	newThroughput := throughput.MultiplyVec(scatter.Attenuation).Multiply(weight)
	incomingLight := pt.rayColor(scatter.Scattered, world, sampler, depth-1, newThroughput)

	return scatter.Attenuation.Multiply(weight).MultiplyVec(incomingLight)
}

// emittedLight returns the emitted radiance when the hit material is a light
func (pt *PathTracer) emittedLight(ray core.Ray, hit *core.HitRecord) core.Vec3 {
	if emitter, isEmissive := hit.Material.(core.Emitter); isEmissive {
		return emitter.Emit(ray, *hit)
	}
	return core.Vec3{}
}

// ApplyRussianRoulette decides termination from the path throughput and a
// uniform sample, returning the energy compensation for surviving paths.
// Survival probability tracks luminance, clamped to [0.5, 0.95] so the
// compensation factor stays between 1.05x and 2x.
func (pt *PathTracer) ApplyRussianRoulette(throughput core.Vec3, u float64) (bool, float64) {
	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))

	if u > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}
