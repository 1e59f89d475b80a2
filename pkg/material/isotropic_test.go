package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

func TestIsotropic_ScatterProperties(t *testing.T) {
	albedo := core.NewVec3(0.6, 0.7, 0.8)
	isotropic := NewIsotropic(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.Ray{Origin: core.NewVec3(0, 0, 1), Direction: core.NewVec3(0, 0, -1), Time: 0.5}
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(1, 0, 0),
	}

	for i := 0; i < 100; i++ {
		scatter, didScatter := isotropic.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Isotropic should always scatter")
		}

		if math.Abs(scatter.Scattered.Direction.Length()-1.0) > 1e-9 {
			t.Errorf("Direction should be unit length, got %f", scatter.Scattered.Direction.Length())
		}
		if scatter.Attenuation != albedo {
			t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if !scatter.IsSpecular() {
			t.Error("Isotropic scatter should skip PDF weighting")
		}
		if scatter.Scattered.Time != 0.5 {
			t.Errorf("Expected scattered ray at time 0.5, got %f", scatter.Scattered.Time)
		}
	}
}

func TestIsotropic_UniformDirections(t *testing.T) {
	isotropic := NewIsotropic(core.NewVec3(1, 1, 1))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	const numSamples = 5000
	sum := core.NewVec3(0, 0, 0)
	belowSurface := 0
	for i := 0; i < numSamples; i++ {
		scatter, didScatter := isotropic.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Isotropic should always scatter")
		}
		sum = sum.Add(scatter.Scattered.Direction)
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			belowSurface++
		}
	}

	// Uniform directions average out near zero
	mean := sum.Multiply(1.0 / float64(numSamples))
	if mean.Length() > 0.05 {
		t.Errorf("Mean direction should be near zero for uniform scattering, got %v (length %f)",
			mean, mean.Length())
	}

	// Unlike surface materials, the phase function ignores the normal:
	// about half the directions go below it
	fraction := float64(belowSurface) / float64(numSamples)
	if fraction < 0.45 || fraction > 0.55 {
		t.Errorf("Expected about half the directions below the normal, got fraction %f", fraction)
	}
}

func TestIsotropic_TexturedAlbedo(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)
	isotropic := NewTexturedIsotropic(NewCheckerColors(1.0, red, blue))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{
		Point:  core.NewVec3(math.Pi/2, math.Pi/2, math.Pi/2), // Even checker cell
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := isotropic.Scatter(ray, hit, sampler)
	if !didScatter {
		t.Fatal("Isotropic should always scatter")
	}
	if scatter.Attenuation != red {
		t.Errorf("Expected attenuation %v, got %v", red, scatter.Attenuation)
	}
}
