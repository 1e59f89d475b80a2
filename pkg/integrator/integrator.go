package integrator

import (
	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// Integrator is a light transport algorithm.
type Integrator interface {
	// RayColor computes the radiance arriving along a camera ray
	RayColor(ray core.Ray, world core.Shape, sampler core.Sampler) core.Vec3
}

// Background supplies the radiance for rays that leave the scene
type Background interface {
	Radiance(ray core.Ray) core.Vec3
}

// GradientBackground blends vertically between two colors. Equal colors
// give a constant background, black/black gives a dark scene where only
// emissive surfaces produce light.
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientBackground creates a vertical gradient background
func NewGradientBackground(top, bottom core.Vec3) *GradientBackground {
	return &GradientBackground{Top: top, Bottom: bottom}
}

// Radiance maps the ray's vertical angle to a blend of the two colors
func (g *GradientBackground) Radiance(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}
