package material

import (
	"math"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// ColorSource is a color that can vary over a surface or through space.
type ColorSource interface {
	// Evaluate picks the color for a hit. Image textures read the UV
	// coordinates, procedural textures read the 3D point.
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor is a single color everywhere.
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor wraps a color as a ColorSource.
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate ignores UV and position.
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two color sources in a 3D checker
// pattern. The pattern is driven by world position, not UV, so it stays
// continuous across shapes that share space.
type CheckerTexture struct {
	Scale float64 // Spatial frequency of the checker cells
	Even  ColorSource
	Odd   ColorSource
}

// NewCheckerTexture creates a checker pattern from two nested color sources
func NewCheckerTexture(scale float64, even, odd ColorSource) *CheckerTexture {
	return &CheckerTexture{Scale: scale, Even: even, Odd: odd}
}

// NewCheckerColors creates a checker pattern from two solid colors
func NewCheckerColors(scale float64, even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Evaluate selects between the two sources by the sign of a 3D sine product
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sines := math.Sin(c.Scale*point.X) * math.Sin(c.Scale*point.Y) * math.Sin(c.Scale*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}
