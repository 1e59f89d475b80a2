package renderer

import (
	"math"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// CameraConfig describes a perspective camera with an optional thin lens and
// shutter interval.
type CameraConfig struct {
	Center        core.Vec3 // camera position
	LookAt        core.Vec3 // point the camera is aimed at
	Up            core.Vec3 // view-up vector
	Width         int       // image width in pixels
	AspectRatio   float64   // width / height
	VFov          float64   // vertical field of view in degrees
	Aperture      float64   // lens diameter; 0 is a pinhole camera
	FocusDistance float64   // distance to the plane of perfect focus; 0 derives it from Center and LookAt
	ShutterOpen   float64   // start of the exposure interval
	ShutterClose  float64   // end of the exposure interval; equal to ShutterOpen for an instant exposure
}

// Camera generates primary rays for rendering. The viewport basis is
// precomputed from the config, so ray generation is a few vector operations.
type Camera struct {
	width, height   int
	center          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3 // lens plane basis
	lensRadius      float64
	shutterOpen     float64
	shutterClose    float64
}

// NewCamera precomputes the viewport basis for the given configuration.
func NewCamera(config CameraConfig) *Camera {
	height := int(math.Round(float64(config.Width) / config.AspectRatio))
	if height < 1 {
		height = 1
	}

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	viewportHeight := 2 * halfHeight
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		width:           config.Width,
		height:          height,
		center:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2,
		shutterOpen:     config.ShutterOpen,
		shutterClose:    config.ShutterClose,
	}
}

// Width returns the image width in pixels.
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels, derived from the aspect ratio.
func (c *Camera) Height() int { return c.height }

// GetRay generates a ray through pixel (i, j), jittered within the pixel
// footprint for anti-aliasing. i runs left to right and j top to bottom,
// matching image coordinates. With a positive aperture the ray origin is
// offset on the lens disk, and with an open shutter interval the ray time is
// sampled uniformly within it.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	s := (float64(i) + jitter.X) / float64(c.width)
	t := (float64(c.height-1-j) + jitter.Y) / float64(c.height)

	origin := c.center
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	ray := core.NewRay(origin, direction)
	ray.Time = c.shutterOpen
	if c.shutterClose > c.shutterOpen {
		ray.Time += sampler.Get1D() * (c.shutterClose - c.shutterOpen)
	}
	return ray
}

// MergeCameraConfig overlays the non-zero fields of override onto base.
// Scene constructors use it so callers can adjust individual camera
// parameters without restating the whole configuration. A zero vector or
// zero value keeps the base setting; the shutter interval is treated as
// one field, so overriding either endpoint replaces both.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	merged := base
	if override.Center != (core.Vec3{}) {
		merged.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		merged.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		merged.Up = override.Up
	}
	if override.Width > 0 {
		merged.Width = override.Width
	}
	if override.AspectRatio > 0 {
		merged.AspectRatio = override.AspectRatio
	}
	if override.VFov > 0 {
		merged.VFov = override.VFov
	}
	if override.Aperture > 0 {
		merged.Aperture = override.Aperture
	}
	if override.FocusDistance > 0 {
		merged.FocusDistance = override.FocusDistance
	}
	if override.ShutterOpen != 0 || override.ShutterClose != 0 {
		merged.ShutterOpen = override.ShutterOpen
		merged.ShutterClose = override.ShutterClose
	}
	return merged
}
