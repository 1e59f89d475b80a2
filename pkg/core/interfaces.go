package core

// HitRecord contains the result of a successful ray-shape intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection in world space
	Normal    Vec3     // Surface normal, oriented against the incoming ray
	T         float64  // Ray parameter at the intersection
	U, V      float64  // Surface texture coordinates
	FrontFace bool     // True when the ray hit the outside face
	Material  Material // Material at the intersection
}

// SetFaceNormal orients the normal against the incoming ray and records
// which face was hit. The outward normal must be unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape is anything a ray can intersect. Implementations are immutable after
// construction and safe for concurrent queries.
//
// Hit returns the closest intersection with t in [tMin, tMax], if any. The
// sampler belongs to the pixel being rendered; participating media use it for
// free-path sampling, solid shapes ignore it.
//
// BoundingBox returns a box enclosing the shape over the given time range,
// so that moving shapes are bounded across the whole shutter interval.
type Shape interface {
	Hit(ray Ray, tMin, tMax float64, sampler Sampler) (*HitRecord, bool)
	BoundingBox(time0, time1 float64) AABB
}

// ScatterResult contains the outcome of a material scattering event
type ScatterResult struct {
	Scattered   Ray     // The outgoing ray
	Attenuation Vec3    // Color attenuation (or BRDF value for PDF-weighted materials)
	PDF         float64 // Probability density, or 0 for specular/delta scattering
}

// IsSpecular reports whether this scatter follows a single deterministic
// direction and should skip PDF weighting in the integrator
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}

// Material determines how rays scatter at surface intersections.
// Materials are stateless and safely shared across workers.
type Material interface {
	// Scatter attempts to scatter an incoming ray at the hit point.
	// Returns false when the ray is absorbed.
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	Emit(rayIn Ray, hit HitRecord) Vec3
}

// Validator is implemented by shapes and materials that can detect
// malformed construction parameters. Scene preprocessing walks all shapes
// and rejects the scene before rendering starts if any validation fails.
type Validator interface {
	Validate() error
}

// Logger is the printf-style sink render progress is reported to.
type Logger interface {
	Printf(format string, args ...interface{})
}

// SamplingConfig holds the knobs for a render.
type SamplingConfig struct {
	Width              int     // Image width in pixels
	Height             int     // Image height in pixels
	SamplesPerPixel    int     // Number of rays per pixel
	MaxDepth           int     // Maximum ray bounce depth
	Workers            int     // Worker pool size (0 = use CPU count)
	TileSize           int     // Tile edge length in pixels (0 = default)
	Seed               uint64  // Global seed for per-pixel generators
	AdaptiveMinSamples float64 // Minimum samples as fraction of max before adaptive stop (0 disables)
	AdaptiveThreshold  float64 // Relative luminance error threshold for adaptive stop (0 disables)
}
