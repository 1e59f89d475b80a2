package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/DenisKolodin/lustre-go/pkg/core"
	"github.com/DenisKolodin/lustre-go/pkg/integrator"
)

// ErrInvalidConfig reports a sampling configuration the renderer refuses to
// run with. Wrapped errors carry the offending field; match with errors.Is.
var ErrInvalidConfig = errors.New("invalid render configuration")

const (
	defaultTileSize = 64
	displayGamma    = 2.0
)

// DefaultLogger implements core.Logger by writing to stdout.
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger.
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Scene provides everything the renderer needs from a scene description.
// It is an interface so scene packages can depend on the renderer's camera
// types without an import cycle.
type Scene interface {
	GetCamera() *Camera
	GetBackgroundColors() (top, bottom core.Vec3)
	GetWorld() core.Shape
	GetSamplingConfig() core.SamplingConfig
	Preprocess() error
}

// Renderer renders a scene into an image using tiled parallel workers.
type Renderer struct {
	scene      Scene
	camera     *Camera
	world      core.Shape
	config     core.SamplingConfig
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRenderer validates the scene's sampling configuration, preprocesses the
// scene, and prepares a path-tracing integrator. A nil logger falls back to
// stdout.
func NewRenderer(scene Scene, logger core.Logger) (*Renderer, error) {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	config := scene.GetSamplingConfig()
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	if err := scene.Preprocess(); err != nil {
		return nil, fmt.Errorf("preprocessing scene: %w", err)
	}

	camera := scene.GetCamera()
	if camera == nil {
		return nil, fmt.Errorf("%w: scene has no camera", ErrInvalidConfig)
	}
	if camera.Width() != config.Width || camera.Height() != config.Height {
		return nil, fmt.Errorf("%w: camera viewport %dx%d does not match image %dx%d",
			ErrInvalidConfig, camera.Width(), camera.Height(), config.Width, config.Height)
	}
	world := scene.GetWorld()
	if world == nil {
		return nil, fmt.Errorf("%w: scene preprocessing produced no world", ErrInvalidConfig)
	}

	top, bottom := scene.GetBackgroundColors()
	pathTracer := integrator.NewPathTracer(config.MaxDepth, integrator.NewGradientBackground(top, bottom))

	return &Renderer{
		scene:      scene,
		camera:     camera,
		world:      world,
		config:     config,
		integrator: pathTracer,
		logger:     logger,
	}, nil
}

func validateConfig(config core.SamplingConfig) error {
	switch {
	case config.Width <= 0 || config.Height <= 0:
		return fmt.Errorf("%w: image dimensions %dx%d must be positive", ErrInvalidConfig, config.Width, config.Height)
	case config.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, config.SamplesPerPixel)
	case config.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, config.MaxDepth)
	case config.Workers < 0:
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, config.Workers)
	case config.TileSize < 0:
		return fmt.Errorf("%w: tile size must not be negative, got %d", ErrInvalidConfig, config.TileSize)
	}
	return nil
}

// Render renders the full image at the configured sample count and returns
// the gamma-corrected result.
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	buffer := NewImageBuffer(r.config.Width, r.config.Height)
	if _, err := r.renderPass(ctx, buffer, 0, r.config.SamplesPerPixel); err != nil {
		return nil, RenderStats{}, err
	}
	return buffer.ToRGBA(displayGamma), buffer.Stats(r.config.SamplesPerPixel), nil
}

// renderPass drives one pass of tiled rendering into the shared buffer.
// Tiles partition the image, so workers write disjoint pixels without locks.
func (r *Renderer) renderPass(ctx context.Context, buffer *ImageBuffer, pass, targetSamples int) (RenderStats, error) {
	tileSize := r.config.TileSize
	if tileSize <= 0 {
		tileSize = defaultTileSize
	}
	tiles := NewTileGrid(r.config.Width, r.config.Height, tileSize)

	pool := NewWorkerPool(r.config.Workers, len(tiles), func(ctx context.Context, task TileTask) (RenderStats, error) {
		return r.renderTile(task, buffer), nil
	})
	pool.Start(ctx)
	for _, tile := range tiles {
		pool.Submit(TileTask{Tile: tile, Pass: pass, TargetSamples: targetSamples, TaskID: tile.ID})
	}
	stats, err := pool.Drain(len(tiles))
	pool.Stop()
	if err != nil {
		return RenderStats{}, err
	}
	return stats, nil
}

// renderTile renders every pixel in the task's bounds. Each pixel gets its
// own generator seeded from the global seed and its coordinates, so the
// result does not depend on which worker ran the tile.
func (r *Renderer) renderTile(task TileTask, buffer *ImageBuffer) RenderStats {
	bounds := task.Tile.Bounds
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  task.TargetSamples,
		MinSamples:  math.MaxInt,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			random := rand.New(rand.NewSource(pixelSeed(r.config.Seed, x, y, task.Pass)))
			sampler := core.NewRandomSampler(random)
			used := r.samplePixel(x, y, buffer.Pixel(x, y), sampler, task.TargetSamples)

			stats.TotalSamples += used
			stats.MinSamples = min(stats.MinSamples, used)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, used)
		}
	}

	stats.finalize()
	return stats
}

// samplePixel accumulates samples until the pixel reaches the target count or
// the adaptive stop criterion fires. It returns the number of samples added.
func (r *Renderer) samplePixel(x, y int, pixel *PixelStats, sampler core.Sampler, targetSamples int) int {
	initial := pixel.SampleCount
	for pixel.SampleCount < targetSamples && !r.shouldStopSampling(pixel, targetSamples) {
		ray := r.camera.GetRay(x, y, sampler)
		pixel.AddSample(r.integrator.RayColor(ray, r.world, sampler))
	}
	return pixel.SampleCount - initial
}

// shouldStopSampling reports whether the pixel's relative luminance error has
// fallen below the configured threshold. A zero threshold disables adaptive
// sampling, which keeps the per-pixel sample count fixed and the render fully
// deterministic.
func (r *Renderer) shouldStopSampling(ps *PixelStats, maxSamples int) bool {
	if r.config.AdaptiveThreshold <= 0 {
		return false
	}

	minSamples := max(1, int(float64(maxSamples)*r.config.AdaptiveMinSamples))
	if ps.SampleCount < minSamples {
		return false
	}

	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	variance := math.Max(0, meanSq-mean*mean)

	// Near-black pixels have no meaningful relative error; stop once the
	// absolute variance is negligible.
	if mean <= 1e-8 {
		return variance < 1e-6
	}

	relativeError := math.Sqrt(variance) / mean
	return relativeError < r.config.AdaptiveThreshold
}

// pixelSeed hashes the global seed, pixel coordinates, and pass index with
// FNV-1a. Every pixel draws from its own deterministic stream, so the output
// is identical for any worker count or tile size.
func pixelSeed(globalSeed uint64, x, y, pass int) int64 {
	const (
		fnvOffset64 = 14695981039346656037
		fnvPrime64  = 1099511628211
	)
	hash := uint64(fnvOffset64)
	for _, word := range [4]uint64{globalSeed, uint64(x), uint64(y), uint64(pass)} {
		for i := 0; i < 8; i++ {
			hash ^= word & 0xff
			hash *= fnvPrime64
			word >>= 8
		}
	}
	return int64(hash)
}
