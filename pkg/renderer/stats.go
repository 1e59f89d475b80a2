package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

// RenderStats summarizes sampling work across a render or a single pass.
type RenderStats struct {
	TotalPixels    int     // number of pixels rendered
	TotalSamples   int     // total samples taken
	AverageSamples float64 // average samples per pixel
	MaxSamples     int     // configured per-pixel ceiling
	MinSamples     int     // fewest samples any pixel received
	MaxSamplesUsed int     // most samples any pixel received
}

// merge folds another stats block into this one. finalize refreshes the
// derived average once all blocks are merged.
func (rs *RenderStats) merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.MaxSamples = max(rs.MaxSamples, other.MaxSamples)
	rs.MinSamples = min(rs.MinSamples, other.MinSamples)
	rs.MaxSamplesUsed = max(rs.MaxSamplesUsed, other.MaxSamplesUsed)
}

func (rs *RenderStats) finalize() {
	if rs.TotalPixels > 0 {
		rs.AverageSamples = float64(rs.TotalSamples) / float64(rs.TotalPixels)
	}
}

// PixelStats tracks sampling statistics for a single pixel.
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for the final result
	LuminanceAccum   float64   // luminance accumulator for convergence checks
	LuminanceSqAccum float64   // squared luminance for variance estimates
	SampleCount      int       // number of samples taken
}

// AddSample adds a new color sample to the pixel statistics.
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel.
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// ImageBuffer accumulates per-pixel sample statistics for a whole image.
// Tiles own disjoint pixel ranges during a pass, so AddSample needs no
// synchronization.
type ImageBuffer struct {
	Width  int
	Height int
	pixels []PixelStats
}

// NewImageBuffer creates a zeroed buffer for a width x height image.
func NewImageBuffer(width, height int) *ImageBuffer {
	return &ImageBuffer{
		Width:  width,
		Height: height,
		pixels: make([]PixelStats, width*height),
	}
}

// Pixel returns the stats cell for pixel (x, y).
func (ib *ImageBuffer) Pixel(x, y int) *PixelStats {
	return &ib.pixels[y*ib.Width+x]
}

// ToRGBA averages, gamma-corrects, clamps, and quantizes the accumulated
// samples into an 8-bit image.
func (ib *ImageBuffer) ToRGBA(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ib.Width, ib.Height))
	for y := 0; y < ib.Height; y++ {
		for x := 0; x < ib.Width; x++ {
			img.SetRGBA(x, y, vecToRGBA(ib.Pixel(x, y).GetColor(), gamma))
		}
	}
	return img
}

// Stats summarizes the buffer's current sample counts.
func (ib *ImageBuffer) Stats(maxSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: ib.Width * ib.Height,
		MaxSamples:  maxSamples,
		MinSamples:  math.MaxInt,
	}
	for i := range ib.pixels {
		count := ib.pixels[i].SampleCount
		stats.TotalSamples += count
		stats.MinSamples = min(stats.MinSamples, count)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
	}
	stats.finalize()
	return stats
}

// vecToRGBA converts a linear color to 8-bit RGBA with gamma correction.
func vecToRGBA(colorVec core.Vec3, gamma float64) color.RGBA {
	colorVec = colorVec.GammaCorrect(gamma).Clamp(0, 1)
	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
