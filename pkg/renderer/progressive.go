package renderer

import (
	"context"
	"image"
	"time"
)

// ProgressiveOptions configures progressive rendering.
type ProgressiveOptions struct {
	InitialSamples int // per-pixel samples in the first pass; 0 means 1
	MaxPasses      int // hard cap on passes; 0 means run until the sample target is met
}

// PassResult carries the image assembled after one progressive pass.
type PassResult struct {
	Pass   int
	Image  *image.RGBA
	Stats  RenderStats
	IsLast bool
}

// RenderProgressive renders the scene in passes with doubling per-pixel
// sample targets, sending an assembled image after each pass. The final pass
// lands exactly on the configured samples per pixel. Pass results arrive on
// the first channel and a render or context error on the second; both close
// when rendering stops. Per-pass pixel seeds mix in the pass index, so a
// progressive render is deterministic for a fixed option set.
func (r *Renderer) RenderProgressive(ctx context.Context, opts ProgressiveOptions) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	initial := opts.InitialSamples
	if initial <= 0 {
		initial = 1
	}

	go func() {
		defer close(passChan)
		defer close(errChan)

		buffer := NewImageBuffer(r.config.Width, r.config.Height)
		target := min(initial, r.config.SamplesPerPixel)

		for pass := 1; ; pass++ {
			if err := ctx.Err(); err != nil {
				errChan <- err
				return
			}

			start := time.Now()
			if _, err := r.renderPass(ctx, buffer, pass, target); err != nil {
				errChan <- err
				return
			}
			r.logger.Printf("pass %d: %d samples/pixel in %v\n", pass, target, time.Since(start))

			isLast := target >= r.config.SamplesPerPixel || (opts.MaxPasses > 0 && pass >= opts.MaxPasses)
			result := PassResult{
				Pass:   pass,
				Image:  buffer.ToRGBA(displayGamma),
				Stats:  buffer.Stats(target),
				IsLast: isLast,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if isLast {
				return
			}
			target = min(target*2, r.config.SamplesPerPixel)
		}
	}()

	return passChan, errChan
}
