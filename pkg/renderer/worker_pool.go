package renderer

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync"
)

// TileTask is one tile rendering assignment for the worker pool.
type TileTask struct {
	Tile          *Tile
	Pass          int // progressive pass index, mixed into per-pixel seeds
	TargetSamples int // cumulative per-pixel sample target for this pass
	TaskID        int
}

// TileResult carries the outcome of rendering one tile.
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Err    error
}

// RenderTileFunc renders one tile and returns its sampling stats.
type RenderTileFunc func(ctx context.Context, task TileTask) (RenderStats, error)

// WorkerPool fans tile tasks out to a fixed set of goroutines.
type WorkerPool struct {
	tasks   chan TileTask
	results chan TileResult
	workers int
	render  RenderTileFunc
	wg      sync.WaitGroup
}

// NewWorkerPool creates a pool with the given worker count. A non-positive
// count uses the number of CPUs. queueDepth should be at least the number of
// tasks submitted per pass so Submit never blocks.
func NewWorkerPool(workers, queueDepth int, render RenderTileFunc) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		tasks:   make(chan TileTask, queueDepth),
		results: make(chan TileResult, queueDepth),
		workers: workers,
		render:  render,
	}
}

// Start launches the workers. Cancellation is coarse: the context is checked
// between tiles, and a tile already in flight finishes before its worker
// reports the cancellation.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go func() {
			defer wp.wg.Done()
			for task := range wp.tasks {
				if err := ctx.Err(); err != nil {
					wp.results <- TileResult{TaskID: task.TaskID, Err: err}
					continue
				}
				stats, err := wp.render(ctx, task)
				wp.results <- TileResult{TaskID: task.TaskID, Stats: stats, Err: err}
			}
		}()
	}
}

// Submit queues one tile task.
func (wp *WorkerPool) Submit(task TileTask) {
	wp.tasks <- task
}

// Drain collects one result per submitted task and merges the per-tile stats.
// It always consumes count results so the queues are left empty, and returns
// the first error it saw.
func (wp *WorkerPool) Drain(count int) (RenderStats, error) {
	total := RenderStats{MinSamples: math.MaxInt}
	var firstErr error
	for i := 0; i < count; i++ {
		result, ok := <-wp.results
		if !ok {
			return total, errors.New("worker pool closed while draining results")
		}
		if result.Err != nil && firstErr == nil {
			firstErr = result.Err
		}
		total.merge(result.Stats)
	}
	total.finalize()
	return total, firstErr
}

// Stop closes the task queue and waits for in-flight tiles to finish.
func (wp *WorkerPool) Stop() {
	close(wp.tasks)
	wp.wg.Wait()
	close(wp.results)
}

// NumWorkers returns the number of workers in the pool.
func (wp *WorkerPool) NumWorkers() int {
	return wp.workers
}
