package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-lux-raytracer/pkg/core"
)

// RowTask represents a band of rows for the worker pool
type RowTask struct {
	Y0, Y1 int // Rows [Y0, Y1)
	TaskID int
}

// RowResult contains the result from rendering a row band
type RowResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool renders row bands in parallel.
// Bands never overlap, so each worker touches only its own depth slots and sink cells.
type WorkerPool struct {
	raytracer  *Raytracer
	numWorkers int
}

// Worker handles individual row band tasks
type Worker struct {
	ID        int
	raytracer *Raytracer
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		raytracer:  raytracer,
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Render splits the image into bands of rowsPerTask rows and renders them on all workers.
// The first worker error or context cancellation stops the remaining tasks.
func (wp *WorkerPool) Render(ctx context.Context, sink core.PixelSink, rowsPerTask int) (RenderStats, error) {
	if rowsPerTask <= 0 {
		rowsPerTask = 8
	}
	height := wp.raytracer.config.Height
	numTasks := (height + rowsPerTask - 1) / rowsPerTask

	g, ctx := errgroup.WithContext(ctx)
	taskQueue := make(chan RowTask)
	resultQueue := make(chan RowResult, numTasks)

	g.Go(func() error {
		defer close(taskQueue)
		for id := 0; id < numTasks; id++ {
			task := RowTask{
				Y0:     id * rowsPerTask,
				Y1:     min(height, (id+1)*rowsPerTask),
				TaskID: id,
			}
			select {
			case taskQueue <- task:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		worker := &Worker{ID: i, raytracer: wp.raytracer}
		g.Go(func() error {
			return worker.run(ctx, taskQueue, resultQueue, sink)
		})
	}

	err := g.Wait()
	close(resultQueue)

	var stats RenderStats
	for result := range resultQueue {
		stats.Merge(result.Stats)
	}
	return stats, err
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, tasks <-chan RowTask, results chan<- RowResult, sink core.PixelSink) error {
	for task := range tasks {
		stats, err := w.raytracer.RenderRows(ctx, task.Y0, task.Y1, sink)
		results <- RowResult{TaskID: task.TaskID, Stats: stats}
		if err != nil {
			return err
		}
	}
	return nil
}
