package pipeline

import (
	"context"
	"errors"
	"image"
	"runtime"
	"sync"
)

// ParallelConfig holds configuration for parallel batch conversion.
type ParallelConfig struct {
	MaxWorkers   int                           // Number of parallel workers (0 = runtime.NumCPU())
	ErrorHandler func(int, image.Image, error) // Optional per-image error handler
}

// DefaultParallelConfig returns sensible defaults for batch conversion.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{MaxWorkers: runtime.NumCPU(), ErrorHandler: nil}
}

type imageJob struct {
	index int
	image image.Image
	req   Request
}

type imageResult struct {
	index  int
	result *Result
	err    error
}

// ProcessImagesParallel converts multiple images with a worker pool,
// sharing one Request across the batch. Each invocation owns its buffers,
// so workers need no locking. Results come back in input order; failed
// images yield nil entries when an ErrorHandler swallows the error.
func (p *Pipeline) ProcessImagesParallel(ctx context.Context, images []image.Image,
	req Request, config ParallelConfig,
) ([]*Result, error) {
	if len(images) == 0 {
		return nil, errors.New("no images provided")
	}
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = runtime.NumCPU()
	}
	if config.MaxWorkers > len(images) {
		config.MaxWorkers = len(images)
	}

	jobs := make(chan imageJob, len(images))
	results := make(chan imageResult, len(images))

	var wg sync.WaitGroup
	for range config.MaxWorkers {
		wg.Add(1)
		go p.worker(ctx, jobs, results, &wg)
	}

	go func() {
		defer close(jobs)
		for i, img := range images {
			select {
			case jobs <- imageJob{index: i, image: img, req: req}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]*Result, len(images))
	var firstErr error
	for r := range results {
		if r.err != nil {
			if config.ErrorHandler != nil {
				config.ErrorHandler(r.index, images[r.index], r.err)
				continue
			}
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		out[r.index] = r.result
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (p *Pipeline) worker(ctx context.Context, jobs <-chan imageJob,
	results chan<- imageResult, wg *sync.WaitGroup,
) {
	defer wg.Done()
	for job := range jobs {
		if err := ctx.Err(); err != nil {
			results <- imageResult{index: job.index, err: err}
			continue
		}
		res, err := p.ProcessImage(job.image, job.req)
		results <- imageResult{index: job.index, result: res, err: err}
	}
}
