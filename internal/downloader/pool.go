package downloader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pixfetch/pkg/logger"
)

// Job represents a single image fetch task
type Job struct {
	ID  string
	URL string
}

// Result represents the outcome of a fetch job. Data and ContentType are
// only set on success; the archive writer on the consumer side decides what
// to do with them.
type Result struct {
	Job         Job
	Success     bool
	Data        []byte
	ContentType string
	Error       error
	Duration    time.Duration
}

// ImageFetcher fetches an image's bytes and reports its content type
type ImageFetcher interface {
	DownloadImage(url string) ([]byte, string, error)
}

// WorkerPool manages concurrent image fetches. Results are delivered on a
// channel and never written to shared state, so the consumer is the single
// writer of whatever it builds from them.
type WorkerPool struct {
	numWorkers  int
	jobQueue    chan Job
	resultQueue chan Result
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	client      ImageFetcher
	logger      logger.Logger
}

// NewWorkerPool creates a new fetch worker pool
func NewWorkerPool(numWorkers int, client ImageFetcher, log logger.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	if log == nil {
		log = logger.GetLogger()
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}

	return &WorkerPool{
		numWorkers:  numWorkers,
		jobQueue:    make(chan Job, numWorkers*2), // Buffer size = 2x workers
		resultQueue: make(chan Result, numWorkers),
		ctx:         ctx,
		cancel:      cancel,
		client:      client,
		logger:      log,
	}
}

// Start initializes and starts all workers
func (wp *WorkerPool) Start() {
	wp.logger.DebugWithFields("starting worker pool", map[string]interface{}{
		"num_workers": wp.numWorkers,
	})

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop gracefully shuts down the worker pool. Queued jobs are drained
// before the result channel closes.
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()

	wp.logger.Debug("worker pool stopped")
}

// Submit adds a new fetch job to the queue
func (wp *WorkerPool) Submit(job Job) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool is shutting down")
	}
}

// Results returns the result channel for consuming fetch results
func (wp *WorkerPool) Results() <-chan Result {
	return wp.resultQueue
}

// worker is the main worker routine
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobQueue {
		select {
		case <-wp.ctx.Done():
			return
		default:
		}

		result := wp.processJob(job, id)

		select {
		case wp.resultQueue <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob handles a single fetch job
func (wp *WorkerPool) processJob(job Job, workerID int) Result {
	start := time.Now()
	result := Result{
		Job:     job,
		Success: false,
	}

	wp.logger.DebugWithFields("worker processing job", map[string]interface{}{
		"worker_id": workerID,
		"photo_id":  job.ID,
	})

	data, contentType, err := wp.client.DownloadImage(job.URL)
	if err != nil {
		result.Error = fmt.Errorf("download failed: %w", err)
		result.Duration = time.Since(start)

		wp.logger.ErrorWithFields("worker failed to fetch image", map[string]interface{}{
			"worker_id": workerID,
			"photo_id":  job.ID,
			"error":     err.Error(),
			"duration":  result.Duration,
		})

		return result
	}

	result.Success = true
	result.Data = data
	result.ContentType = contentType
	result.Duration = time.Since(start)

	wp.logger.DebugWithFields("worker completed job", map[string]interface{}{
		"worker_id": workerID,
		"photo_id":  job.ID,
		"size":      len(data),
		"duration":  result.Duration,
	})

	return result
}

// GetQueueSize returns the current number of jobs in the queue
func (wp *WorkerPool) GetQueueSize() int {
	return len(wp.jobQueue)
}
