// ABOUTME: Background writer persists cache entries off the request path
// ABOUTME: Provides a managed worker pool draining a bounded queue of cache writes

package workers

import (
	"context"
	"sync"
	"time"

	"oddly-enough-api/core/interfaces"
)

// WriteJob is one pending cache write
type WriteJob struct {
	Key   string
	Value []byte
	TTL   time.Duration

	// Done receives the write result when set
	Done chan<- error
}

// BackgroundWriter manages background cache writes
type BackgroundWriter struct {
	cache        interfaces.Cache
	logger       interfaces.Logger
	jobQueue     chan *WriteJob
	maxWorkers   int
	writeTimeout time.Duration
	submitWait   time.Duration
	wg           sync.WaitGroup
	mu           sync.Mutex
	running      bool
}

// WorkerConfig holds configuration for the background writer
type WorkerConfig struct {
	MaxWorkers   int
	QueueSize    int
	WriteTimeout time.Duration

	// SubmitWait is how long Submit blocks on a full queue before giving up
	SubmitWait time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers:   2,
		QueueSize:    64,
		WriteTimeout: 5 * time.Second,
		SubmitWait:   100 * time.Millisecond,
	}
}

// NewBackgroundWriter creates a new background writer over cache
func NewBackgroundWriter(cache interfaces.Cache, logger interfaces.Logger, config WorkerConfig) *BackgroundWriter {
	defaults := DefaultWorkerConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.SubmitWait <= 0 {
		config.SubmitWait = defaults.SubmitWait
	}

	return &BackgroundWriter{
		cache:        cache,
		logger:       logger,
		jobQueue:     make(chan *WriteJob, config.QueueSize),
		maxWorkers:   config.MaxWorkers,
		writeTimeout: config.WriteTimeout,
		submitWait:   config.SubmitWait,
	}
}

// Start starts the worker pool
func (bw *BackgroundWriter) Start() error {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.running {
		return nil
	}

	for i := 0; i < bw.maxWorkers; i++ {
		bw.wg.Add(1)
		go bw.run()
	}

	bw.running = true
	return nil
}

// Stop closes the queue and waits until every queued write has finished.
// A stopped writer cannot be restarted.
func (bw *BackgroundWriter) Stop() error {
	bw.mu.Lock()
	if !bw.running {
		bw.mu.Unlock()
		return nil
	}
	bw.running = false
	close(bw.jobQueue)
	bw.mu.Unlock()

	bw.wg.Wait()
	return nil
}

// Submit queues a write. It never blocks longer than SubmitWait.
func (bw *BackgroundWriter) Submit(job *WriteJob) error {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if !bw.running {
		return ErrWorkerNotRunning
	}

	timer := time.NewTimer(bw.submitWait)
	defer timer.Stop()

	select {
	case bw.jobQueue <- job:
		return nil
	case <-timer.C:
		return ErrQueueFull
	}
}

// Write queues key/value with ttl and logs when the queue rejects it
func (bw *BackgroundWriter) Write(key string, value []byte, ttl time.Duration) {
	if err := bw.Submit(&WriteJob{Key: key, Value: value, TTL: ttl}); err != nil {
		bw.warn("Background write dropped", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// run is the main loop for each worker
func (bw *BackgroundWriter) run() {
	defer bw.wg.Done()

	for job := range bw.jobQueue {
		bw.processJob(job)
	}
}

func (bw *BackgroundWriter) processJob(job *WriteJob) {
	ctx, cancel := context.WithTimeout(context.Background(), bw.writeTimeout)
	defer cancel()

	err := bw.cache.Set(ctx, job.Key, job.Value, job.TTL)
	if err != nil {
		bw.warn("Background write failed", map[string]interface{}{
			"key":   job.Key,
			"error": err.Error(),
		})
	}
	if job.Done != nil {
		job.Done <- err
	}
}

func (bw *BackgroundWriter) warn(msg string, fields map[string]interface{}) {
	if bw.logger != nil {
		bw.logger.Warn(msg, fields)
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
