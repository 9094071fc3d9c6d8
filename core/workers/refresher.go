// ABOUTME: Refresher re-runs a refresh function on a fixed interval
// ABOUTME: Keeps the article cache warm between client requests

package workers

import (
	"context"
	"sync"
	"time"

	"oddly-enough-api/core/interfaces"
)

// RefreshFunc performs one refresh
type RefreshFunc func(ctx context.Context) error

// Refresher calls a RefreshFunc every interval until stopped
type Refresher struct {
	refresh  RefreshFunc
	interval time.Duration
	timeout  time.Duration
	logger   interfaces.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewRefresher creates a refresher. timeout bounds each run; zero means interval.
func NewRefresher(refresh RefreshFunc, interval, timeout time.Duration, logger interfaces.Logger) *Refresher {
	if timeout <= 0 {
		timeout = interval
	}
	return &Refresher{
		refresh:  refresh,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start begins the refresh loop. When immediate is set the first run happens
// right away instead of after one interval.
func (r *Refresher) Start(immediate bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}
	if r.interval <= 0 {
		return &WorkerError{Message: "refresh interval must be positive"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true

	go r.loop(ctx, immediate)

	r.info("Auto refresh enabled", map[string]interface{}{
		"interval": r.interval.String(),
	})
	return nil
}

// Stop ends the loop and waits for an in-flight run to return
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.cancel()
	done := r.done
	r.mu.Unlock()

	<-done
}

func (r *Refresher) loop(ctx context.Context, immediate bool) {
	defer close(r.done)

	if immediate {
		r.runOnce(ctx)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Refresher) runOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	started := time.Now()
	if err := r.refresh(ctx); err != nil {
		if r.logger != nil {
			r.logger.Warn("Scheduled refresh failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return
	}
	r.info("Scheduled refresh complete", map[string]interface{}{
		"duration": time.Since(started).String(),
	})
}

func (r *Refresher) info(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Info(msg, fields)
	}
}
