// ABOUTME: Cache tier controller resolving reads through memory, distributed cache and origin
// ABOUTME: Cold reads never wait on ingestion; forced refreshes fall back instead of failing

package tiers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"oddly-enough-api/core/articles"
	"oddly-enough-api/core/domain"
	coreerrors "oddly-enough-api/core/errors"
	"oddly-enough-api/core/interfaces"
)

const (
	// BatchKey is the distributed cache key of the current batch
	BatchKey = "oddly:articles:cache"

	// DefaultDistributedTTL is how long the distributed tier keeps a batch
	DefaultDistributedTTL = 6 * time.Hour

	distributedWriteTimeout = 5 * time.Second
)

// ErrEmptyBatch marks an ingestion that completed without any article
var ErrEmptyBatch = errors.New("ingestion produced no articles")

// Writer persists cache entries off the request path
type Writer interface {
	Write(key string, value []byte, ttl time.Duration)
}

// ReadOptions selects the category filter and whether to force ingestion
type ReadOptions struct {
	Category domain.Category
	Refresh  bool
}

// ReadResult is the outcome of a read. It never carries a Go error: failures
// surface as an empty article list with Source "error" and a message.
type ReadResult struct {
	Articles  []domain.Article
	Source    domain.Provenance
	Cached    bool
	Total     int
	FetchedAt time.Time
	Error     string
}

// Options configures a Controller
type Options struct {
	DistributedTTL time.Duration
	Now            func() time.Time
}

// Controller resolves article reads across the cache tiers
type Controller struct {
	memory         *MemoryTier
	distributed    interfaces.Cache
	origin         articles.Origin
	writer         Writer
	logger         interfaces.Logger
	distributedTTL time.Duration
	now            func() time.Time
	group          singleflight.Group
}

// NewController creates a tier controller. distributed and writer may be nil;
// without a writer distributed writes run on their own goroutine.
func NewController(memory *MemoryTier, distributed interfaces.Cache, origin articles.Origin, writer Writer, logger interfaces.Logger, opts Options) *Controller {
	if opts.DistributedTTL <= 0 {
		opts.DistributedTTL = DefaultDistributedTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if memory == nil {
		memory = NewMemoryTier(DefaultMemoryTTL, opts.Now)
	}
	return &Controller{
		memory:         memory,
		distributed:    distributed,
		origin:         origin,
		writer:         writer,
		logger:         logger,
		distributedTTL: opts.DistributedTTL,
		now:            opts.Now,
	}
}

// Read returns the current batch filtered by category
func (c *Controller) Read(ctx context.Context, opts ReadOptions) ReadResult {
	if !opts.Refresh {
		if batch, ok := c.memory.Get(); ok {
			return c.result(batch, domain.ProvenanceMemory, opts.Category)
		}
		if batch := c.readDistributed(ctx); batch != nil {
			c.memory.Set(batch)
			return c.result(batch, domain.ProvenanceDistributed, opts.Category)
		}
		fallback := &domain.Batch{Articles: FallbackArticles(), CapturedAt: c.now().UTC()}
		return c.result(fallback, domain.ProvenanceFallback, opts.Category)
	}

	batch, err := c.Refresh(ctx)
	if err == nil {
		return c.result(batch, domain.ProvenanceFresh, opts.Category)
	}

	c.warn("Refresh failed, serving distributed tier", map[string]interface{}{
		"error": err.Error(),
	})
	if cached := c.readDistributed(ctx); cached != nil {
		c.memory.Set(cached)
		return c.result(cached, domain.ProvenanceDistributed, opts.Category)
	}

	return ReadResult{
		Articles:  []domain.Article{},
		Source:    domain.ProvenanceError,
		FetchedAt: c.now().UTC(),
		Error:     err.Error(),
	}
}

// Refresh runs one ingestion and writes it through both tiers. Concurrent
// callers share a single ingestion run.
func (c *Controller) Refresh(ctx context.Context) (*domain.Batch, error) {
	v, err, _ := c.group.Do("ingest", func() (interface{}, error) {
		return c.ingest(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Batch), nil
}

func (c *Controller) ingest(ctx context.Context) (*domain.Batch, error) {
	if c.origin == nil {
		return nil, &coreerrors.UnavailableError{Service: "origin"}
	}

	batch, err := c.origin.Ingest(ctx)
	if err != nil {
		return nil, &coreerrors.UnavailableError{Service: "origin", Cause: err}
	}
	if batch.IsEmpty() {
		return nil, &coreerrors.UnavailableError{Service: "origin", Cause: ErrEmptyBatch}
	}

	c.memory.Set(batch)
	c.writeDistributed(batch)
	return batch, nil
}

// Current returns the cached batch without ever triggering ingestion or the
// static fallback. ok is false when both cache tiers are cold.
func (c *Controller) Current(ctx context.Context) (*domain.Batch, bool) {
	if batch, ok := c.memory.Get(); ok {
		return batch, true
	}
	if batch := c.readDistributed(ctx); batch != nil {
		c.memory.Set(batch)
		return batch, true
	}
	return nil, false
}

// FlushResult reports what an administrative flush removed
type FlushResult struct {
	BatchCleared bool `json:"batchCleared"`
	ContentKeys  int  `json:"contentKeys"`
}

// Flush clears the memory tier, the distributed batch and every cached page content
func (c *Controller) Flush(ctx context.Context) (FlushResult, error) {
	c.memory.Clear()

	var result FlushResult
	if c.distributed == nil {
		return result, nil
	}

	if err := c.distributed.Delete(ctx, BatchKey); err != nil {
		return result, &coreerrors.UnavailableError{Service: "cache", Cause: err}
	}
	result.BatchCleared = true

	if deleter, ok := c.distributed.(interfaces.PrefixDeleter); ok {
		n, err := deleter.DeletePrefix(ctx, domain.ContentKeyPrefix)
		if err != nil {
			return result, &coreerrors.UnavailableError{Service: "cache", Cause: err}
		}
		result.ContentKeys = n
	}

	c.info("Cache flushed", map[string]interface{}{
		"content_keys": result.ContentKeys,
	})
	return result, nil
}

func (c *Controller) readDistributed(ctx context.Context) *domain.Batch {
	if c.distributed == nil {
		return nil
	}

	data, err := c.distributed.Get(ctx, BatchKey)
	if err != nil || len(data) == 0 {
		return nil
	}

	var batch domain.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		c.warn("Discarding unreadable cached batch", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if batch.IsEmpty() {
		return nil
	}
	return &batch
}

func (c *Controller) writeDistributed(batch *domain.Batch) {
	if c.distributed == nil {
		return
	}

	data, err := json.Marshal(batch)
	if err != nil {
		c.warn("Failed to encode batch", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if c.writer != nil {
		c.writer.Write(BatchKey, data, c.distributedTTL)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), distributedWriteTimeout)
		defer cancel()
		if err := c.distributed.Set(ctx, BatchKey, data, c.distributedTTL); err != nil {
			c.warn("Distributed write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}

func (c *Controller) result(batch *domain.Batch, source domain.Provenance, category domain.Category) ReadResult {
	return ReadResult{
		Articles:  batch.Filter(category),
		Source:    source,
		Cached:    source.IsCached(),
		Total:     len(batch.Articles),
		FetchedAt: batch.CapturedAt,
	}
}

func (c *Controller) info(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, fields)
	}
}

func (c *Controller) warn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}
