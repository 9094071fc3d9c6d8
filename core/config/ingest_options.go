// ABOUTME: Ingestion configuration for service-level control of optional pipeline stages
// ABOUTME: Provides functional options independent of HTTP request structures

package config

const (
	// DefaultBatchCap is the maximum number of articles in a published batch
	DefaultBatchCap = 30

	// DefaultPerSourceCap is how many classified items each source contributes
	DefaultPerSourceCap = 8

	// DefaultAlwaysOddCap bounds the candidates taken from always-odd sources
	DefaultAlwaysOddCap = 12
)

// IngestConfig controls which ingestion stages are enabled
type IngestConfig struct {
	// FetchImages allows the og:image network step during backfill
	FetchImages bool

	// RewriteSummaries sends each summary through the rewriter
	RewriteSummaries bool

	// Shuffle randomizes the final batch order after the recency sort
	Shuffle bool

	BatchCap     int
	PerSourceCap int
	AlwaysOddCap int
}

// DefaultIngestConfig returns the default configuration with network steps disabled
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		BatchCap:     DefaultBatchCap,
		PerSourceCap: DefaultPerSourceCap,
		AlwaysOddCap: DefaultAlwaysOddCap,
	}
}

// IngestOption is a functional option for configuring ingestion
type IngestOption func(*IngestConfig)

// WithImageFetch enables or disables the og:image fetch
func WithImageFetch(enabled bool) IngestOption {
	return func(c *IngestConfig) {
		c.FetchImages = enabled
	}
}

// WithSummaryRewrite enables or disables summary rewriting
func WithSummaryRewrite(enabled bool) IngestOption {
	return func(c *IngestConfig) {
		c.RewriteSummaries = enabled
	}
}

// WithShuffle enables or disables shuffling of the final batch
func WithShuffle(enabled bool) IngestOption {
	return func(c *IngestConfig) {
		c.Shuffle = enabled
	}
}

// WithBatchCap overrides the batch size; non-positive values are ignored
func WithBatchCap(n int) IngestOption {
	return func(c *IngestConfig) {
		if n > 0 {
			c.BatchCap = n
		}
	}
}

// WithPerSourceCap overrides the per-source contribution; non-positive values are ignored
func WithPerSourceCap(n int) IngestOption {
	return func(c *IngestConfig) {
		if n > 0 {
			c.PerSourceCap = n
		}
	}
}

// NewIngestConfig creates a new ingestion configuration with the given options
func NewIngestConfig(opts ...IngestOption) IngestConfig {
	config := DefaultIngestConfig()

	for _, opt := range opts {
		opt(&config)
	}

	return config
}
