// ABOUTME: Rewrite service wraps a Provider with timeouts, a concurrency cap, rate limiting and validation
// ABOUTME: Every failure falls back to the input text so callers never see an error

package rewrite

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"oddly-enough-api/core/interfaces"
	htmlutil "oddly-enough-api/pkg/utils/html"
)

const (
	DefaultTimeout     = 8 * time.Second
	DefaultConcurrency = 2
	DefaultRatePerSec  = 4
	DefaultRetries     = 2

	summaryMaxTokens   = 80
	summaryTemperature = 0.7
	contentMaxTokens   = 1500
	contentTemperature = 0.3

	// contentInputLimit caps how much page text is sent to the model
	contentInputLimit = 3000

	// minContentLength is the shortest text worth rewriting or accepting
	minContentLength = 100

	fallbackTitleLength = 100
)

var (
	surroundingQuotes = regexp.MustCompile(`^["'\x{201C}\x{201D}]+|["'\x{201C}\x{201D}]+$`)

	// Summaries that are stock aggregator blurbs carry no context
	genericSummaryMarkers = []string{"Tap to read", "unusual story", "sounds like satire", "From r/"}
)

// Options configures a Service
type Options struct {
	Timeout     time.Duration
	Concurrency int64
	RatePerSec  float64

	// Retries is the number of extra attempts after a 429; negative disables retrying
	Retries int

	// Backoff is the base delay between 429 retries, multiplied by the attempt number
	Backoff time.Duration
}

// Service implements interfaces.Rewriter on top of a Provider
type Service struct {
	provider Provider
	logger   interfaces.Logger
	sem      *semaphore.Weighted
	limiter  *rate.Limiter
	opts     Options
}

// NewService creates a rewrite service. A nil provider yields a pass-through service.
func NewService(provider Provider, logger interfaces.Logger, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = DefaultRatePerSec
	}
	switch {
	case opts.Retries == 0:
		opts.Retries = DefaultRetries
	case opts.Retries < 0:
		opts.Retries = 0
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}
	return &Service{
		provider: provider,
		logger:   logger,
		sem:      semaphore.NewWeighted(opts.Concurrency),
		limiter:  rate.NewLimiter(rate.Limit(opts.RatePerSec), int(opts.Concurrency)),
		opts:     opts,
	}
}

// Enabled reports whether a provider is configured
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// Summary rewrites summary into a short one-liner, falling back to the input
func (s *Service) Summary(ctx context.Context, title, summary string) string {
	fallback := summary
	if strings.TrimSpace(fallback) == "" {
		fallback = htmlutil.Truncate(title, fallbackTitleLength)
	}
	if !s.Enabled() {
		return fallback
	}

	input := summary
	if isGenericSummary(summary) {
		input = title
	}

	out, err := s.complete(ctx, buildSummaryPrompt(title, input), summaryMaxTokens, summaryTemperature)
	if err != nil {
		return fallback
	}

	out = strings.TrimSpace(surroundingQuotes.ReplaceAllString(strings.TrimSpace(out), ""))
	n := utf8.RuneCountInString(out)
	if n <= 10 || n >= 180 {
		s.debug("Rejected rewritten summary", map[string]interface{}{"length": n})
		return fallback
	}
	return out
}

// Content rewrites extracted article text, falling back to the input
func (s *Service) Content(ctx context.Context, title, content string) string {
	if !s.Enabled() || utf8.RuneCountInString(content) < minContentLength {
		return content
	}

	out, err := s.complete(ctx, buildContentPrompt(title, truncateRunesPlain(content, contentInputLimit)), contentMaxTokens, contentTemperature)
	if err != nil {
		return content
	}
	if utf8.RuneCountInString(out) <= minContentLength {
		return content
	}
	return out
}

// complete runs one prompt under the concurrency cap, rate limit and timeout,
// retrying rate-limited attempts with linear backoff
func (s *Service) complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.sem.Release(1)

	var lastErr error
	for attempt := 0; attempt <= s.opts.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.opts.Backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}

		out, err := s.provider.Complete(ctx, prompt, maxTokens, temperature)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !IsRateLimited(err) {
			break
		}
		s.debug("Rewrite provider rate limited", map[string]interface{}{
			"provider": s.provider.Name(),
			"attempt":  attempt + 1,
		})
	}

	if s.logger != nil {
		s.logger.Warn("Rewrite failed, using original text", map[string]interface{}{
			"provider": s.provider.Name(),
			"error":    lastErr.Error(),
		})
	}
	return "", lastErr
}

func (s *Service) debug(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}

func isGenericSummary(summary string) bool {
	if utf8.RuneCountInString(summary) < 15 {
		return true
	}
	for _, marker := range genericSummaryMarkers {
		if strings.Contains(summary, marker) {
			return true
		}
	}
	return false
}

func truncateRunesPlain(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
