// ABOUTME: Fetcher downloads every configured feed concurrently and parses it
// ABOUTME: One feed failing or timing out yields no items for that feed only

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/interfaces"
)

// DefaultFeedTimeout bounds a single feed fetch
const DefaultFeedTimeout = 5 * time.Second

// maxFeedBytes caps how much of a feed body is read
const maxFeedBytes = 5 << 20

// SourceItems pairs a source with the items parsed from it
type SourceItems struct {
	Source domain.FeedSource
	Items  []domain.RawFeedItem
	Err    error
}

// Fetcher fetches and parses feed sources
type Fetcher struct {
	deps    interfaces.Dependencies
	parser  *Parser
	timeout time.Duration
}

// NewFetcher creates a new fetcher. A non-positive timeout selects DefaultFeedTimeout.
func NewFetcher(deps interfaces.Dependencies, parser *Parser, timeout time.Duration) *Fetcher {
	if parser == nil {
		parser = NewParser()
	}
	if timeout <= 0 {
		timeout = DefaultFeedTimeout
	}
	return &Fetcher{
		deps:    deps,
		parser:  parser,
		timeout: timeout,
	}
}

// FetchAll fetches every source concurrently. The result is in source order;
// failed sources carry an empty item slice and the error.
func (f *Fetcher) FetchAll(ctx context.Context, sources []domain.FeedSource) []SourceItems {
	results := make([]SourceItems, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			items, err := f.FetchOne(ctx, src)
			if err != nil {
				if f.deps.Logger != nil {
					f.deps.Logger.Warn("Feed fetch failed", map[string]interface{}{
						"source": src.Label,
						"url":    src.URL,
						"error":  err.Error(),
					})
				}
				items = []domain.RawFeedItem{}
			}
			results[i] = SourceItems{Source: src, Items: items, Err: err}
			// Per-feed failures never cancel siblings
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// FetchOne fetches and parses a single source under the per-feed timeout
func (f *Fetcher) FetchOne(ctx context.Context, src domain.FeedSource) ([]domain.RawFeedItem, error) {
	if f.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.deps.HTTPClient.Get(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode())
	}

	raw, err := io.ReadAll(io.LimitReader(body, maxFeedBytes))
	if err != nil {
		return nil, err
	}

	items := f.parser.ParseFeed(string(raw), src)

	if f.deps.Logger != nil {
		f.deps.Logger.Debug("Parsed feed", map[string]interface{}{
			"source": src.Label,
			"items":  len(items),
		})
	}

	return items, nil
}
