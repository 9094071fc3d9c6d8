// ABOUTME: Image resolver picks or repairs a usable image URL for each article
// ABOUTME: Order: feed thumbnail, source default, source repair, og:image fetch, placeholder

package images

import (
	"context"
	"strings"
	"time"

	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/interfaces"
)

// Policy selects whether the network step may run
type Policy int

const (
	// PolicySkipNetwork never fetches pages; unresolved articles are dropped later
	PolicySkipNetwork Policy = iota

	// PolicyBestEffort retries unresolved articles through an og:image fetch
	PolicyBestEffort
)

const (
	// DefaultFetchTimeout bounds a single og:image lookup
	DefaultFetchTimeout = 3 * time.Second

	// DefaultFetchLimit is how many articles per batch may use the network step
	DefaultFetchLimit = 6
)

// Repair rewrites image URLs of specific sources, e.g. low resolution thumbnails
type Repair struct {
	// SourceContains selects sources whose label contains any of these
	SourceContains []string
	Old            string
	New            string
}

// DefaultRepairs upgrade tabloid 98px thumbnails to the 615px variant
var DefaultRepairs = []Repair{
	{SourceContains: []string{"Mirror", "Daily Star"}, Old: "/ALTERNATES/s98/", New: "/ALTERNATES/s615/"},
}

// Options configures a Resolver
type Options struct {
	FetchTimeout time.Duration
	FetchLimit   int
	Placeholders bool
	Repairs      []Repair
}

// Resolver resolves article images
type Resolver struct {
	metadata interfaces.MetadataService
	logger   interfaces.Logger
	opts     Options
}

// NewResolver creates a resolver. metadata may be nil, which disables the network step.
func NewResolver(metadata interfaces.MetadataService, logger interfaces.Logger, opts Options) *Resolver {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.FetchLimit < 0 {
		opts.FetchLimit = 0
	}
	if opts.Repairs == nil {
		opts.Repairs = DefaultRepairs
	}
	return &Resolver{
		metadata: metadata,
		logger:   logger,
		opts:     opts,
	}
}

// Resolve returns an image URL for item, or "" when none could be resolved
// under policy
func (r *Resolver) Resolve(ctx context.Context, item domain.RawFeedItem, src domain.FeedSource, policy Policy) string {
	if u := r.ResolveLocal(item, src); u != "" {
		return u
	}
	if policy == PolicyBestEffort {
		if u := r.fetch(ctx, item.Link); u != "" {
			return r.repair(u, src.Label)
		}
	}
	if r.opts.Placeholders {
		return Placeholder(item.Title)
	}
	return ""
}

// ResolveLocal applies the steps that need no network: thumbnail, source default, repair
func (r *Resolver) ResolveLocal(item domain.RawFeedItem, src domain.FeedSource) string {
	base := strings.TrimSpace(item.Thumbnail)
	if base == "" {
		base = strings.TrimSpace(src.DefaultImage)
	}
	if base == "" {
		return ""
	}
	return r.repair(base, src.Label)
}

func (r *Resolver) repair(u, sourceLabel string) string {
	for _, rep := range r.opts.Repairs {
		for _, needle := range rep.SourceContains {
			if strings.Contains(sourceLabel, needle) {
				u = strings.Replace(u, rep.Old, rep.New, 1)
				break
			}
		}
	}
	return u
}

func (r *Resolver) fetch(ctx context.Context, pageURL string) string {
	if r.metadata == nil || pageURL == "" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, r.opts.FetchTimeout)
	defer cancel()

	result, err := r.metadata.ExtractMetadata(ctx, pageURL)
	if err != nil || result == nil {
		if err != nil && r.logger != nil {
			r.logger.Debug("og:image lookup failed", map[string]interface{}{
				"url":   pageURL,
				"error": err.Error(),
			})
		}
		return ""
	}
	return strings.TrimSpace(result.Thumbnail)
}

// Backfill resolves images for imageless articles after deduplication. Under
// PolicyBestEffort at most FetchLimit articles go to the metadata service in
// one batch, each visit bounded by the service timeout; with
// placeholders enabled every remaining article gets one. The input slice is
// not modified.
func (r *Resolver) Backfill(ctx context.Context, articles []domain.Article, policy Policy) []domain.Article {
	out := make([]domain.Article, len(articles))
	copy(out, articles)

	if policy == PolicyBestEffort && r.metadata != nil && r.opts.FetchLimit > 0 {
		var (
			pending []int
			urls    []string
		)
		for i, a := range out {
			if !a.HasImage() && a.URL != "" && len(pending) < r.opts.FetchLimit {
				pending = append(pending, i)
				urls = append(urls, a.URL)
			}
		}

		if len(urls) > 0 {
			found := r.metadata.ExtractMetadataBatch(ctx, urls)
			for _, idx := range pending {
				result, ok := found[out[idx].URL]
				if !ok || result == nil {
					continue
				}
				if u := strings.TrimSpace(result.Thumbnail); u != "" {
					out[idx].ImageURL = r.repair(u, out[idx].Source)
				}
			}
		}
	}

	if r.opts.Placeholders {
		for i := range out {
			if !out[i].HasImage() {
				out[i].ImageURL = Placeholder(out[i].Title)
			}
		}
	}

	return out
}
