// ABOUTME: Ingestion pipeline turning configured feeds into one deduplicated article batch
// ABOUTME: Fetch, filter, clean, classify, resolve images, dedupe, backfill, sort and cap

package articles

import (
	"context"
	"math/rand/v2"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"oddly-enough-api/core/classify"
	"oddly-enough-api/core/config"
	"oddly-enough-api/core/dedupe"
	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/feed"
	"oddly-enough-api/core/images"
	"oddly-enough-api/core/interfaces"
)

// Origin produces a fresh batch; the tier controller calls it on refresh
type Origin interface {
	Ingest(ctx context.Context) (*domain.Batch, error)
}

// Pipeline is the feed-backed Origin
type Pipeline struct {
	sources    []domain.FeedSource
	fetcher    *feed.Fetcher
	classifier *classify.Classifier
	resolver   *images.Resolver
	rewriter   interfaces.Rewriter
	store      interfaces.ArticleStore
	logger     interfaces.Logger
	cfg        config.IngestConfig
	now        func() time.Time
}

// Collaborators groups the pipeline dependencies. Rewriter and Store are optional.
type Collaborators struct {
	Fetcher    *feed.Fetcher
	Classifier *classify.Classifier
	Resolver   *images.Resolver
	Rewriter   interfaces.Rewriter
	Store      interfaces.ArticleStore
	Logger     interfaces.Logger
}

// NewPipeline creates an ingestion pipeline over sources
func NewPipeline(sources []domain.FeedSource, c Collaborators, opts ...config.IngestOption) *Pipeline {
	if c.Classifier == nil {
		c.Classifier = classify.Default()
	}
	if c.Resolver == nil {
		c.Resolver = images.NewResolver(nil, c.Logger, images.Options{})
	}
	return &Pipeline{
		sources:    sources,
		fetcher:    c.Fetcher,
		classifier: c.Classifier,
		resolver:   c.Resolver,
		rewriter:   c.Rewriter,
		store:      c.Store,
		logger:     c.Logger,
		cfg:        config.NewIngestConfig(opts...),
		now:        time.Now,
	}
}

// WithClock replaces the pipeline clock, used for ids and the capture time
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Ingest runs one full ingestion. Per-source failures only shrink the batch;
// an empty batch is returned without error and judged by the caller.
func (p *Pipeline) Ingest(ctx context.Context) (*domain.Batch, error) {
	started := p.now()
	batchMillis := started.UnixMilli()

	fetched := p.fetcher.FetchAll(ctx, p.sources)

	perSource := make([][]domain.Article, len(fetched))
	g, gctx := errgroup.WithContext(ctx)
	for i, result := range fetched {
		g.Go(func() error {
			perSource[i] = p.processSource(gctx, result, batchMillis)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []domain.Article
	for _, list := range perSource {
		all = append(all, list...)
	}

	unique := dedupe.Dedupe(all)

	policy := images.PolicySkipNetwork
	if p.cfg.FetchImages {
		policy = images.PolicyBestEffort
	}
	withImages := dedupe.RequireImage(p.resolver.Backfill(ctx, unique, policy))

	sort.SliceStable(withImages, func(i, j int) bool {
		return withImages[i].PublishedAt.After(withImages[j].PublishedAt)
	})
	if len(withImages) > p.cfg.BatchCap {
		withImages = withImages[:p.cfg.BatchCap]
	}
	if p.cfg.Shuffle {
		rand.Shuffle(len(withImages), func(i, j int) {
			withImages[i], withImages[j] = withImages[j], withImages[i]
		})
	}

	batch := &domain.Batch{Articles: withImages, CapturedAt: started.UTC()}

	p.log("Ingestion complete", map[string]interface{}{
		"sources":    len(p.sources),
		"candidates": len(all),
		"unique":     len(unique),
		"published":  len(withImages),
		"duration":   p.now().Sub(started).String(),
	})

	p.persist(ctx, batch)
	return batch, nil
}

func (p *Pipeline) processSource(ctx context.Context, result feed.SourceItems, batchMillis int64) []domain.Article {
	src := result.Source
	candidates := p.selectCandidates(result.Items, src)

	out := make([]domain.Article, 0, len(candidates))
	for i, item := range candidates {
		summary := CleanSummary(item.Description, src)
		category := p.classifier.Classify(item.Title, summary, src.Category)
		title := CleanTitle(item.Title)
		if title == "" {
			continue
		}
		if p.cfg.RewriteSummaries && p.rewriter != nil {
			summary = p.rewriter.Summary(ctx, title, summary)
		}

		out = append(out, domain.Article{
			ID:          ArticleID(src.Label, batchMillis, i),
			Title:       title,
			Summary:     summary,
			URL:         item.Link,
			ImageURL:    p.resolver.ResolveLocal(item, src),
			Source:      src.Label,
			Category:    category,
			PublishedAt: item.Published,
		})
	}
	return out
}

// selectCandidates applies the oddness filter, the English gate and the per-source cap
func (p *Pipeline) selectCandidates(items []domain.RawFeedItem, src domain.FeedSource) []domain.RawFeedItem {
	var odd []domain.RawFeedItem
	if src.AlwaysOdd {
		odd = items
		if len(odd) > p.cfg.AlwaysOddCap {
			odd = odd[:p.cfg.AlwaysOddCap]
		}
	} else {
		for _, item := range items {
			if p.classifier.IsOddNews(item.Title, item.Description) {
				odd = append(odd, item)
			}
		}
	}

	selected := make([]domain.RawFeedItem, 0, p.cfg.PerSourceCap)
	for _, item := range odd {
		if !classify.IsEnglish(item.Title) {
			continue
		}
		selected = append(selected, item)
		if len(selected) == p.cfg.PerSourceCap {
			break
		}
	}
	return selected
}

func (p *Pipeline) persist(ctx context.Context, batch *domain.Batch) {
	if p.store == nil || batch.IsEmpty() {
		return
	}
	if err := p.store.Upsert(ctx, batch.Articles); err != nil && p.logger != nil {
		p.logger.Warn("Article store upsert failed", map[string]interface{}{
			"count": len(batch.Articles),
			"error": err.Error(),
		})
	}
}

func (p *Pipeline) log(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, fields)
	}
}
