// Package core contains the business logic of the Oddly Enough service.
// It does not depend on the HTTP framework or on concrete infrastructure;
// caches, the HTTP client, the logger and the article store are injected
// through the contracts in core/interfaces.
//
// Sub-packages:
//
//   - domain: articles, batches, feed sources, categories and engagement counters
//   - feed: feed fetching and RSS/Atom/JSON parsing into raw items
//   - classify: keyword heuristics for oddness, boredom, language and category
//   - articles: the ingestion pipeline and the Origin abstraction
//   - dedupe: URL and title normalisation and duplicate removal
//   - images: image resolution, source repairs and placeholders
//   - services: og:image metadata extraction
//   - rewrite: LLM text-rewrite providers behind a bounded, fail-open service
//   - extract: readable paragraph extraction from HTML pages
//   - content: page content with a cache and optional rewrite
//   - tiers: the memory/distributed/origin read path
//   - stats: in-process view and reaction counters
//   - workers: background cache writes and the periodic refresher
//   - errors: typed errors mapped to HTTP statuses by the api layer
//
// Example:
//
//	deps := interfaces.Dependencies{Cache: cache, HTTPClient: client, Logger: logger}
//	pipeline := articles.NewPipeline(sources, articles.Collaborators{
//	    Fetcher: feed.NewFetcher(deps, feed.NewParser(), 5*time.Second),
//	    Logger:  logger,
//	})
//	controller := tiers.NewController(tiers.NewMemoryTier(30*time.Minute, time.Now),
//	    cache, pipeline, nil, logger, tiers.Options{})
//	result := controller.Read(ctx, tiers.ReadOptions{Category: domain.CategoryAnimals})
package core
