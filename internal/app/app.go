// ABOUTME: Application assembly shared by the API server and the CLI
// ABOUTME: Builds caches, clients, the ingestion pipeline and the tier controller from config

package app

import (
	"context"
	"fmt"
	"time"

	"oddly-enough-api/api/middleware"
	"oddly-enough-api/core/articles"
	"oddly-enough-api/core/classify"
	coreconfig "oddly-enough-api/core/config"
	"oddly-enough-api/core/content"
	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/feed"
	"oddly-enough-api/core/images"
	"oddly-enough-api/core/interfaces"
	"oddly-enough-api/core/rewrite"
	"oddly-enough-api/core/services"
	"oddly-enough-api/core/stats"
	"oddly-enough-api/core/tiers"
	"oddly-enough-api/core/workers"
	"oddly-enough-api/infrastructure/cache/memory"
	"oddly-enough-api/infrastructure/cache/redis"
	"oddly-enough-api/infrastructure/cache/sqlite"
	stdhttp "oddly-enough-api/infrastructure/http/standard"
	"oddly-enough-api/infrastructure/store"
	"oddly-enough-api/pkg/config"
	"oddly-enough-api/pkg/featureflags"
)

const httpTimeout = 30 * time.Second

// App holds every wired component
type App struct {
	Config     *config.Config
	Logger     interfaces.Logger
	Flags      featureflags.Manager
	Sources    []domain.FeedSource
	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Classifier *classify.Classifier
	Rewriter   *rewrite.Service
	Store      interfaces.ArticleStore
	Origin     articles.Origin
	Controller *tiers.Controller
	Content    *content.Service
	Tracker    *stats.Tracker
	Writer     *workers.BackgroundWriter

	closers []func() error
}

// New wires the application. The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config, logger interfaces.Logger) (*App, error) {
	a := &App{
		Config:     cfg,
		Logger:     logger,
		Flags:      featureflags.NewEnvManager(""),
		Classifier: classify.Default(),
		Tracker:    stats.NewTracker(time.Now),
	}

	sources, err := config.LoadFeeds(cfg.Ingestion.FeedsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load feeds: %w", err)
	}
	a.Sources = sources

	a.Cache = a.newCache()

	a.HTTPClient = stdhttp.NewStandardHTTPClientWithTransport(httpTimeout, &middleware.LoggingRoundTripper{Logger: logger})

	deps := interfaces.Dependencies{
		Cache:      a.Cache,
		HTTPClient: a.HTTPClient,
		Logger:     logger,
	}

	a.Writer = workers.NewBackgroundWriter(a.Cache, logger, workers.DefaultWorkerConfig())
	if err := a.Writer.Start(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to start background writer: %w", err)
	}
	a.closers = append(a.closers, a.Writer.Stop)

	provider, err := a.newProvider(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Rewriter = rewrite.NewService(provider, logger, rewrite.Options{
		Timeout:     cfg.Rewrite.Timeout,
		Concurrency: int64(cfg.Rewrite.Concurrency),
		RatePerSec:  cfg.Rewrite.RatePerSec,
	})

	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.Origin = a.newOrigin(ctx, deps)

	a.Controller = tiers.NewController(
		tiers.NewMemoryTier(cfg.Cache.MemoryTTL, time.Now),
		a.Cache,
		a.Origin,
		a.Writer,
		logger,
		tiers.Options{DistributedTTL: cfg.Cache.DistributedTTL},
	)

	a.Content = content.NewService(deps, a.Rewriter, content.Options{
		RewriteContent: a.Flags.IsEnabled(ctx, featureflags.LLMContentRewrite) && a.Rewriter.Enabled(),
	})

	return a, nil
}

// newCache builds the distributed tier backend, falling back to memory when
// the configured backend cannot be created
func (a *App) newCache() interfaces.Cache {
	cfg := a.Config.Cache
	switch cfg.Type {
	case "redis":
		c, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			a.Logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		a.closers = append(a.closers, c.Close)
		a.Logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return c
	case "sqlite":
		c, err := sqlite.NewSQLiteCache(cfg.SQLite.Path, sqlite.WithLogger(a.Logger))
		if err != nil {
			a.Logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
				"path":  cfg.SQLite.Path,
			})
			break
		}
		a.closers = append(a.closers, c.Close)
		a.Logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return c
	}

	a.Logger.Info("Using memory cache", nil)
	return memory.NewMemoryCacheWithCleanup(5 * time.Minute)
}

func (a *App) newProvider(ctx context.Context) (rewrite.Provider, error) {
	cfg := a.Config.Rewrite
	switch cfg.Provider {
	case "gemini":
		p, err := rewrite.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini provider: %w", err)
		}
		a.closers = append(a.closers, p.Close)
		return p, nil
	case "groq":
		p, err := rewrite.NewChatProvider(a.HTTPClient, cfg.Endpoint, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat provider: %w", err)
		}
		return p, nil
	}
	return nil, nil
}

func (a *App) openStore(ctx context.Context) error {
	cfg := a.Config.Store
	var (
		s   *store.SQLStore
		err error
	)
	switch cfg.Type {
	case "sqlite":
		s, err = store.NewSQLite(ctx, cfg.DSN)
	case "postgres":
		s, err = store.NewPostgres(ctx, cfg.DSN)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Type, err)
	}
	a.Store = s
	a.closers = append(a.closers, s.Close)
	return nil
}

func (a *App) newOrigin(ctx context.Context, deps interfaces.Dependencies) articles.Origin {
	cfg := a.Config.Ingestion
	if cfg.Origin == "store" && a.Store != nil {
		return articles.NewStoreOrigin(a.Store, cfg.BatchCap)
	}

	metadata := services.NewMetadataService(deps, cfg.OGFetchTimeout)
	resolver := images.NewResolver(metadata, a.Logger, images.Options{
		FetchTimeout: cfg.OGFetchTimeout,
		FetchLimit:   cfg.OGFetchLimit,
		Placeholders: a.Flags.IsEnabled(ctx, featureflags.Placeholders),
	})

	collaborators := articles.Collaborators{
		Fetcher:    feed.NewFetcher(deps, feed.NewParser(), cfg.FeedTimeout),
		Classifier: a.Classifier,
		Resolver:   resolver,
		Logger:     a.Logger,
	}
	if a.Rewriter.Enabled() {
		collaborators.Rewriter = a.Rewriter
	}
	if a.Store != nil {
		collaborators.Store = a.Store
	}

	return articles.NewPipeline(a.Sources, collaborators,
		coreconfig.WithImageFetch(a.Flags.IsEnabled(ctx, featureflags.OGImageFetch)),
		coreconfig.WithSummaryRewrite(a.Flags.IsEnabled(ctx, featureflags.LLMSummaries) && a.Rewriter.Enabled()),
		coreconfig.WithShuffle(a.Flags.IsEnabled(ctx, featureflags.ShuffleBatch)),
		coreconfig.WithBatchCap(cfg.BatchCap),
	)
}

// RefreshFunc adapts the controller's forced refresh for workers.Refresher
func (a *App) RefreshFunc() workers.RefreshFunc {
	return func(ctx context.Context) error {
		batch, err := a.Controller.Refresh(ctx)
		if err != nil {
			return err
		}
		a.Logger.Info("Scheduled refresh completed", map[string]interface{}{
			"articles": len(batch.Articles),
		})
		return nil
	}
}

// Close releases resources in reverse order of acquisition
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
