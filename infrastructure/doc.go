// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// Organised by technical concern:
//
//   - cache/memory: in-process cache with TTLs and prefix deletes
//   - cache/redis: go-redis cache, connected lazily on first use
//   - cache/sqlite: go-sqlite3 cache for single-node deployments
//   - http/standard: net/http client with retries on transient failures
//   - logger/standard: logrus logger with optional lumberjack file rotation
//   - store: persistent article store on SQLite or PostgreSQL
//
// Memory cache:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "oddly:articles:cache", payload, 6*time.Hour)
//	n, err := cache.DeletePrefix(ctx, "content:")
//
// Redis cache:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{URL: os.Getenv("REDIS_URL")})
//
// Article store:
//
//	s, err := store.NewPostgres(ctx, dsn)
//	recent, err := s.Recent(ctx, 30)
//
// Logger:
//
//	logger, err := standard.New(config.LogConfig{Level: "debug", Format: "text"})
//	logger.Info("Refresh completed", map[string]interface{}{"articles": 30})
package infrastructure
