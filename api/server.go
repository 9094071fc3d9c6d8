// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"oddly-enough-api/api/middleware"
	"oddly-enough-api/core/interfaces"
)

const (
	apiTitle   = "Oddly Enough API"
	apiVersion = "1.0.0"

	articlesPath = "/api/articles"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger      interfaces.Logger
	RateLimit   int           // requests per window
	RateWindow  time.Duration // rate limit window
	CORSOrigins []string
	// SweepStop stops the rate limiter's idle-visitor sweeper when closed
	SweepStop <-chan struct{}
}

// NewAPI creates and configures a new Huma API instance without request middleware
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS must run first so preflights never hit the limiter
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Window", "Retry-After"},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		if cfg.SweepStop != nil {
			limiter.StartSweeper(cfg.SweepStop)
		}
		// the article feed must always answer 200
		router.Use(middleware.RateLimitMiddleware(limiter, articlesPath))
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "Curated odd-news articles aggregated from RSS feeds, with page extraction and engagement counters"

	// OpenAPI is served at /openapi.json and the docs UI at /docs
	api := humachi.New(router, config)

	return api, router
}
