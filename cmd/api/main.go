// ABOUTME: Main entry point for the Oddly Enough API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oddly-enough-api/api"
	"oddly-enough-api/api/handlers"
	"oddly-enough-api/core/workers"
	stdlogger "oddly-enough-api/infrastructure/logger/standard"
	"oddly-enough-api/internal/app"
	"oddly-enough-api/pkg/config"
	"oddly-enough-api/pkg/featureflags"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := stdlogger.New(cfg.Log)
	if err != nil {
		logger.Warn("Invalid log level, using info", map[string]interface{}{
			"level": cfg.Log.Level,
		})
	}
	defer logger.Close()

	logger.Info("Starting Oddly Enough API", map[string]interface{}{
		"port":            cfg.Server.Port,
		"cache_type":      cfg.Cache.Type,
		"refresh_timer":   cfg.Server.RefreshTimer.String(),
		"rewrite":         cfg.Rewrite.Provider,
		"store":           cfg.Store.Type,
		"ingest_origin":   cfg.Ingestion.Origin,
		"flush_protected": cfg.Server.FlushSecret != "",
	})

	ctx := context.Background()
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialise application", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer application.Close()

	// Rate limiting is on unless FEATURE_RATE_LIMIT_ENABLED=false
	rateLimit := cfg.Server.RateLimit
	if !application.Flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		rateLimit = 0
	}

	stop := make(chan struct{})
	defer close(stop)

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:      logger,
		RateLimit:   rateLimit,
		RateWindow:  time.Minute,
		CORSOrigins: cfg.Server.CORSOrigins,
		SweepStop:   stop,
	})

	handlers.NewArticlesHandler(application.Controller, application.Content, application.Store, logger).RegisterRoutes(humaAPI)
	handlers.NewAdminHandler(application.Controller, application.Controller, cfg.Server.FlushSecret, logger).RegisterRoutes(humaAPI)
	handlers.NewEngagementHandler(application.Tracker).RegisterRoutes(humaAPI)

	var refresher *workers.Refresher
	if cfg.Server.RefreshTimer > 0 {
		refresher = workers.NewRefresher(application.RefreshFunc(), cfg.Server.RefreshTimer, 2*time.Minute, logger)
		if err := refresher.Start(true); err != nil {
			logger.Error("Failed to start refresher", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	if refresher != nil {
		refresher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

func init() {
	fmt.Println(`
   ____      __    ____         ______                         __
  / __ \____/ /___/ / /_  __   / ____/___  ____  __  ______ _/ /_
 / / / / __  / __  / / / / /  / __/ / __ \/ __ \/ / / / __ '/ __ \
/ /_/ / /_/ / /_/ / / /_/ /  / /___/ / / / /_/ / /_/ / /_/ / / / /
\____/\__,_/\__,_/_/\__, /  /_____/_/ /_/\____/\__,_/\__, /_/ /_/
                   /____/                           /____/
	`)
}
