// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, ingestion, rewrite, store and logging

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"oddly-enough-api/pkg/utils/duration"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	Ingestion IngestionConfig
	Rewrite   RewriteConfig
	Store     StoreConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RefreshTimer is the interval between out-of-band ingestions; zero disables it
	RefreshTimer time.Duration

	// FlushSecret authorizes the cache flush endpoint; empty disables flushing
	FlushSecret string

	// RateLimit is the number of requests allowed per client per minute
	RateLimit int

	// CORSOrigins lists allowed origins; "*" allows any
	CORSOrigins []string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the distributed tier backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig

	// MemoryTTL is how long a batch stays in the process-memory tier
	MemoryTTL time.Duration

	// DistributedTTL is how long a batch stays in the distributed tier
	DistributedTTL time.Duration
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL is a redis:// connection string; it wins over Address when set
	URL string

	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	Path string
}

// IngestionConfig tunes the feed pipeline
type IngestionConfig struct {
	FeedsFile      string
	FeedTimeout    time.Duration
	OGFetchLimit   int
	OGFetchTimeout time.Duration
	BatchCap       int

	// Origin is feeds (ingest RSS) or store (serve the persisted article store)
	Origin string
}

// RewriteConfig selects and tunes the text-rewrite provider
type RewriteConfig struct {
	// Provider is gemini, groq or none
	Provider    string
	APIKey      string
	Model       string
	Endpoint    string
	Timeout     time.Duration
	Concurrency int
	RatePerSec  float64
}

// StoreConfig selects the persistent article store
type StoreConfig struct {
	// Type is none, sqlite or postgres
	Type string
	DSN  string
}

// LogConfig controls the logger
type LogConfig struct {
	Level  string
	Format string

	// File enables rotated file output in addition to stderr
	File string
}

// LoadFromEnv loads configuration from environment variables, after merging
// an optional .env file from the working directory
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	provider := strings.ToLower(getEnvOrDefault("REWRITE_PROVIDER", ""))
	apiKey := os.Getenv("REWRITE_API_KEY")
	if provider == "" {
		provider, apiKey = detectRewriteProvider()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "8000"),
			RefreshTimer: getEnvAsDurationOrDefault("REFRESH_TIMER", 30*time.Minute),
			FlushSecret:  os.Getenv("FLUSH_SECRET"),
			RateLimit:    getEnvAsIntOrDefault("RATE_LIMIT", 100),
			CORSOrigins:  splitList(getEnvOrDefault("CORS_ORIGINS", "*")),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				URL:      os.Getenv("REDIS_URL"),
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_CACHE_PATH", "oddly_cache.db"),
			},
			MemoryTTL:      getEnvAsDurationOrDefault("MEMORY_CACHE_TTL", 30*time.Minute),
			DistributedTTL: getEnvAsDurationOrDefault("DISTRIBUTED_CACHE_TTL", 6*time.Hour),
		},
		Ingestion: IngestionConfig{
			FeedsFile:      os.Getenv("FEEDS_FILE"),
			FeedTimeout:    getEnvAsDurationOrDefault("FEED_TIMEOUT", 5*time.Second),
			OGFetchLimit:   getEnvAsIntOrDefault("OG_FETCH_LIMIT", 6),
			OGFetchTimeout: getEnvAsDurationOrDefault("OG_FETCH_TIMEOUT", 3*time.Second),
			BatchCap:       getEnvAsIntOrDefault("BATCH_CAP", 30),
			Origin:         strings.ToLower(getEnvOrDefault("INGEST_ORIGIN", "feeds")),
		},
		Rewrite: RewriteConfig{
			Provider:    provider,
			APIKey:      apiKey,
			Model:       os.Getenv("REWRITE_MODEL"),
			Endpoint:    os.Getenv("REWRITE_ENDPOINT"),
			Timeout:     getEnvAsDurationOrDefault("REWRITE_TIMEOUT", 8*time.Second),
			Concurrency: getEnvAsIntOrDefault("REWRITE_CONCURRENCY", 2),
			RatePerSec:  getEnvAsFloatOrDefault("REWRITE_RATE", 4),
		},
		Store: StoreConfig{
			Type: getEnvOrDefault("STORE_TYPE", "none"),
			DSN:  os.Getenv("STORE_DSN"),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   os.Getenv("LOG_FILE"),
		},
	}

	return cfg, nil
}

// detectRewriteProvider picks a provider from well-known key variables
func detectRewriteProvider() (string, string) {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		return "groq", key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return "gemini", key
	}
	return "none", ""
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts seconds, Go durations or clock strings
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	return duration.ParseOrDefault(os.Getenv(key), defaultValue)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RefreshTimer < 0 {
		return errors.New("refresh timer cannot be negative")
	}

	if c.Server.RefreshTimer > 0 && c.Server.RefreshTimer < time.Minute {
		return errors.New("refresh timer must be at least 1 minute")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" && c.Cache.Redis.URL == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.MemoryTTL <= 0 || c.Cache.DistributedTTL <= 0 {
		return errors.New("cache TTLs must be positive")
	}

	if c.Ingestion.FeedTimeout <= 0 {
		return errors.New("feed timeout must be positive")
	}

	if c.Ingestion.BatchCap < 1 {
		return errors.New("batch cap must be at least 1")
	}

	switch c.Ingestion.Origin {
	case "feeds":
	case "store":
		if c.Store.Type == "" || c.Store.Type == "none" {
			return errors.New("store origin requires a configured store")
		}
	default:
		return errors.New("ingest origin must be 'feeds' or 'store'")
	}

	switch c.Rewrite.Provider {
	case "none":
	case "groq", "gemini":
		if c.Rewrite.APIKey == "" {
			return fmt.Errorf("rewrite provider %s requires an API key", c.Rewrite.Provider)
		}
	default:
		return errors.New("rewrite provider must be 'gemini', 'groq' or 'none'")
	}

	switch c.Store.Type {
	case "none":
	case "sqlite", "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store type %s requires STORE_DSN", c.Store.Type)
		}
	default:
		return errors.New("store type must be 'none', 'sqlite' or 'postgres'")
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return errors.New("log format must be 'json' or 'text'")
	}

	return nil
}
