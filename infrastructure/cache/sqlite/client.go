// ABOUTME: SQLite-based cache implementation for persistent caching
// ABOUTME: Provides a file-based distributed tier that survives application restarts

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("key not found")

const (
	tableName              = "cache"
	defaultCleanupInterval = 5 * time.Minute
)

// Client implements the Cache interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string
	stmts    statements
	logger   Logger
	now      func() time.Time

	cleanupInterval time.Duration
	stop            chan struct{}
	closeOnce       sync.Once
	wg              sync.WaitGroup
}

// Option configures a Client
type Option func(*Client)

// WithLogger reports suspicious keys through logger
func WithLogger(logger Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCleanupInterval sets how often expired rows are purged; zero disables purging
func WithCleanupInterval(d time.Duration) Option {
	return func(c *Client) { c.cleanupInterval = d }
}

// WithClock overrides the time source used for expiry
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewSQLiteCache creates a new SQLite cache client
func NewSQLiteCache(filePath string, opts ...Option) (*Client, error) {
	if filePath == "" {
		filePath = "cache.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// One writer avoids SQLITE_BUSY and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	client := &Client{
		db:              db,
		filePath:        filePath,
		stmts:           buildStatements(tableName),
		now:             time.Now,
		cleanupInterval: defaultCleanupInterval,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(client)
	}

	if err := client.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if client.cleanupInterval > 0 {
		client.wg.Add(1)
		go client.cleanupRoutine()
	}

	return client, nil
}

func (c *Client) initSchema() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS cache (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expiry INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_expiry ON cache(expiry);
	`)
	return err
}

// Get retrieves a value from the cache
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key, c.logger); err != nil {
		return nil, err
	}

	var value []byte
	err := c.db.QueryRowContext(ctx, c.stmts.get, key, c.now().UnixMilli()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

// Set stores a value in the cache with TTL. A non-positive TTL never expires.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}

	expiry := int64(math.MaxInt64)
	if ttl > 0 {
		expiry = c.now().Add(ttl).UnixMilli()
	}

	if _, err := c.db.ExecContext(ctx, c.stmts.set, key, value, expiry); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}

	if _, err := c.db.ExecContext(ctx, c.stmts.del, key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}

// DeletePrefix removes every key beginning with prefix
func (c *Client) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, errors.New("prefix cannot be empty")
	}

	res, err := c.db.ExecContext(ctx, c.stmts.deletePrefix, prefix, prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to delete prefix: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows: %w", err)
	}
	return int(n), nil
}

func (c *Client) cleanupRoutine() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.cleanup(context.Background())
		case <-c.stop:
			return
		}
	}
}

func (c *Client) cleanup(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, c.stmts.cleanup, c.now().UnixMilli())
	return err
}

// Close stops the cleanup routine and closes the database connection
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.stop)
		c.wg.Wait()
		err = c.db.Close()
	})
	return err
}

// Stats returns cache statistics
func (c *Client) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var count int
	if err := c.db.QueryRowContext(ctx, c.stmts.count).Scan(&count); err != nil {
		return nil, err
	}
	stats["total_entries"] = count

	var expired int
	if err := c.db.QueryRowContext(ctx, c.stmts.countExpired, c.now().UnixMilli()).Scan(&expired); err != nil {
		return nil, err
	}
	stats["expired_entries"] = expired

	var pageCount, pageSize int
	if err := c.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
		if err := c.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err == nil {
			stats["db_size_bytes"] = pageCount * pageSize
		}
	}

	stats["file_path"] = c.filePath
	return stats, nil
}
