// ABOUTME: PostgreSQL flavour of the article store using lib/pq
// ABOUTME: Lets several API replicas share one article history

package store

import (
	"context"
	"time"

	_ "github.com/lib/pq"
)

var postgresDialect = dialect{
	name:     "postgres",
	driver:   "postgres",
	numbered: true,
	schema: `
		CREATE TABLE IF NOT EXISTS articles (
			source_url TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			source_name VARCHAR(100) NOT NULL,
			category VARCHAR(32) NOT NULL,
			image_url TEXT,
			weirdness_score DOUBLE PRECISION,
			published_at BIGINT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_articles_id ON articles(id);
		CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);
	`,
}

// NewPostgres connects to dsn and ensures the articles table exists
func NewPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	s, err := open(ctx, postgresDialect, dsn)
	if err != nil {
		return nil, err
	}
	s.db.SetMaxOpenConns(10)
	s.db.SetConnMaxIdleTime(5 * time.Minute)
	return s, nil
}
