// ABOUTME: SQLite flavour of the article store using mattn/go-sqlite3
// ABOUTME: Suited to single-node deployments and tests with :memory: databases

package store

import (
	"context"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteDialect = dialect{
	name:   "sqlite",
	driver: "sqlite3",
	schema: `
		CREATE TABLE IF NOT EXISTS articles (
			source_url TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			source_name TEXT NOT NULL,
			category TEXT NOT NULL,
			image_url TEXT,
			weirdness_score REAL,
			published_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_articles_id ON articles(id);
		CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);
	`,
}

// NewSQLite opens (creating if needed) an article store at path
func NewSQLite(ctx context.Context, path string) (*SQLStore, error) {
	s, err := open(ctx, sqliteDialect, path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// One connection keeps :memory: databases coherent and avoids writer contention.
	s.db.SetMaxOpenConns(1)
	return s, nil
}
