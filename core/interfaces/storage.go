// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines the contract of the persistent article store

package interfaces

import (
	"context"

	"oddly-enough-api/core/domain"
)

// ArticleStore defines the interface for article persistence.
// Records mirror {id, title, summary, source_url, source_name, category,
// image_url, weirdness_score, published_at}.
type ArticleStore interface {
	// Recent returns up to limit articles ordered by published_at descending
	Recent(ctx context.Context, limit int) ([]domain.Article, error)

	// FindByID retrieves an article by id, NotFoundError when absent
	FindByID(ctx context.Context, id string) (*domain.Article, error)

	// FindByURL retrieves an article by source URL, NotFoundError when absent
	FindByURL(ctx context.Context, url string) (*domain.Article, error)

	// Upsert inserts or replaces articles keyed by source URL
	Upsert(ctx context.Context, articles []domain.Article) error

	// Close releases the underlying connection
	Close() error
}
