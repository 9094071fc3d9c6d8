// ABOUTME: Store-backed Origin serving the most recent persisted articles as a batch
// ABOUTME: Used when ingestion runs elsewhere and this process only reads the store

package articles

import (
	"context"
	"time"

	"oddly-enough-api/core/config"
	"oddly-enough-api/core/dedupe"
	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/interfaces"
)

// StoreOrigin reads batches out of an ArticleStore
type StoreOrigin struct {
	store interfaces.ArticleStore
	limit int
	now   func() time.Time
}

// NewStoreOrigin creates a store-backed origin returning up to limit articles
func NewStoreOrigin(store interfaces.ArticleStore, limit int) *StoreOrigin {
	if limit <= 0 {
		limit = config.DefaultBatchCap
	}
	return &StoreOrigin{store: store, limit: limit, now: time.Now}
}

// Ingest returns the newest stored articles, deduplicated and with images.
// Twice the limit is read so dropped rows can be replaced.
func (s *StoreOrigin) Ingest(ctx context.Context) (*domain.Batch, error) {
	list, err := s.store.Recent(ctx, s.limit*2)
	if err != nil {
		return nil, err
	}

	list = dedupe.RequireImage(dedupe.Dedupe(list))
	if len(list) > s.limit {
		list = list[:s.limit]
	}
	return &domain.Batch{Articles: list, CapturedAt: s.now().UTC()}, nil
}
