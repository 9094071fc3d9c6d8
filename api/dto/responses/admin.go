// ABOUTME: Response DTOs for refresh, flush and engagement endpoints

package responses

import (
	"time"

	"oddly-enough-api/core/domain"
)

// RefreshResponse reports the outcome of a forced ingestion
type RefreshResponse struct {
	Success       bool      `json:"success"`
	ArticlesCount int       `json:"articlesCount"`
	Source        string    `json:"source"`
	Timestamp     time.Time `json:"timestamp"`
	Error         string    `json:"error,omitempty"`
}

// FlushResponse reports what the cache flush removed
type FlushResponse struct {
	Success             bool `json:"success"`
	ContentKeysCleared  int  `json:"contentKeysCleared"`
	ArticleCacheCleared bool `json:"articleCacheCleared"`
}

// TrackResponse returns the article's counters after the event
type TrackResponse struct {
	Success bool              `json:"success"`
	Stats   domain.Engagement `json:"stats"`
}

// StatsResponse maps article ids to counters
type StatsResponse struct {
	Stats map[string]domain.Engagement `json:"stats"`
}
