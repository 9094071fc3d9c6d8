// ABOUTME: Response DTOs for the article read endpoints
// ABOUTME: Field names follow the public JSON contract consumed by the mobile client

package responses

import (
	"time"

	"oddly-enough-api/core/domain"
)

// ArticlesResponse is the body of GET /api/articles
type ArticlesResponse struct {
	Articles  []domain.Article `json:"articles" doc:"Articles matching the category filter"`
	Cached    bool             `json:"cached" doc:"Whether the batch came from a cache tier"`
	Source    string           `json:"source" enum:"memory,distributed,fallback,fresh,error" doc:"Tier that served the read"`
	Total     int              `json:"total,omitempty" doc:"Size of the unfiltered batch"`
	FetchedAt *time.Time       `json:"fetchedAt,omitempty" doc:"When the batch was captured"`
	Error     string           `json:"error,omitempty" doc:"Ingestion failure message when source is error"`
}

// ArticleResponse is the body of GET /api/article
type ArticleResponse struct {
	Article       domain.ArticleWithContent `json:"article"`
	ContentCached bool                      `json:"contentCached" doc:"Whether the page text came from the content cache"`
}

// ContentResponse is the body of GET /api/content. Content is null when
// extraction failed; Error then says why.
type ContentResponse struct {
	Content   *string   `json:"content"`
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetchedAt"`
	Error     string    `json:"error,omitempty"`
}

// CategoriesResponse is the body of GET /api/categories
type CategoriesResponse struct {
	Categories []domain.CategoryInfo `json:"categories"`
}
