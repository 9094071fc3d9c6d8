// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"time"

	"oddly-enough-api/api/dto/responses"
	"oddly-enough-api/core/content"
	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/tiers"
)

// ToArticlesResponse converts a tier read into the public response shape
func ToArticlesResponse(result tiers.ReadResult) responses.ArticlesResponse {
	articles := result.Articles
	if articles == nil {
		articles = []domain.Article{}
	}

	resp := responses.ArticlesResponse{
		Articles: articles,
		Cached:   result.Cached,
		Source:   string(result.Source),
		Total:    result.Total,
		Error:    result.Error,
	}
	if !result.FetchedAt.IsZero() {
		fetched := result.FetchedAt.UTC()
		resp.FetchedAt = &fetched
	}
	return resp
}

// ToArticleResponse attaches page text to an article
func ToArticleResponse(article domain.Article, page *content.Article) responses.ArticleResponse {
	resp := responses.ArticleResponse{
		Article: domain.ArticleWithContent{Article: article},
	}
	if page != nil {
		resp.Article.Content = page.Content
		resp.Article.FullContent = page.FullContent
		resp.ContentCached = page.Cached
	}
	return resp
}

// ToContentResponse converts an extraction result. A fetch error or a page
// without usable paragraphs yields a null content with an error message.
func ToContentResponse(pageURL string, page *domain.PageContent, err error, now time.Time) responses.ContentResponse {
	if err != nil || page == nil || page.Content == domain.ContentUnavailable {
		resp := responses.ContentResponse{URL: pageURL, FetchedAt: now.UTC(), Error: domain.ContentUnavailable}
		if err != nil {
			resp.Error = err.Error()
		}
		return resp
	}

	text := page.Content
	return responses.ContentResponse{
		Content:   &text,
		URL:       page.URL,
		FetchedAt: page.FetchedAt.UTC(),
	}
}

// ToRefreshResponse summarizes a forced read for the cron endpoints
func ToRefreshResponse(result tiers.ReadResult, now time.Time) responses.RefreshResponse {
	return responses.RefreshResponse{
		Success:       result.Source != domain.ProvenanceError,
		ArticlesCount: len(result.Articles),
		Source:        string(result.Source),
		Timestamp:     now.UTC(),
		Error:         result.Error,
	}
}
