// ABOUTME: Article read handlers for the Huma API
// ABOUTME: Serves the tiered batch, single-article lookup, page content and categories

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"oddly-enough-api/api/dto/mappers"
	"oddly-enough-api/api/dto/responses"
	"oddly-enough-api/core/content"
	"oddly-enough-api/core/domain"
	coreerrors "oddly-enough-api/core/errors"
	"oddly-enough-api/core/interfaces"
	"oddly-enough-api/core/tiers"
)

// ArticleReader is the slice of the tier controller the read endpoints need
type ArticleReader interface {
	Read(ctx context.Context, opts tiers.ReadOptions) tiers.ReadResult
	Current(ctx context.Context) (*domain.Batch, bool)
}

// ContentService extracts page text
type ContentService interface {
	Page(ctx context.Context, pageURL string) (*domain.PageContent, error)
	Article(ctx context.Context, pageURL, title string) (*content.Article, error)
}

// ArticleLookup finds persisted articles
type ArticleLookup interface {
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	FindByURL(ctx context.Context, url string) (*domain.Article, error)
}

// ArticlesHandler handles article read requests
type ArticlesHandler struct {
	reader  ArticleReader
	content ContentService
	store   ArticleLookup
	logger  interfaces.Logger
	now     func() time.Time
}

// NewArticlesHandler creates an articles handler. store and logger may be nil.
func NewArticlesHandler(reader ArticleReader, content ContentService, store ArticleLookup, logger interfaces.Logger) *ArticlesHandler {
	return &ArticlesHandler{
		reader:  reader,
		content: content,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// RegisterRoutes registers all article routes
func (h *ArticlesHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listArticles",
		Method:      http.MethodGet,
		Path:        "/api/articles",
		Summary:     "List odd news articles",
		Description: "Returns the current batch from the fastest warm cache tier, or a static fallback when every tier is cold. Always responds 200.",
		Tags:        []string{"Articles"},
	}, h.ListArticles)

	huma.Register(api, huma.Operation{
		OperationID: "getArticle",
		Method:      http.MethodGet,
		Path:        "/api/article",
		Summary:     "Get one article with its page text",
		Tags:        []string{"Articles"},
	}, h.GetArticle)

	huma.Register(api, huma.Operation{
		OperationID: "getContent",
		Method:      http.MethodGet,
		Path:        "/api/content",
		Summary:     "Extract readable paragraphs from a page",
		Tags:        []string{"Articles"},
	}, h.GetContent)

	huma.Register(api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/categories",
		Summary:     "List article categories",
		Tags:        []string{"Articles"},
	}, h.ListCategories)
}

// ListArticlesInput defines the query for ListArticles
type ListArticlesInput struct {
	Category string `query:"category" doc:"Category id; all or empty for every article"`
	Refresh  bool   `query:"refresh" doc:"Force a fresh ingestion"`
}

// ListArticlesOutput defines the output for ListArticles
type ListArticlesOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         responses.ArticlesResponse
}

// ListArticles handles GET /api/articles
func (h *ArticlesHandler) ListArticles(ctx context.Context, input *ListArticlesInput) (*ListArticlesOutput, error) {
	result := h.reader.Read(ctx, tiers.ReadOptions{
		Category: domain.Category(input.Category),
		Refresh:  input.Refresh,
	})

	cacheControl := "public, s-maxage=300, stale-while-revalidate=600"
	if result.Source == domain.ProvenanceError || result.Source == domain.ProvenanceFallback {
		cacheControl = "no-store"
	}

	return &ListArticlesOutput{
		CacheControl: cacheControl,
		Body:         mappers.ToArticlesResponse(result),
	}, nil
}

// GetArticleInput defines the query for GetArticle
type GetArticleInput struct {
	ID  string `query:"id" doc:"Article id from a batch"`
	URL string `query:"url" doc:"Article source URL"`
}

// GetArticleOutput defines the output for GetArticle
type GetArticleOutput struct {
	Body responses.ArticleResponse
}

// GetArticle handles GET /api/article
func (h *ArticlesHandler) GetArticle(ctx context.Context, input *GetArticleInput) (*GetArticleOutput, error) {
	if input.ID == "" && input.URL == "" {
		return nil, huma.Error400BadRequest("Article ID or URL required")
	}

	article, err := h.lookup(ctx, input.ID, input.URL)
	if err != nil {
		if coreerrors.IsNotFound(err) {
			return nil, toHumaError(err)
		}
		h.warn("Article lookup failed", map[string]interface{}{
			"id":    input.ID,
			"url":   input.URL,
			"error": err.Error(),
		})
		return nil, huma.Error500InternalServerError("Article lookup failed")
	}

	page, err := h.content.Article(ctx, article.URL, article.Title)
	if err != nil {
		h.warn("Article content unavailable", map[string]interface{}{
			"url":   article.URL,
			"error": err.Error(),
		})
		page = &content.Article{Content: domain.ContentUnavailable}
	}

	resp := mappers.ToArticleResponse(*article, page)
	return &GetArticleOutput{Body: resp}, nil
}

// lookup checks the cached batch, then the store, then the static fallback set
func (h *ArticlesHandler) lookup(ctx context.Context, id, url string) (*domain.Article, error) {
	if batch, ok := h.reader.Current(ctx); ok {
		if a, found := findIn(batch, id, url); found {
			return &a, nil
		}
	}

	if h.store != nil {
		var (
			a   *domain.Article
			err error
		)
		if id != "" {
			a, err = h.store.FindByID(ctx, id)
		} else {
			a, err = h.store.FindByURL(ctx, url)
		}
		if err == nil {
			return a, nil
		}
		if !coreerrors.IsNotFound(err) {
			return nil, coreerrors.WrapError(err, "article lookup failed")
		}
	}

	fallback := &domain.Batch{Articles: tiers.FallbackArticles()}
	if a, found := findIn(fallback, id, url); found {
		return &a, nil
	}

	key := id
	if key == "" {
		key = url
	}
	return nil, &coreerrors.NotFoundError{Resource: "article", ID: key}
}

func findIn(batch *domain.Batch, id, url string) (domain.Article, bool) {
	if id != "" {
		return batch.FindByID(id)
	}
	return batch.FindByURL(url)
}

// GetContentInput defines the query for GetContent
type GetContentInput struct {
	URL string `query:"url" doc:"Page URL to extract"`
}

// GetContentOutput defines the output for GetContent
type GetContentOutput struct {
	Body responses.ContentResponse
}

// GetContent handles GET /api/content. Extraction failures are reported in
// the body with a 200 so clients can fall back to opening the page.
func (h *ArticlesHandler) GetContent(ctx context.Context, input *GetContentInput) (*GetContentOutput, error) {
	if input.URL == "" {
		return nil, huma.Error400BadRequest("URL required")
	}

	page, err := h.content.Page(ctx, input.URL)
	if err != nil {
		h.warn("Content extraction failed", map[string]interface{}{
			"url":   input.URL,
			"error": err.Error(),
		})
	}

	return &GetContentOutput{Body: mappers.ToContentResponse(input.URL, page, err, h.now())}, nil
}

// ListCategoriesOutput defines the output for ListCategories
type ListCategoriesOutput struct {
	Body responses.CategoriesResponse
}

// ListCategories handles GET /api/categories
func (h *ArticlesHandler) ListCategories(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	return &ListCategoriesOutput{Body: responses.CategoriesResponse{Categories: domain.Categories()}}, nil
}

func (h *ArticlesHandler) warn(msg string, fields map[string]interface{}) {
	if h.logger != nil {
		h.logger.Warn(msg, fields)
	}
}
