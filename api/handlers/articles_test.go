package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oddly-enough-api/core/content"
	"oddly-enough-api/core/domain"
	coreerrors "oddly-enough-api/core/errors"
	"oddly-enough-api/core/tiers"
)

var testBatch = &domain.Batch{
	Articles: []domain.Article{
		{ID: "Oddity-Central-1-0", Title: "Goat elected mayor", URL: "https://example.com/goat", Category: domain.CategoryAnimals},
		{ID: "The-Register-1-1", Title: "Printer files for divorce", URL: "https://example.com/printer", Category: domain.CategoryTech},
	},
	CapturedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
}

func batchReader() *mockReader {
	return &mockReader{
		currentFunc: func(ctx context.Context) (*domain.Batch, bool) { return testBatch, true },
	}
}

func TestArticlesHandler_ListArticles(t *testing.T) {
	var got tiers.ReadOptions
	reader := &mockReader{
		readFunc: func(ctx context.Context, opts tiers.ReadOptions) tiers.ReadResult {
			got = opts
			return tiers.ReadResult{
				Articles:  testBatch.Filter(opts.Category),
				Source:    domain.ProvenanceMemory,
				Cached:    true,
				Total:     2,
				FetchedAt: testBatch.CapturedAt,
			}
		},
	}

	_, api := humatest.New(t)
	NewArticlesHandler(reader, &mockContent{}, nil, nil).RegisterRoutes(api)

	resp := api.Get("/api/articles?category=tech&refresh=true")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, domain.Category("tech"), got.Category)
	assert.True(t, got.Refresh)
	assert.Contains(t, resp.Header().Get("Cache-Control"), "s-maxage=300")

	var body struct {
		Articles []domain.Article `json:"articles"`
		Cached   bool             `json:"cached"`
		Source   string           `json:"source"`
		Total    int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Articles, 1)
	assert.Equal(t, "Printer files for divorce", body.Articles[0].Title)
	assert.True(t, body.Cached)
	assert.Equal(t, "memory", body.Source)
	assert.Equal(t, 2, body.Total)
}

func TestArticlesHandler_ListArticles_NoStoreOnFallback(t *testing.T) {
	for _, source := range []domain.Provenance{domain.ProvenanceFallback, domain.ProvenanceError} {
		t.Run(string(source), func(t *testing.T) {
			reader := &mockReader{
				readFunc: func(ctx context.Context, opts tiers.ReadOptions) tiers.ReadResult {
					return tiers.ReadResult{Source: source, Error: "feeds down"}
				},
			}
			_, api := humatest.New(t)
			NewArticlesHandler(reader, &mockContent{}, nil, nil).RegisterRoutes(api)

			resp := api.Get("/api/articles")
			require.Equal(t, http.StatusOK, resp.Code)
			assert.Equal(t, "no-store", resp.Header().Get("Cache-Control"))
			assert.Contains(t, resp.Body.String(), `"articles":[]`)
		})
	}
}

func TestArticlesHandler_GetArticle_FromBatch(t *testing.T) {
	contentSvc := &mockContent{
		articleFunc: func(ctx context.Context, pageURL, title string) (*content.Article, error) {
			assert.Equal(t, "https://example.com/goat", pageURL)
			assert.Equal(t, "Goat elected mayor", title)
			return &content.Article{Content: "The goat won.", FullContent: "The goat won by a landslide.", Cached: true}, nil
		},
	}
	_, api := humatest.New(t)
	NewArticlesHandler(batchReader(), contentSvc, nil, nil).RegisterRoutes(api)

	resp := api.Get("/api/article?id=Oddity-Central-1-0")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Article       domain.ArticleWithContent `json:"article"`
		ContentCached bool                      `json:"contentCached"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Goat elected mayor", body.Article.Title)
	assert.Equal(t, "The goat won.", body.Article.Content)
	assert.Equal(t, "The goat won by a landslide.", body.Article.FullContent)
	assert.True(t, body.ContentCached)
}

func TestArticlesHandler_GetArticle_ByURL(t *testing.T) {
	_, api := humatest.New(t)
	NewArticlesHandler(batchReader(), &mockContent{}, nil, nil).RegisterRoutes(api)

	resp := api.Get("/api/article?url=https://example.com/printer")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Printer files for divorce")
}

func TestArticlesHandler_GetArticle_MissingKey(t *testing.T) {
	_, api := humatest.New(t)
	NewArticlesHandler(batchReader(), &mockContent{}, nil, nil).RegisterRoutes(api)

	resp := api.Get("/api/article")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Article ID or URL required")
}

func TestArticlesHandler_GetArticle_FromStore(t *testing.T) {
	store := &mockLookup{
		findByIDFunc: func(ctx context.Context, id string) (*domain.Article, error) {
			return &domain.Article{ID: id, Title: "Archived oddity", URL: "https://example.com/archived"}, nil
		},
	}
	_, api := humatest.New(t)
	NewArticlesHandler(batchReader(), &mockContent{}, store, nil).RegisterRoutes(api)

	resp := api.Get("/api/article?id=older-1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Archived oddity")
	assert.Contains(t, resp.Body.String(), domain.ContentUnavailable)
}

func TestArticlesHandler_GetArticle_StoreFailure(t *testing.T) {
	store := &mockLookup{
		findByIDFunc: func(ctx context.Context, id string) (*domain.Article, error) {
			return nil, errors.New("connection reset")
		},
	}
	_, api := humatest.New(t)
	NewArticlesHandler(batchReader(), &mockContent{}, store, nil).RegisterRoutes(api)

	resp := api.Get("/api/article?id=older-1")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestArticlesHandler_GetArticle_StoreUnavailableIs500(t *testing.T) {
	failures := map[string]error{
		"unavailable":  &coreerrors.UnavailableError{Service: "Article store", Cause: errors.New("pool closed")},
		"external 502": &coreerrors.ExternalAPIError{StatusCode: http.StatusBadGateway, API: "postgres", Message: "bad gateway"},
	}
	for name, failure := range failures {
		t.Run(name, func(t *testing.T) {
			logger := &recordingLogger{}
			store := &mockLookup{
				findByIDFunc: func(ctx context.Context, id string) (*domain.Article, error) {
					return nil, failure
				},
			}
			_, api := humatest.New(t)
			NewArticlesHandler(batchReader(), &mockContent{}, store, logger).RegisterRoutes(api)

			resp := api.Get("/api/article?id=older-1")
			assert.Equal(t, http.StatusInternalServerError, resp.Code)
			assert.Contains(t, resp.Body.String(), "Article lookup failed")
			assert.Equal(t, []string{"Article lookup failed"}, logger.warns)
		})
	}
}

func TestArticlesHandler_GetArticle_Fallback(t *testing.T) {
	fallback := tiers.FallbackArticles()
	require.NotEmpty(t, fallback)

	store := &mockLookup{
		findByIDFunc: func(ctx context.Context, id string) (*domain.Article, error) {
			return nil, &coreerrors.NotFoundError{Resource: "article", ID: id}
		},
	}
	_, api := humatest.New(t)
	NewArticlesHandler(&mockReader{}, &mockContent{}, store, nil).RegisterRoutes(api)

	resp := api.Get("/api/article?id=" + fallback[0].ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), fallback[0].Title)
}

func TestArticlesHandler_GetArticle_NotFound(t *testing.T) {
	_, api := humatest.New(t)
	NewArticlesHandler(batchReader(), &mockContent{}, nil, nil).RegisterRoutes(api)

	resp := api.Get("/api/article?id=nope")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestArticlesHandler_GetArticle_ContentFailure(t *testing.T) {
	logger := &recordingLogger{}
	contentSvc := &mockContent{
		articleFunc: func(ctx context.Context, pageURL, title string) (*content.Article, error) {
			return nil, errors.New("timeout")
		},
	}
	_, api := humatest.New(t)
	NewArticlesHandler(batchReader(), contentSvc, nil, logger).RegisterRoutes(api)

	resp := api.Get("/api/article?id=Oddity-Central-1-0")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), domain.ContentUnavailable)
	assert.Equal(t, []string{"Article content unavailable"}, logger.warns)
}

func TestArticlesHandler_GetContent(t *testing.T) {
	fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	contentSvc := &mockContent{
		pageFunc: func(ctx context.Context, pageURL string) (*domain.PageContent, error) {
			return &domain.PageContent{URL: pageURL, Content: "A long paragraph about a goat.", FetchedAt: fetched}, nil
		},
	}
	_, api := humatest.New(t)
	NewArticlesHandler(&mockReader{}, contentSvc, nil, nil).RegisterRoutes(api)

	resp := api.Get("/api/content?url=https://example.com/goat")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Content *string `json:"content"`
		URL     string  `json:"url"`
		Error   string  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotNil(t, body.Content)
	assert.Equal(t, "A long paragraph about a goat.", *body.Content)
	assert.Equal(t, "https://example.com/goat", body.URL)
	assert.Empty(t, body.Error)
}

func TestArticlesHandler_GetContent_Failure(t *testing.T) {
	contentSvc := &mockContent{
		pageFunc: func(ctx context.Context, pageURL string) (*domain.PageContent, error) {
			return nil, &coreerrors.ExternalAPIError{StatusCode: 404, API: "page", Message: "not found"}
		},
	}
	_, api := humatest.New(t)
	NewArticlesHandler(&mockReader{}, contentSvc, nil, &recordingLogger{}).RegisterRoutes(api)

	resp := api.Get("/api/content?url=https://example.com/missing")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"content":null`)
	assert.Contains(t, resp.Body.String(), `"error"`)
}

func TestArticlesHandler_GetContent_MissingURL(t *testing.T) {
	_, api := humatest.New(t)
	NewArticlesHandler(&mockReader{}, &mockContent{}, nil, nil).RegisterRoutes(api)

	resp := api.Get("/api/content")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "URL required")
}

func TestArticlesHandler_ListCategories(t *testing.T) {
	_, api := humatest.New(t)
	NewArticlesHandler(&mockReader{}, &mockContent{}, nil, nil).RegisterRoutes(api)

	resp := api.Get("/api/categories")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Categories []domain.CategoryInfo `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, domain.Categories(), body.Categories)
}
