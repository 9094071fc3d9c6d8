// ABOUTME: Administrative handlers for forced refreshes and cache flushing
// ABOUTME: The flush endpoint is gated by a shared secret compared in constant time

package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"oddly-enough-api/api/dto/mappers"
	"oddly-enough-api/api/dto/responses"
	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/interfaces"
	"oddly-enough-api/core/tiers"
)

// CacheFlusher clears cached batches and page content
type CacheFlusher interface {
	Flush(ctx context.Context) (tiers.FlushResult, error)
}

// AdminHandler handles refresh and flush requests
type AdminHandler struct {
	reader  ArticleReader
	flusher CacheFlusher
	secret  string
	logger  interfaces.Logger
	now     func() time.Time
}

// NewAdminHandler creates an admin handler. An empty secret disables flushing.
func NewAdminHandler(reader ArticleReader, flusher CacheFlusher, secret string, logger interfaces.Logger) *AdminHandler {
	return &AdminHandler{
		reader:  reader,
		flusher: flusher,
		secret:  secret,
		logger:  logger,
		now:     time.Now,
	}
}

// RegisterRoutes registers the administrative routes
func (h *AdminHandler) RegisterRoutes(api huma.API) {
	for _, op := range []struct{ id, path string }{
		{"refreshArticles", "/api/refresh"},
		{"cronRefreshArticles", "/api/cron-refresh"},
	} {
		huma.Register(api, huma.Operation{
			OperationID: op.id,
			Method:      http.MethodGet,
			Path:        op.path,
			Summary:     "Run an ingestion and repopulate the caches",
			Tags:        []string{"Admin"},
		}, h.Refresh)
	}

	for _, method := range []string{http.MethodPost, http.MethodGet} {
		huma.Register(api, huma.Operation{
			OperationID: "flushCache" + method,
			Method:      method,
			Path:        "/api/flush-cache",
			Summary:     "Clear the article batch and every cached page content",
			Tags:        []string{"Admin"},
		}, h.FlushCache)
	}
}

// RefreshOutput defines the output for Refresh
type RefreshOutput struct {
	Body responses.RefreshResponse
}

// Refresh handles the cron refresh endpoints by invoking the forced read path
func (h *AdminHandler) Refresh(ctx context.Context, _ *struct{}) (*RefreshOutput, error) {
	result := h.reader.Read(ctx, tiers.ReadOptions{Refresh: true})

	if result.Source == domain.ProvenanceError && h.logger != nil {
		h.logger.Error("Scheduled refresh failed", map[string]interface{}{
			"error": result.Error,
		})
	}

	return &RefreshOutput{Body: mappers.ToRefreshResponse(result, h.now())}, nil
}

// FlushCacheInput carries the shared secret
type FlushCacheInput struct {
	Secret string `query:"secret" doc:"Shared flush secret"`
}

// FlushCacheOutput defines the output for FlushCache
type FlushCacheOutput struct {
	Body responses.FlushResponse
}

// FlushCache handles /api/flush-cache
func (h *AdminHandler) FlushCache(ctx context.Context, input *FlushCacheInput) (*FlushCacheOutput, error) {
	if !h.authorized(input.Secret) {
		return nil, huma.Error403Forbidden("Forbidden")
	}

	result, err := h.flusher.Flush(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &FlushCacheOutput{Body: responses.FlushResponse{
		Success:             true,
		ContentKeysCleared:  result.ContentKeys,
		ArticleCacheCleared: result.BatchCleared,
	}}, nil
}

func (h *AdminHandler) authorized(given string) bool {
	if h.secret == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(h.secret)) == 1
}
