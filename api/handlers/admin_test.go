package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/tiers"
)

func TestAdminHandler_Refresh(t *testing.T) {
	for _, path := range []string{"/api/refresh", "/api/cron-refresh"} {
		t.Run(path, func(t *testing.T) {
			var got tiers.ReadOptions
			reader := &mockReader{
				readFunc: func(ctx context.Context, opts tiers.ReadOptions) tiers.ReadResult {
					got = opts
					return tiers.ReadResult{Articles: testBatch.Articles, Source: domain.ProvenanceFresh}
				},
			}
			_, api := humatest.New(t)
			NewAdminHandler(reader, &mockFlusher{}, "s3cret", nil).RegisterRoutes(api)

			resp := api.Get(path)
			require.Equal(t, http.StatusOK, resp.Code)
			assert.True(t, got.Refresh)

			var body struct {
				Success       bool   `json:"success"`
				ArticlesCount int    `json:"articlesCount"`
				Source        string `json:"source"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.True(t, body.Success)
			assert.Equal(t, 2, body.ArticlesCount)
			assert.Equal(t, "fresh", body.Source)
		})
	}
}

func TestAdminHandler_Refresh_Failure(t *testing.T) {
	logger := &recordingLogger{}
	reader := &mockReader{
		readFunc: func(ctx context.Context, opts tiers.ReadOptions) tiers.ReadResult {
			return tiers.ReadResult{Source: domain.ProvenanceError, Error: "all feeds failed"}
		},
	}
	_, api := humatest.New(t)
	NewAdminHandler(reader, &mockFlusher{}, "", logger).RegisterRoutes(api)

	resp := api.Get("/api/refresh")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"success":false`)
	assert.Contains(t, resp.Body.String(), "all feeds failed")
	assert.Equal(t, []string{"Scheduled refresh failed"}, logger.errors)
}

func TestAdminHandler_FlushCache(t *testing.T) {
	flusher := &mockFlusher{
		flushFunc: func(ctx context.Context) (tiers.FlushResult, error) {
			return tiers.FlushResult{BatchCleared: true, ContentKeys: 7}, nil
		},
	}
	_, api := humatest.New(t)
	NewAdminHandler(&mockReader{}, flusher, "s3cret", nil).RegisterRoutes(api)

	for _, method := range []string{http.MethodPost, http.MethodGet} {
		resp := api.Do(method, "/api/flush-cache?secret=s3cret")
		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Success             bool `json:"success"`
			ContentKeysCleared  int  `json:"contentKeysCleared"`
			ArticleCacheCleared bool `json:"articleCacheCleared"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, 7, body.ContentKeysCleared)
		assert.True(t, body.ArticleCacheCleared)
	}
	assert.Equal(t, 2, flusher.calls)
}

func TestAdminHandler_FlushCache_Forbidden(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		query  string
	}{
		{name: "wrong secret", secret: "s3cret", query: "?secret=guess"},
		{name: "missing secret", secret: "s3cret", query: ""},
		{name: "no secret configured", secret: "", query: "?secret="},
		{name: "no secret configured with guess", secret: "", query: "?secret=anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flusher := &mockFlusher{}
			_, api := humatest.New(t)
			NewAdminHandler(&mockReader{}, flusher, tt.secret, nil).RegisterRoutes(api)

			resp := api.Post("/api/flush-cache" + tt.query)
			assert.Equal(t, http.StatusForbidden, resp.Code)
			assert.Zero(t, flusher.calls)
		})
	}
}

func TestAdminHandler_FlushCache_Error(t *testing.T) {
	flusher := &mockFlusher{
		flushFunc: func(ctx context.Context) (tiers.FlushResult, error) {
			return tiers.FlushResult{}, errors.New("redis gone")
		},
	}
	_, api := humatest.New(t)
	NewAdminHandler(&mockReader{}, flusher, "s3cret", nil).RegisterRoutes(api)

	resp := api.Post("/api/flush-cache?secret=s3cret")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
