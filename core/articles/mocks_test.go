package articles

import (
	"context"
	"io"
	"strings"
	"sync"

	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/interfaces"
)

// mockHTTPClient serves canned bodies keyed by URL
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return &mockResponse{statusCode: 404}, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (interfaces.Response, error) {
	return &mockResponse{statusCode: 405}, nil
}

type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int          { return m.statusCode }
func (m *mockResponse) Body() io.ReadCloser      { return io.NopCloser(strings.NewReader(m.body)) }
func (m *mockResponse) Header(key string) string { return "" }

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

// mockRewriter delegates to summaryFunc when set
type mockRewriter struct {
	summaryFunc func(ctx context.Context, title, summary string) string
}

func (m *mockRewriter) Summary(ctx context.Context, title, summary string) string {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, title, summary)
	}
	return summary
}

func (m *mockRewriter) Content(ctx context.Context, title, content string) string {
	return content
}

// mockStore records upserts and serves Recent from a fixed list
type mockStore struct {
	mu        sync.Mutex
	upserted  []domain.Article
	recent    []domain.Article
	recentErr error
	upsertErr error
}

func (m *mockStore) Recent(ctx context.Context, limit int) ([]domain.Article, error) {
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	if len(m.recent) > limit {
		return m.recent[:limit], nil
	}
	return m.recent, nil
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	return nil, nil
}

func (m *mockStore) FindByURL(ctx context.Context, url string) (*domain.Article, error) {
	return nil, nil
}

func (m *mockStore) Upsert(ctx context.Context, articles []domain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserted = append(m.upserted, articles...)
	return m.upsertErr
}

func (m *mockStore) Close() error { return nil }

// mockMetadataService returns a fixed thumbnail per page URL
type mockMetadataService struct {
	thumbnails map[string]string
}

func (m *mockMetadataService) ExtractMetadata(ctx context.Context, url string) (*interfaces.MetadataResult, error) {
	return &interfaces.MetadataResult{Thumbnail: m.thumbnails[url]}, nil
}

func (m *mockMetadataService) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	out := make(map[string]*interfaces.MetadataResult, len(urls))
	for _, u := range urls {
		out[u], _ = m.ExtractMetadata(ctx, u)
	}
	return out
}
