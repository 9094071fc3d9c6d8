package rewrite

import (
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"oddly-enough-api/core/interfaces"
)

// mockProvider is a mock implementation of the Provider interface
type mockProvider struct {
	calls        int32
	completeFunc func(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.completeFunc != nil {
		return m.completeFunc(ctx, prompt, maxTokens, temperature)
	}
	return "", nil
}

func (m *mockProvider) callCount() int {
	return int(atomic.LoadInt32(&m.calls))
}

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	mu       sync.Mutex
	lastBody string
	headers  map[string]string
	postFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return nil, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (interfaces.Response, error) {
	b, _ := io.ReadAll(body)
	m.mu.Lock()
	m.lastBody = string(b)
	m.headers = headers
	m.mu.Unlock()
	return m.postFunc(ctx, url)
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int { return m.statusCode }
func (m *mockResponse) Body() io.ReadCloser { return io.NopCloser(strings.NewReader(m.body)) }
func (m *mockResponse) Header(key string) string { return "" }
