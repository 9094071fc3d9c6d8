package images

import (
	"context"
	"sync"

	"oddly-enough-api/core/interfaces"
)

// mockMetadataService is a mock implementation of the MetadataService interface
type mockMetadataService struct {
	mu          sync.Mutex
	calls       []string
	batches     [][]string
	extractFunc func(ctx context.Context, url string) (*interfaces.MetadataResult, error)
}

func (m *mockMetadataService) ExtractMetadata(ctx context.Context, url string) (*interfaces.MetadataResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()
	if m.extractFunc != nil {
		return m.extractFunc(ctx, url)
	}
	return &interfaces.MetadataResult{}, nil
}

func (m *mockMetadataService) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	m.mu.Lock()
	m.batches = append(m.batches, append([]string(nil), urls...))
	m.mu.Unlock()
	out := make(map[string]*interfaces.MetadataResult)
	for _, u := range urls {
		if r, err := m.ExtractMetadata(ctx, u); err == nil {
			out[u] = r
		}
	}
	return out
}

func (m *mockMetadataService) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
