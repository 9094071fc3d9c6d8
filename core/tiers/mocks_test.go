package tiers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"oddly-enough-api/core/domain"
)

// mockOrigin counts ingestions and delegates to ingestFunc
type mockOrigin struct {
	mu         sync.Mutex
	calls      int
	ingestFunc func(ctx context.Context) (*domain.Batch, error)
}

func (m *mockOrigin) Ingest(ctx context.Context) (*domain.Batch, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.ingestFunc(ctx)
}

func (m *mockOrigin) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var errMiss = errors.New("key not found")

// mapCache is an in-memory Cache and PrefixDeleter
type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	setErr  error
	getErr  error
	setKeys []string
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (m *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, errMiss
	}
	return v, nil
}

func (m *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setKeys = append(m.setKeys, key)
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mapCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mapCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
			n++
		}
	}
	return n, nil
}

func (m *mapCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// syncWriter writes straight through so tests can observe the distributed tier
type syncWriter struct {
	cache *mapCache
}

func (w *syncWriter) Write(key string, value []byte, ttl time.Duration) {
	_ = w.cache.Set(context.Background(), key, value, ttl)
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

// fakeClock is a settable clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
