// ABOUTME: Process-memory tier holding the most recent article batch
// ABOUTME: Entries expire by age against an injected clock

package tiers

import (
	"sync"
	"time"

	"oddly-enough-api/core/domain"
)

// DefaultMemoryTTL is how long a batch is served from process memory
const DefaultMemoryTTL = 30 * time.Minute

// MemoryTier is the short-lived in-process tier. It is safe for concurrent use.
type MemoryTier struct {
	mu       sync.RWMutex
	batch    *domain.Batch
	storedAt time.Time
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryTier creates a memory tier. A nil clock selects time.Now.
func NewMemoryTier(ttl time.Duration, now func() time.Time) *MemoryTier {
	if ttl <= 0 {
		ttl = DefaultMemoryTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryTier{ttl: ttl, now: now}
}

// Get returns the held batch while it is younger than the TTL
func (m *MemoryTier) Get() (*domain.Batch, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.batch == nil || m.now().Sub(m.storedAt) >= m.ttl {
		return nil, false
	}
	return m.batch, true
}

// Set replaces the held batch and restarts its age
func (m *MemoryTier) Set(batch *domain.Batch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.batch = batch
	m.storedAt = m.now()
}

// Clear drops the held batch
func (m *MemoryTier) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.batch = nil
	m.storedAt = time.Time{}
}
