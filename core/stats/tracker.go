// ABOUTME: In-process engagement tracker counting article views and reactions
// ABOUTME: Counters live for the life of the process and start at zero for unknown articles

package stats

import (
	"strings"
	"sync"
	"time"

	"oddly-enough-api/core/domain"
	coreerrors "oddly-enough-api/core/errors"
)

// Tracker holds engagement counters keyed by article id
type Tracker struct {
	mu       sync.RWMutex
	counters map[string]*domain.Engagement
	now      func() time.Time
}

// NewTracker creates an empty tracker. A nil clock selects time.Now.
func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		counters: make(map[string]*domain.Engagement),
		now:      now,
	}
}

// Track applies one event and returns the updated counters
func (t *Tracker) Track(event domain.TrackEvent) (domain.Engagement, error) {
	if err := event.Validate(); err != nil {
		return domain.Engagement{}, &coreerrors.ValidationError{Field: "event", Message: err.Error()}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	counters, ok := t.counters[event.ArticleID]
	if !ok {
		fresh := domain.NewEngagement()
		counters = &fresh
		t.counters[event.ArticleID] = counters
	}

	switch event.Event {
	case domain.EventView:
		counters.Views++
	case domain.EventReaction:
		counters.Reactions[event.Reaction]++
	}
	ts := t.now().UTC()
	counters.LastUpdated = &ts

	return counters.Clone(), nil
}

// Stats returns counters for ids; unknown ids report zeros
func (t *Tracker) Stats(ids []string) map[string]domain.Engagement {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]domain.Engagement, len(ids))
	for _, id := range ids {
		if counters, ok := t.counters[id]; ok {
			out[id] = counters.Clone()
			continue
		}
		out[id] = domain.NewEngagement()
	}
	return out
}

// All returns every tracked article's counters
func (t *Tracker) All() map[string]domain.Engagement {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]domain.Engagement, len(t.counters))
	for id, counters := range t.counters {
		out[id] = counters.Clone()
	}
	return out
}

// ParseIDs splits a comma separated id list, dropping blanks
func ParseIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
