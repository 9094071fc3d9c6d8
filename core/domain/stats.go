// ABOUTME: Engagement domain model counts views and emoji reactions per article
// ABOUTME: Provides validation for incoming tracking events

package domain

import (
	"errors"
	"time"
)

// Reaction is one of the supported emoji reactions
type Reaction string

const (
	ReactionMindBlown Reaction = "🤯"
	ReactionLaugh     Reaction = "😂"
	ReactionGross     Reaction = "🤮"
)

// TrackEventType distinguishes views from reactions
type TrackEventType string

const (
	EventView     TrackEventType = "view"
	EventReaction TrackEventType = "reaction"
)

// TrackEvent is a single engagement signal from a client
type TrackEvent struct {
	ArticleID string         `json:"articleId"`
	Event     TrackEventType `json:"event"`
	Reaction  Reaction       `json:"reaction,omitempty"`
}

// Validate checks the event has a known type and, for reactions, a known emoji
func (e TrackEvent) Validate() error {
	if e.ArticleID == "" {
		return errors.New("articleId cannot be empty")
	}
	switch e.Event {
	case EventView:
		return nil
	case EventReaction:
		if !e.Reaction.IsValid() {
			return errors.New("reaction must be one of 🤯 😂 🤮")
		}
		return nil
	default:
		return errors.New("event must be view or reaction")
	}
}

// IsValid reports whether r is a supported reaction
func (r Reaction) IsValid() bool {
	return r == ReactionMindBlown || r == ReactionLaugh || r == ReactionGross
}

// Engagement is the aggregate counters for one article
type Engagement struct {
	Views       int              `json:"views"`
	Reactions   map[Reaction]int `json:"reactions"`
	LastUpdated *time.Time       `json:"lastUpdated,omitempty"`
}

// NewEngagement returns zeroed counters with every reaction present
func NewEngagement() Engagement {
	return Engagement{
		Reactions: map[Reaction]int{
			ReactionMindBlown: 0,
			ReactionLaugh:     0,
			ReactionGross:     0,
		},
	}
}

// Clone returns a deep copy safe to hand out of a lock
func (e Engagement) Clone() Engagement {
	out := Engagement{Views: e.Views, Reactions: make(map[Reaction]int, len(e.Reactions))}
	for k, v := range e.Reactions {
		out.Reactions[k] = v
	}
	if e.LastUpdated != nil {
		ts := *e.LastUpdated
		out.LastUpdated = &ts
	}
	return out
}
