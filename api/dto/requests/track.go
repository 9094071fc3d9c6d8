// ABOUTME: Request DTOs for engagement tracking
// ABOUTME: Schema validation is kept loose so domain validation decides 400s

package requests

import "oddly-enough-api/core/domain"

// TrackRequest is the body of POST /api/track
type TrackRequest struct {
	ArticleID string `json:"articleId,omitempty" maxLength:"512" doc:"Article identifier"`
	Event     string `json:"event,omitempty" doc:"view or reaction"`
	Reaction  string `json:"reaction,omitempty" doc:"One of 🤯 😂 🤮 when event is reaction"`
}

// ToDomain converts the request to a tracking event
func (r TrackRequest) ToDomain() domain.TrackEvent {
	return domain.TrackEvent{
		ArticleID: r.ArticleID,
		Event:     domain.TrackEventType(r.Event),
		Reaction:  domain.Reaction(r.Reaction),
	}
}
