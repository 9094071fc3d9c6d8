// ABOUTME: Engagement handlers record article views and reactions
// ABOUTME: Counters live in process memory and reset on restart

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"oddly-enough-api/api/dto/requests"
	"oddly-enough-api/api/dto/responses"
	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/stats"
)

// EngagementTracker records and reports engagement counters
type EngagementTracker interface {
	Track(event domain.TrackEvent) (domain.Engagement, error)
	Stats(ids []string) map[string]domain.Engagement
	All() map[string]domain.Engagement
}

// EngagementHandler handles tracking requests
type EngagementHandler struct {
	tracker EngagementTracker
}

// NewEngagementHandler creates an engagement handler
func NewEngagementHandler(tracker EngagementTracker) *EngagementHandler {
	return &EngagementHandler{tracker: tracker}
}

// RegisterRoutes registers the engagement routes
func (h *EngagementHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "trackEvent",
		Method:      http.MethodPost,
		Path:        "/api/track",
		Summary:     "Record an article view or reaction",
		Tags:        []string{"Engagement"},
	}, h.Track)

	huma.Register(api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Get view and reaction counters",
		Tags:        []string{"Engagement"},
	}, h.Stats)
}

// TrackInput defines the body for Track
type TrackInput struct {
	Body requests.TrackRequest
}

// TrackOutput defines the output for Track
type TrackOutput struct {
	Body responses.TrackResponse
}

// Track handles POST /api/track
func (h *EngagementHandler) Track(ctx context.Context, input *TrackInput) (*TrackOutput, error) {
	engagement, err := h.tracker.Track(input.Body.ToDomain())
	if err != nil {
		return nil, toHumaError(err)
	}
	return &TrackOutput{Body: responses.TrackResponse{Success: true, Stats: engagement}}, nil
}

// StatsInput defines the query for Stats
type StatsInput struct {
	IDs string `query:"ids" doc:"Comma separated article ids; empty returns every tracked article"`
}

// StatsOutput defines the output for Stats
type StatsOutput struct {
	Body responses.StatsResponse
}

// Stats handles GET /api/stats
func (h *EngagementHandler) Stats(ctx context.Context, input *StatsInput) (*StatsOutput, error) {
	ids := stats.ParseIDs(input.IDs)
	if len(ids) == 0 {
		return &StatsOutput{Body: responses.StatsResponse{Stats: h.tracker.All()}}, nil
	}
	return &StatsOutput{Body: responses.StatsResponse{Stats: h.tracker.Stats(ids)}}, nil
}
