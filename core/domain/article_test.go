package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBatch_Filter(t *testing.T) {
	batch := &Batch{
		Articles: []Article{
			{ID: "a", Category: CategoryAnimals},
			{ID: "b", Category: CategoryFails},
			{ID: "c", Category: CategoryAnimals},
		},
		CapturedAt: time.Now(),
	}

	assert.Len(t, batch.Filter(""), 3)
	assert.Len(t, batch.Filter(CategoryAll), 3)

	animals := batch.Filter(CategoryAnimals)
	assert.Len(t, animals, 2)
	assert.Equal(t, "a", animals[0].ID)
	assert.Equal(t, "c", animals[1].ID)

	assert.Empty(t, batch.Filter(CategoryMystery))
}

func TestBatch_NilSafe(t *testing.T) {
	var batch *Batch
	assert.True(t, batch.IsEmpty())
	assert.NotNil(t, batch.Filter(CategoryAll))
	_, ok := batch.FindByID("x")
	assert.False(t, ok)
}

func TestBatch_Find(t *testing.T) {
	batch := &Batch{Articles: []Article{{ID: "a", URL: "https://example.com/a"}}}

	got, ok := batch.FindByURL("https://example.com/a")
	assert.True(t, ok)
	assert.Equal(t, "a", got.ID)

	_, ok = batch.FindByID("missing")
	assert.False(t, ok)
}

func TestCategory_IsValid(t *testing.T) {
	assert.True(t, CategoryBritish.IsValid())
	assert.True(t, CategoryAll.IsValid())
	assert.False(t, Category("politics").IsValid())
}

func TestTrackEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		event   TrackEvent
		wantErr bool
	}{
		{"view", TrackEvent{ArticleID: "a", Event: EventView}, false},
		{"reaction", TrackEvent{ArticleID: "a", Event: EventReaction, Reaction: ReactionLaugh}, false},
		{"unknown reaction", TrackEvent{ArticleID: "a", Event: EventReaction, Reaction: "👍"}, true},
		{"missing id", TrackEvent{Event: EventView}, true},
		{"unknown event", TrackEvent{ArticleID: "a", Event: "click"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFeedSource_Validate(t *testing.T) {
	valid := FeedSource{URL: "https://www.upi.com/rss/Odd_News/", Label: "UPI", Category: CategoryViral}
	assert.NoError(t, valid.Validate())

	assert.Error(t, FeedSource{Label: "x", Category: CategoryViral}.Validate())
	assert.Error(t, FeedSource{URL: "not a url", Label: "x", Category: CategoryViral}.Validate())
	assert.Error(t, FeedSource{URL: "https://a.com", Category: CategoryViral}.Validate())
	assert.Error(t, FeedSource{URL: "https://a.com", Label: "x", Category: "nope"}.Validate())
}

func TestFeedSource_PointsToAggregator(t *testing.T) {
	src := FeedSource{AggregatorDomain: "reddit.com"}
	assert.True(t, src.PointsToAggregator("https://www.reddit.com/r/nottheonion/comments/1"))
	assert.False(t, src.PointsToAggregator("https://bbc.co.uk/news/1"))
	assert.False(t, FeedSource{}.PointsToAggregator("https://www.reddit.com/r/x"))
}
