// ABOUTME: Article domain model is the externally visible unit served by the read API
// ABOUTME: Batch wraps a full ingestion result with its capture time for the cache tiers

package domain

import (
	"strings"
	"time"
)

// Article is a cleaned, classified and image-resolved news item
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Source      string    `json:"source"`
	Category    Category  `json:"category"`
	PublishedAt time.Time `json:"publishedAt"`

	// WeirdnessScore is only present when supplied by an upstream store
	WeirdnessScore *float64 `json:"weirdnessScore,omitempty"`
}

// HasImage reports whether the article carries a resolved image
func (a Article) HasImage() bool {
	return strings.TrimSpace(a.ImageURL) != ""
}

// ArticleWithContent is a single article lookup result with page text attached
type ArticleWithContent struct {
	Article
	Content     string `json:"content,omitempty"`
	FullContent string `json:"fullContent,omitempty"`
}

// Batch is one complete ingestion result, superseded wholesale by the next one
type Batch struct {
	Articles   []Article `json:"articles"`
	CapturedAt time.Time `json:"capturedAt"`
}

// IsEmpty reports whether the batch holds no articles
func (b *Batch) IsEmpty() bool {
	return b == nil || len(b.Articles) == 0
}

// Filter returns the articles matching the category filter, preserving order
func (b *Batch) Filter(category Category) []Article {
	if b == nil {
		return []Article{}
	}
	out := make([]Article, 0, len(b.Articles))
	for _, a := range b.Articles {
		if a.Category.MatchesFilter(category) {
			out = append(out, a)
		}
	}
	return out
}

// FindByID looks up an article in the batch by id
func (b *Batch) FindByID(id string) (Article, bool) {
	if b == nil {
		return Article{}, false
	}
	for _, a := range b.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}

// FindByURL looks up an article in the batch by its source URL
func (b *Batch) FindByURL(u string) (Article, bool) {
	if b == nil {
		return Article{}, false
	}
	for _, a := range b.Articles {
		if a.URL == u {
			return a, true
		}
	}
	return Article{}, false
}

// Provenance tags which tier served a read
type Provenance string

const (
	ProvenanceMemory      Provenance = "memory"
	ProvenanceDistributed Provenance = "distributed"
	ProvenanceFallback    Provenance = "fallback"
	ProvenanceFresh       Provenance = "fresh"
	ProvenanceError       Provenance = "error"
)

// IsCached reports whether the provenance is one of the cache tiers
func (p Provenance) IsCached() bool {
	return p == ProvenanceMemory || p == ProvenanceDistributed
}
