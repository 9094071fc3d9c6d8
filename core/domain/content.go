// ABOUTME: Domain types for extracted page content
// ABOUTME: Shared by the content endpoint and the single-article lookup

package domain

import "time"

// ContentUnavailable is returned by the extractor when no usable text is found
const ContentUnavailable = "Content not available."

// ContentKeyPrefix prefixes cached page content keys; the URL follows it
const ContentKeyPrefix = "content:"

// PageContent is the extraction result for one URL
type PageContent struct {
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetchedAt"`
	Cached    bool      `json:"-"`
}
