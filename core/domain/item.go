// ABOUTME: RawFeedItem domain model represents one item/entry pulled out of a feed document
// ABOUTME: Items are ephemeral: produced by the feed parser and consumed by the ingestion pipeline

package domain

import "time"

// RawFeedItem is a single item/entry extracted from an RSS, Atom or JSON feed
type RawFeedItem struct {
	// Title is the cleaned item headline
	Title string

	// Description is the cleaned description/summary/content text
	Description string

	// Link is the canonical article URL
	Link string

	// Published is the best-effort publish time, ingestion time when unparseable
	Published time.Time

	// Thumbnail is an optional feed supplied image URL
	Thumbnail string
}

// IsValid checks if the item has the fields the pipeline requires
func (fi *RawFeedItem) IsValid() bool {
	return fi.Title != "" && fi.Link != ""
}
