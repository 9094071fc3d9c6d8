// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for collaborators used by the ingestion and read paths

package interfaces

import (
	"context"
)

// MetadataResult contains extracted metadata from a webpage
type MetadataResult struct {
	Title       string
	Description string
	Thumbnail   string // Primary image URL
	Images      []string
	SiteName    string
	Domain      string
}

// MetadataService extracts metadata from web pages
type MetadataService interface {
	ExtractMetadata(ctx context.Context, url string) (*MetadataResult, error)
	ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*MetadataResult
}

// Rewriter is the external text-transform collaborator. Both methods return
// the input unchanged when the rewrite is unavailable, slow or invalid.
type Rewriter interface {
	// Summary rewrites a summary into a short one-liner
	Summary(ctx context.Context, title, summary string) string

	// Content rewrites extracted article text
	Content(ctx context.Context, title, content string) string
}
