// ABOUTME: FeedSource domain model describes one configured upstream RSS/Atom endpoint
// ABOUTME: Provides validation so misconfigured sources are rejected at startup

package domain

import (
	"errors"
	"net/url"
	"strings"
)

// FeedSource is static configuration for a single upstream feed
type FeedSource struct {
	// URL is the feed endpoint
	URL string `yaml:"url" json:"url"`

	// Category is the default category for items from this source
	Category Category `yaml:"category" json:"category"`

	// Label is the human readable source name shown on articles
	Label string `yaml:"source" json:"source"`

	// AlwaysOdd skips the odd-news heuristic filter for pre-curated sources
	AlwaysOdd bool `yaml:"always_odd" json:"alwaysOdd"`

	// DefaultImage is used when an item carries no thumbnail
	DefaultImage string `yaml:"default_image,omitempty" json:"defaultImage,omitempty"`

	// AggregatorDomain marks link-aggregator feeds (e.g. "reddit.com"), whose
	// items point at external articles
	AggregatorDomain string `yaml:"aggregator_domain,omitempty" json:"aggregatorDomain,omitempty"`
}

// IsAggregator reports whether items of this source are discussion links
func (s FeedSource) IsAggregator() bool {
	return s.AggregatorDomain != ""
}

// PointsToAggregator reports whether link lives on the aggregator's own domain
func (s FeedSource) PointsToAggregator(link string) bool {
	if !s.IsAggregator() {
		return false
	}
	return strings.Contains(strings.ToLower(link), strings.ToLower(s.AggregatorDomain))
}

// Validate checks if the source has valid required fields
func (s FeedSource) Validate() error {
	if s.URL == "" {
		return errors.New("feed source URL cannot be empty")
	}

	parsed, err := url.Parse(s.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("feed source URL is not valid format")
	}

	if s.Label == "" {
		return errors.New("feed source label cannot be empty")
	}

	if !s.Category.IsValid() {
		return errors.New("feed source category is not a known category")
	}

	return nil
}
