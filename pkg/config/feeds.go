// ABOUTME: Feed source list loading from YAML files with an embedded default set
// ABOUTME: Sources are validated at load time so a bad entry fails startup, not ingestion

package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"oddly-enough-api/core/domain"
)

//go:embed default_feeds.yaml
var defaultFeedsYAML []byte

type feedFile struct {
	Feeds []domain.FeedSource `yaml:"feeds"`
}

// DefaultFeeds returns the embedded feed source list
func DefaultFeeds() ([]domain.FeedSource, error) {
	return ParseFeeds(defaultFeedsYAML)
}

// LoadFeeds reads sources from path, or the embedded defaults when path is empty
func LoadFeeds(path string) ([]domain.FeedSource, error) {
	if path == "" {
		return DefaultFeeds()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}
	return ParseFeeds(data)
}

// ParseFeeds decodes and validates a YAML feed list
func ParseFeeds(data []byte) ([]domain.FeedSource, error) {
	var file feedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse feeds: %w", err)
	}
	if len(file.Feeds) == 0 {
		return nil, fmt.Errorf("no feeds configured")
	}

	seen := make(map[string]struct{}, len(file.Feeds))
	for i, src := range file.Feeds {
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("feed %d (%s): %w", i, src.URL, err)
		}
		if _, dup := seen[src.URL]; dup {
			return nil, fmt.Errorf("feed %d: duplicate url %s", i, src.URL)
		}
		seen[src.URL] = struct{}{}
	}
	return file.Feeds, nil
}
