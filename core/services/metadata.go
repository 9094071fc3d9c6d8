// ABOUTME: Metadata extraction service for pulling og:image and related tags from article pages
// ABOUTME: Uses colly to scrape Open Graph, Twitter card and JSON-LD metadata, bounded by a timeout

package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly"
	"golang.org/x/sync/errgroup"

	"oddly-enough-api/core/interfaces"
)

const (
	collyUserAgent = "Mozilla/5.0 (compatible; OddlyEnough/1.0; +https://oddlyenough.app)"

	// DefaultMetadataTimeout bounds a single page visit
	DefaultMetadataTimeout = 3 * time.Second

	metadataCachePrefix = "og:"
	metadataCacheTTL    = 24 * time.Hour
	maxBatchConcurrency = 6
)

// MetadataService handles metadata extraction from URLs
type MetadataService struct {
	deps    interfaces.Dependencies
	timeout time.Duration
}

// NewMetadataService creates a new metadata service. A non-positive timeout
// selects DefaultMetadataTimeout.
func NewMetadataService(deps interfaces.Dependencies, timeout time.Duration) *MetadataService {
	if timeout <= 0 {
		timeout = DefaultMetadataTimeout
	}
	return &MetadataService{
		deps:    deps,
		timeout: timeout,
	}
}

// ExtractMetadata extracts metadata from a single URL. The visit is abandoned
// when ctx is done or the service timeout elapses.
func (s *MetadataService) ExtractMetadata(ctx context.Context, targetURL string) (*interfaces.MetadataResult, error) {
	if !isVisitable(targetURL) {
		return nil, errors.New("url is not visitable")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cacheKey := metadataCachePrefix + targetURL
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var result interfaces.MetadataResult
			if err := json.Unmarshal(data, &result); err == nil {
				return &result, nil
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan *interfaces.MetadataResult, 1)
	go func() {
		done <- s.extractFromURL(targetURL)
	}()

	var result *interfaces.MetadataResult
	select {
	case result = <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result == nil {
		return nil, errors.New("no metadata extracted")
	}

	if s.deps.Cache != nil && result.Thumbnail != "" {
		if data, err := json.Marshal(result); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, metadataCacheTTL)
		}
	}

	return result, nil
}

// ExtractMetadataBatch extracts metadata for multiple URLs concurrently. URLs
// that fail or yield nothing are absent from the result.
func (s *MetadataService) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	results := make(map[string]*interfaces.MetadataResult, len(urls))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchConcurrency)
	for _, u := range urls {
		g.Go(func() error {
			result, err := s.ExtractMetadata(gctx, u)
			if err != nil || result == nil {
				return nil
			}
			mu.Lock()
			results[u] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func isVisitable(targetURL string) bool {
	if targetURL == "" || targetURL == "about:blank" {
		return false
	}
	return strings.HasPrefix(targetURL, "http://") || strings.HasPrefix(targetURL, "https://")
}

// extractFromURL performs the actual metadata extraction
func (s *MetadataService) extractFromURL(targetURL string) *interfaces.MetadataResult {
	c := colly.NewCollector(
		colly.UserAgent(collyUserAgent),
		colly.MaxBodySize(5*1024*1024),
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(s.timeout)

	result := &interfaces.MetadataResult{
		Images: []string{},
	}
	var twitterImage, ldImage, firstImage string

	c.OnHTML("meta", func(e *colly.HTMLElement) {
		property := e.Attr("property")
		name := e.Attr("name")
		content := strings.TrimSpace(e.Attr("content"))
		if content == "" {
			return
		}

		if name == "twitter:image" && twitterImage == "" {
			twitterImage = e.Request.AbsoluteURL(content)
		}

		switch property {
		case "og:title":
			if result.Title == "" {
				result.Title = content
			}
		case "og:description":
			if result.Description == "" {
				result.Description = content
			}
		case "og:site_name":
			result.SiteName = content
		case "og:image", "og:image:url", "og:image:secure_url":
			abs := e.Request.AbsoluteURL(content)
			result.Images = append(result.Images, abs)
			if result.Thumbnail == "" {
				result.Thumbnail = abs
			}
		}

		if name == "description" && result.Description == "" {
			result.Description = content
		}
	})

	c.OnHTML("script[type='application/ld+json']", func(e *colly.HTMLElement) {
		if ldImage != "" {
			return
		}
		var ldData map[string]interface{}
		if err := json.Unmarshal([]byte(e.Text), &ldData); err != nil {
			return
		}
		switch img := ldData["image"].(type) {
		case string:
			ldImage = img
		case map[string]interface{}:
			if u, ok := img["url"].(string); ok {
				ldImage = u
			}
		case []interface{}:
			if len(img) > 0 {
				if u, ok := img[0].(string); ok {
					ldImage = u
				}
			}
		}
	})

	c.OnHTML("img", func(e *colly.HTMLElement) {
		if firstImage != "" {
			return
		}
		if src := e.Attr("src"); src != "" && isSignificantImage(e) {
			firstImage = e.Request.AbsoluteURL(src)
		}
	})

	c.OnRequest(func(r *colly.Request) {
		result.Domain = r.URL.Host
	})

	c.OnError(func(r *colly.Response, err error) {
		s.debug("Error visiting URL for metadata", map[string]interface{}{
			"url":    targetURL,
			"error":  err.Error(),
			"status": r.StatusCode,
		})
	})

	if err := c.Visit(targetURL); err != nil {
		s.debug("Failed to visit URL for metadata extraction", map[string]interface{}{
			"url":   targetURL,
			"error": err.Error(),
		})
		return result
	}

	// og:image wins, then twitter:image, then JSON-LD, then the first content image
	for _, candidate := range []string{twitterImage, ldImage, firstImage} {
		if result.Thumbnail != "" {
			break
		}
		result.Thumbnail = candidate
	}

	return result
}

func (s *MetadataService) debug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}

// isSignificantImage checks if an image is likely to be content (not logo/icon)
func isSignificantImage(e *colly.HTMLElement) bool {
	width := e.Attr("width")
	height := e.Attr("height")

	if width != "" && height != "" {
		w, _ := strconv.Atoi(width)
		h, _ := strconv.Atoi(height)
		if w < 200 || h < 200 {
			return false
		}
	}

	class := strings.ToLower(e.Attr("class"))
	id := strings.ToLower(e.Attr("id"))
	alt := strings.ToLower(e.Attr("alt"))

	skipPatterns := []string{"logo", "icon", "avatar", "profile", "user", "author", "pixel", "tracking"}
	for _, pattern := range skipPatterns {
		if strings.Contains(class, pattern) || strings.Contains(id, pattern) || strings.Contains(alt, pattern) {
			return false
		}
	}

	return true
}
