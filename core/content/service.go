// ABOUTME: Content service fetches article pages and turns them into readable text
// ABOUTME: Combines paragraph extraction, go-readability full text, rewrite and a long-lived cache

package content

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"oddly-enough-api/core/domain"
	coreerrors "oddly-enough-api/core/errors"
	"oddly-enough-api/core/extract"
	"oddly-enough-api/core/interfaces"
)

const (
	// DefaultCacheTTL is how long rewritten article content is cached
	DefaultCacheTTL = 7 * 24 * time.Hour

	// PageMinParagraphLength is the paragraph floor for the standalone content lookup
	PageMinParagraphLength = 50

	maxPageBytes = 5 << 20
)

// Article is the text attached to a single-article lookup
type Article struct {
	Content     string `json:"content"`
	FullContent string `json:"fullContent,omitempty"`
	Cached      bool   `json:"-"`
}

// Options configures the content service
type Options struct {
	// RewriteContent sends extracted article text through the rewriter
	RewriteContent bool
	CacheTTL       time.Duration
	Now            func() time.Time
}

// Service extracts page content
type Service struct {
	deps     interfaces.Dependencies
	rewriter interfaces.Rewriter
	article  *extract.Extractor
	page     *extract.Extractor
	opts     Options
}

// NewService creates a content service. rewriter may be nil.
func NewService(deps interfaces.Dependencies, rewriter interfaces.Rewriter, opts Options) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	pageOpts := extract.DefaultOptions()
	pageOpts.MinParagraphLength = PageMinParagraphLength

	return &Service{
		deps:     deps,
		rewriter: rewriter,
		article:  extract.NewExtractor(extract.DefaultOptions()),
		page:     extract.NewExtractor(pageOpts),
		opts:     opts,
	}
}

// CacheKey returns the cache key of a page's content
func CacheKey(pageURL string) string {
	return domain.ContentKeyPrefix + pageURL
}

// Page fetches pageURL and extracts its paragraphs without rewriting or caching
func (s *Service) Page(ctx context.Context, pageURL string) (*domain.PageContent, error) {
	html, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return &domain.PageContent{
		URL:       pageURL,
		Content:   s.page.Extract(html),
		FetchedAt: s.opts.Now().UTC(),
	}, nil
}

// Article returns the rewritten text of an article page, served from the
// content cache when present.
func (s *Service) Article(ctx context.Context, pageURL, title string) (*Article, error) {
	key := CacheKey(pageURL)

	if cached := s.readCache(ctx, key); cached != nil {
		cached.Cached = true
		return cached, nil
	}

	html, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	result := &Article{
		Content:     s.article.Extract(html),
		FullContent: s.fullText(html, pageURL),
	}
	if s.opts.RewriteContent && s.rewriter != nil && result.Content != domain.ContentUnavailable {
		result.Content = s.rewriter.Content(ctx, title, result.Content)
	}

	if result.Content != domain.ContentUnavailable {
		s.writeCache(ctx, key, result)
	}
	return result, nil
}

func (s *Service) fetch(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", &coreerrors.ValidationError{Field: "url", Message: "must be an absolute http(s) URL"}
	}

	resp, err := s.deps.HTTPClient.Get(ctx, pageURL)
	if err != nil {
		return "", coreerrors.WrapError(err, "failed to fetch page")
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return "", &coreerrors.ExternalAPIError{
			API:        parsed.Host,
			StatusCode: resp.StatusCode(),
			Message:    "page fetch failed",
		}
	}

	data, err := io.ReadAll(io.LimitReader(body, maxPageBytes))
	if err != nil {
		return "", coreerrors.WrapError(err, "failed to read page")
	}
	return string(data), nil
}

// fullText runs readability over the page; failures only cost the full text
func (s *Service) fullText(html, pageURL string) string {
	parsed, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil {
		s.debug("Readability parse failed", map[string]interface{}{
			"url":   pageURL,
			"error": err.Error(),
		})
		return ""
	}
	return strings.TrimSpace(article.TextContent)
}

func (s *Service) readCache(ctx context.Context, key string) *Article {
	if s.deps.Cache == nil {
		return nil
	}
	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return nil
	}
	var cached Article
	if err := json.Unmarshal(data, &cached); err != nil || cached.Content == "" {
		return nil
	}
	return &cached
}

func (s *Service) writeCache(ctx context.Context, key string, article *Article) {
	if s.deps.Cache == nil {
		return
	}
	data, err := json.Marshal(article)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, s.opts.CacheTTL); err != nil {
		s.debug("Content cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *Service) debug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}
