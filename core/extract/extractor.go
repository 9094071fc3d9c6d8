// ABOUTME: Content extractor locates the article body in an arbitrary HTML page
// ABOUTME: Uses an ordered container cascade with a paragraph-count sanity check, then filters boilerplate

package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"

	"oddly-enough-api/core/domain"
	htmlutil "oddly-enough-api/pkg/utils/html"
)

const (
	// DefaultMinParagraphLength drops paragraphs shorter than this many characters
	DefaultMinParagraphLength = 40

	// DefaultMaxParagraphs caps how many paragraphs are returned
	DefaultMaxParagraphs = 15

	// minRegionParagraphs is how many <p> a container needs before it is trusted
	minRegionParagraphs = 2
)

// containerCascade is tried in order; the first region with enough paragraphs wins
var containerCascade = []string{
	"article",
	"[class*=article-body]",
	"[class*=article-content]",
	"[class*=story-body]",
	"[class*=post-content]",
	"[class*=entry-content]",
	"[class*=content-body]",
	"[class*=content]",
}

// Removed before any container matching
var noiseSelector = "script, style, nav, header, footer, aside, noscript, time, figcaption, " +
	leafSelector("byline", "author", "credit", "caption")

// leafSelector matches p and span elements, and divs holding no paragraphs,
// whose class contains one of the keywords. Wrappers such as
// "article-with-author" keep their body text.
func leafSelector(keywords ...string) string {
	parts := make([]string, 0, len(keywords)*3)
	for _, k := range keywords {
		parts = append(parts,
			"p[class*="+k+"]",
			"span[class*="+k+"]",
			"div[class*="+k+"]:not(:has(p))",
		)
	}
	return strings.Join(parts, ", ")
}

// junkPhrases are matched case-insensitively against each paragraph
var junkPhrases = []string{
	"share", "cookie", "subscribe", "newsletter", "follow bbc", "follow us",
	"listen to", "watch on", "download the", "get the app", "sign up",
	"related internet", "external link", "send your story", "highlights from",
	"read more:", "see also:", "more:", "also read", "view gallery", "view images",
}

var (
	leadingComments = regexp.MustCompile(`(?i)^Comments`)
	galleryCount    = regexp.MustCompile(`(?i)View\s*\d+\s*Images?`)
	leadingPunct    = regexp.MustCompile(`^\s*[,;:.]\s*`)
)

// Options tunes the extractor per call site
type Options struct {
	// MinParagraphLength is the minimum paragraph length in characters
	MinParagraphLength int

	// MaxParagraphs caps the number of paragraphs; 0 means unbounded
	MaxParagraphs int

	// MaxWords caps cumulative words; 0 means unbounded
	MaxWords int
}

// DefaultOptions returns the paragraph-bounded defaults
func DefaultOptions() Options {
	return Options{
		MinParagraphLength: DefaultMinParagraphLength,
		MaxParagraphs:      DefaultMaxParagraphs,
	}
}

// Extractor pulls readable paragraphs out of HTML documents
type Extractor struct {
	opts Options
}

// NewExtractor creates an extractor with the given options
func NewExtractor(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

// ExtractArticleText runs the default extractor
func ExtractArticleText(html string) string {
	return NewExtractor(DefaultOptions()).Extract(html)
}

// Extract returns the article text with paragraphs separated by a blank
// line, or domain.ContentUnavailable when nothing usable is found.
func (e *Extractor) Extract(html string) string {
	paragraphs := e.Paragraphs(html)
	if len(paragraphs) == 0 {
		return domain.ContentUnavailable
	}
	return strings.Join(paragraphs, "\n\n")
}

// Paragraphs returns the surviving paragraphs in document order
func (e *Extractor) Paragraphs(html string) []string {
	if strings.TrimSpace(html) == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	removeNoise(doc)
	region := selectRegion(doc)

	var (
		out   []string
		words int
	)
	region.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := tidyParagraph(htmlutil.Normalize(s.Text()))
		if !e.keep(text) {
			return true
		}

		if e.opts.MaxWords > 0 {
			n := len(strings.Fields(text))
			if words+n > e.opts.MaxWords {
				if remaining := e.opts.MaxWords - words; remaining > 0 && len(out) == 0 {
					out = append(out, strings.Join(strings.Fields(text)[:remaining], " ")+"...")
				}
				return false
			}
			words += n
		}

		out = append(out, text)
		return e.opts.MaxParagraphs <= 0 || len(out) < e.opts.MaxParagraphs
	})

	return out
}

// tidyParagraph strips comment counters, gallery links and orphaned leading punctuation
func tidyParagraph(text string) string {
	text = leadingComments.ReplaceAllString(text, "")
	text = galleryCount.ReplaceAllString(text, "")
	text = leadingPunct.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func (e *Extractor) keep(text string) bool {
	if len([]rune(text)) < e.opts.MinParagraphLength || text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, phrase := range junkPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

func removeNoise(doc *goquery.Document) {
	doc.Find(noiseSelector).Remove()

	// Comment nodes never carry article text
	doc.Find("*").Contents().FilterFunction(func(_ int, s *goquery.Selection) bool {
		return len(s.Nodes) > 0 && s.Nodes[0].Type == xhtml.CommentNode
	}).Remove()
}

// selectRegion walks the cascade and falls back to the whole document
func selectRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range containerCascade {
		var found *goquery.Selection
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if s.Find("p").Length() >= minRegionParagraphs {
				found = s
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return doc.Selection
}
