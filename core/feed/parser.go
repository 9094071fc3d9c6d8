// ABOUTME: Feed parser extracts items from raw RSS/Atom text with structural pattern matching
// ABOUTME: Tolerates malformed markup; JSON Feed documents are handed to gofeed

package feed

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"oddly-enough-api/core/domain"
	htmlutil "oddly-enough-api/pkg/utils/html"
	timeutil "oddly-enough-api/pkg/utils/time"
)

// MaxItemsPerFeed is the hard cap of item/entry blocks examined per document
const MaxItemsPerFeed = 15

var (
	itemBlockPattern  = regexp.MustCompile(`(?is)<item(?:\s[^>]*)?>.*?</item>`)
	entryBlockPattern = regexp.MustCompile(`(?is)<entry(?:\s[^>]*)?>.*?</entry>`)
	cdataPattern      = regexp.MustCompile(`(?s)^\s*<!\[CDATA\[(.*?)\]\]>\s*$`)
	linkTagPattern    = regexp.MustCompile(`(?is)<link(?:\s[^>]*)?/?>`)
	attrPattern       = regexp.MustCompile(`(?is)([a-z_:][-a-z0-9_:.]*)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	aggregatorAnchor  = regexp.MustCompile(`(?is)<a\s[^>]*href\s*=\s*"([^"]+)"[^>]*>\s*\[link\]\s*</a>`)

	// Hosted media on aggregator domains is never an article
	aggregatorMediaPattern = regexp.MustCompile(`(?i)^https?://(i\.redd\.it|v\.redd\.it|preview\.redd\.it|old\.reddit\.com|www\.reddit\.com)`)

	tagPatterns = map[string]*regexp.Regexp{}
)

func init() {
	for _, name := range []string{"title", "description", "summary", "content", "link", "pubDate", "published", "updated", "dc:date"} {
		tagPatterns[name] = regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(name) + `(?:\s[^>]*)?>(.*?)</` + regexp.QuoteMeta(name) + `>`)
	}
}

// Parser turns raw feed documents into RawFeedItems
type Parser struct {
	now func() time.Time
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithClock overrides the clock used when a publish date cannot be parsed
func WithClock(now func() time.Time) ParserOption {
	return func(p *Parser) {
		p.now = now
	}
}

// NewParser creates a new feed parser
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFeed extracts up to MaxItemsPerFeed items from raw. Items without a
// title or link are dropped; it never fails.
func (p *Parser) ParseFeed(raw string, src domain.FeedSource) []domain.RawFeedItem {
	if strings.TrimSpace(raw) == "" {
		return []domain.RawFeedItem{}
	}

	if isJSONFeed(raw) {
		return p.parseJSONFeed(raw, src)
	}

	blocks := itemBlockPattern.FindAllString(raw, MaxItemsPerFeed)
	if len(blocks) == 0 {
		blocks = entryBlockPattern.FindAllString(raw, MaxItemsPerFeed)
	}

	items := make([]domain.RawFeedItem, 0, len(blocks))
	for _, block := range blocks {
		item, ok := p.parseBlock(block, src)
		if ok {
			items = append(items, item)
		}
	}
	return items
}

func (p *Parser) parseBlock(block string, src domain.FeedSource) (domain.RawFeedItem, bool) {
	title := tagText(block, "title")
	content := tagText(block, "content")
	description := firstNonEmpty(tagText(block, "description"), tagText(block, "summary"), content)

	link := strings.TrimSpace(tagText(block, "link"))
	if len(link) < 5 {
		link = atomLink(block)
	}

	if src.PointsToAggregator(link) {
		body := content
		if body == "" {
			body = description
		}
		if real := aggregatorArticleLink(body, src); real != "" {
			link = real
		}
	}

	link = cleanLink(link)
	if title == "" || link == "" {
		return domain.RawFeedItem{}, false
	}

	if src.IsAggregator() && aggregatorMediaPattern.MatchString(link) {
		return domain.RawFeedItem{}, false
	}

	published := firstNonEmpty(tagText(block, "pubDate"), tagText(block, "published"), tagText(block, "updated"), tagText(block, "dc:date"))

	return domain.RawFeedItem{
		Title:       htmlutil.Normalize(title),
		Description: htmlutil.Normalize(description),
		Link:        link,
		Published:   timeutil.ParseWithDefault(published, p.now().UTC()),
		Thumbnail:   htmlutil.DecodeEntities(thumbnail(block)),
	}, true
}

// tagText returns the inner text of the first <name> element, CDATA unwrapped
func tagText(block, name string) string {
	pattern, ok := tagPatterns[name]
	if !ok {
		return ""
	}
	m := pattern.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return unwrapCDATA(m[1])
}

func unwrapCDATA(s string) string {
	if m := cdataPattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(s)
}

// attributes parses the attributes of a single start tag
func attributes(tag string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(tag, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		attrs[strings.ToLower(m[1])] = value
	}
	return attrs
}

// atomLink picks the first <link href> without a rel attribute. A
// rel="alternate" link is accepted only when no bare link exists; rel="self"
// is never used.
func atomLink(block string) string {
	var alternate string
	for _, tag := range linkTagPattern.FindAllString(block, -1) {
		attrs := attributes(tag)
		href := strings.TrimSpace(attrs["href"])
		if href == "" {
			continue
		}
		rel, hasRel := attrs["rel"]
		if !hasRel {
			return htmlutil.DecodeEntities(href)
		}
		if alternate == "" && strings.EqualFold(strings.TrimSpace(rel), "alternate") {
			alternate = htmlutil.DecodeEntities(href)
		}
	}
	return alternate
}

// aggregatorArticleLink finds the external article behind an aggregator
// discussion item by its "[link]" anchor
func aggregatorArticleLink(body string, src domain.FeedSource) string {
	if body == "" {
		return ""
	}
	decoded := htmlutil.DecodeEntities(body)
	m := aggregatorAnchor.FindStringSubmatch(decoded)
	if m == nil {
		return ""
	}
	href := strings.TrimSpace(m[1])
	if src.PointsToAggregator(href) {
		return ""
	}
	return href
}

// thumbnail looks at media:thumbnail, image media:content, then image enclosures
func thumbnail(block string) string {
	for _, tag := range startTags(block, "media:thumbnail") {
		if u := attributes(tag)["url"]; u != "" {
			return u
		}
	}
	for _, tag := range startTags(block, "media:content") {
		attrs := attributes(tag)
		if attrs["url"] != "" && (attrs["medium"] == "image" || strings.HasPrefix(attrs["type"], "image/")) {
			return attrs["url"]
		}
	}
	for _, tag := range startTags(block, "enclosure") {
		attrs := attributes(tag)
		if attrs["url"] != "" && strings.HasPrefix(attrs["type"], "image/") {
			return attrs["url"]
		}
	}
	return ""
}

var startTagPatterns = map[string]*regexp.Regexp{
	"media:thumbnail": regexp.MustCompile(`(?is)<media:thumbnail(?:\s[^>]*)?/?>`),
	"media:content":   regexp.MustCompile(`(?is)<media:content(?:\s[^>]*)?/?>`),
	"enclosure":       regexp.MustCompile(`(?is)<enclosure(?:\s[^>]*)?/?>`),
}

func startTags(block, name string) []string {
	return startTagPatterns[name].FindAllString(block, -1)
}

// cleanLink drops tracking tails and surrounding whitespace
func cleanLink(link string) string {
	link = htmlutil.DecodeEntities(strings.TrimSpace(link))
	if i := strings.Index(link, "?at_medium="); i >= 0 {
		link = link[:i]
	}
	return strings.TrimSpace(link)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func isJSONFeed(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}
	return gofeed.DetectFeedType(strings.NewReader(trimmed)) == gofeed.FeedTypeJSON
}

func (p *Parser) parseJSONFeed(raw string, src domain.FeedSource) []domain.RawFeedItem {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader([]byte(raw)))
	if err != nil || parsed == nil {
		return []domain.RawFeedItem{}
	}

	items := make([]domain.RawFeedItem, 0, MaxItemsPerFeed)
	for i, it := range parsed.Items {
		if i >= MaxItemsPerFeed {
			break
		}
		if it == nil {
			continue
		}
		link := cleanLink(it.Link)
		if it.Title == "" || link == "" {
			continue
		}
		if src.IsAggregator() && aggregatorMediaPattern.MatchString(link) {
			continue
		}

		published := p.now().UTC()
		if it.PublishedParsed != nil {
			published = it.PublishedParsed.UTC()
		} else if it.UpdatedParsed != nil {
			published = it.UpdatedParsed.UTC()
		}

		var thumb string
		if it.Image != nil {
			thumb = it.Image.URL
		}

		items = append(items, domain.RawFeedItem{
			Title:       htmlutil.Normalize(it.Title),
			Description: htmlutil.Normalize(firstNonEmpty(it.Description, it.Content)),
			Link:        link,
			Published:   published,
			Thumbnail:   thumb,
		})
	}
	return items
}
