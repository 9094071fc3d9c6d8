// ABOUTME: Summary and title cleanup applied to feed items before classification
// ABOUTME: Removes photo credits, timestamps, read-more tails and aggregator boilerplate

package articles

import (
	"fmt"
	"regexp"
	"strings"

	"oddly-enough-api/core/domain"
	htmlutil "oddly-enough-api/pkg/utils/html"
)

const (
	// SummaryLimit caps cleaned summaries before the ellipsis
	SummaryLimit = 200

	// minAggregatorSummary is the shortest aggregator summary kept as-is
	minAggregatorSummary = 20
)

var summaryCruft = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(Image|Photo|Video|Picture)\s*:`),
	regexp.MustCompile(`(?i)\(Image:\s*[^)]+\)`),
	regexp.MustCompile(`(?i)\(Photo:\s*[^)]+\)`),
	regexp.MustCompile(`(?i)Credit:\s*\S+`),
	regexp.MustCompile(`(?i)Getty Images?`),
	regexp.MustCompile(`(?i)PA Media`),
	regexp.MustCompile(`(?i)Reuters`),
	regexp.MustCompile(`(?i)Read more:.*$`),
	regexp.MustCompile(`(?i)Click here.*$`),
	regexp.MustCompile(`(?i)Continue reading.*$`),
	regexp.MustCompile(`\[.*?\]`),
	regexp.MustCompile(`(?i)Updated\s+\d+[:\d]*\s*(am|pm)?`),
	regexp.MustCompile(`(?i)Published\s+\d+[:\d]*\s*(am|pm)?`),
	regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(am|pm)`),
}

var (
	leadingDash       = regexp.MustCompile(`^\s*[-\x{2013}\x{2014}]\s*`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
	aggregatorByline  = regexp.MustCompile(`(?i)submitted by\s+/u/\w+`)
	aggregatorMarkers = regexp.MustCompile(`(?i)\[(link|comments)\]`)

	titleSourceSuffix = regexp.MustCompile(`(?i)\s*[-\x{2013}|]\s*(BBC News?|Mirror|Daily Star|UPI|The Register|Sky News|Independent|NDTV).*$`)
	titlePipeSuffix   = regexp.MustCompile(`\s*\|\s*.*$`)
	titleProperSuffix = regexp.MustCompile(`\s*[-\x{2013}]\s*[A-Z][a-z]+(\s+[A-Z][a-z]+)*\s*$`)

	whitespaceClass = regexp.MustCompile(`\s`)
)

// Fallback blurbs for aggregator communities whose posts carry no text
var aggregatorBlurbs = map[string]string{
	"nottheonion": "A real headline that sounds like satire. Tap to read more...",
	"offbeat":     "An unusual story from around the web. Tap to read the full article...",
	"floridaman":  "Another wild Florida Man story. Tap to read the full article...",
}

// CleanSummary strips cruft from a feed description and caps its length.
// Aggregator sources lose their boilerplate and get a stock blurb when
// nothing meaningful remains.
func CleanSummary(description string, src domain.FeedSource) string {
	summary := htmlutil.Normalize(description)
	for _, re := range summaryCruft {
		summary = re.ReplaceAllString(summary, "")
	}
	summary = leadingDash.ReplaceAllString(summary, "")
	summary = strings.TrimSpace(whitespaceRun.ReplaceAllString(summary, " "))

	if src.IsAggregator() {
		summary = aggregatorByline.ReplaceAllString(summary, "")
		summary = aggregatorMarkers.ReplaceAllString(summary, "")
		summary = strings.TrimSpace(whitespaceRun.ReplaceAllString(summary, " "))
		if len([]rune(summary)) < minAggregatorSummary {
			summary = aggregatorBlurb(src.Label)
		}
	}

	return htmlutil.Truncate(summary, SummaryLimit)
}

func aggregatorBlurb(label string) string {
	community := strings.TrimPrefix(label, "r/")
	if blurb, ok := aggregatorBlurbs[strings.ToLower(community)]; ok {
		return blurb
	}
	return fmt.Sprintf("From %s. Tap to read the full story...", label)
}

// CleanTitle removes trailing source names such as " - BBC News" or " | Site"
func CleanTitle(title string) string {
	title = titleSourceSuffix.ReplaceAllString(title, "")
	title = titlePipeSuffix.ReplaceAllString(title, "")
	title = titleProperSuffix.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

// ArticleID builds the per-batch id: label with whitespace dashed, batch millis, position
func ArticleID(label string, batchMillis int64, position int) string {
	return fmt.Sprintf("%s-%d-%d", whitespaceClass.ReplaceAllString(label, "-"), batchMillis, position)
}
