// ABOUTME: HTML text normalization for feed fragments and scraped paragraphs
// ABOUTME: Strips tags, decodes entities and canonicalizes typography and whitespace

package html

import (
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

var (
	// a tag opens with a letter, '/', '!' or '?' so "5 < 6" survives
	tagPattern        = regexp.MustCompile(`<[A-Za-z/!?][^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	typography = strings.NewReplacer(
		"\u2018", "'",
		"\u2019", "'",
		"\u201C", `"`,
		"\u201D", `"`,
		"\u2014", "-",
		"\u2013", "-",
		"\u2026", "...",
		"\u00A0", " ",
	)
)

// Normalize turns an HTML fragment into a single line of plain text.
// It is total and idempotent: Normalize(Normalize(s)) == Normalize(s).
// Rounds repeat until a fixed point; every changing round shrinks the text
// or removes an ellipsis character, so the loop terminates.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	current := text
	for {
		next := normalizeOnce(current)
		if next == current {
			return current
		}
		current = next
	}
}

func normalizeOnce(text string) string {
	text = StripTags(text)
	text = DecodeEntities(text)
	text = typography.Replace(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripTags removes anything that looks like a markup tag.
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}

// DecodeEntities resolves named, decimal and hex character references.
// Unknown or malformed references are left as they are.
func DecodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	return xhtml.UnescapeString(text)
}

// Truncate cuts text to at most limit runes and appends an ellipsis when cut.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
