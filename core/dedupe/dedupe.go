// ABOUTME: Deduplicator collapses near-duplicate articles across sources
// ABOUTME: Passes run in order: normalized URL, normalized title, shared image

package dedupe

import (
	"regexp"
	"strings"

	"oddly-enough-api/core/domain"
)

// titleKeyLength is how many normalized title characters identify a story
const titleKeyLength = 50

var (
	schemePattern   = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*://`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// NormalizeURL strips scheme, "www.", query string, fragment and trailing slash
func NormalizeURL(u string) string {
	key := strings.TrimSpace(u)
	key = schemePattern.ReplaceAllString(key, "")
	if len(key) >= 4 && strings.EqualFold(key[:4], "www.") {
		key = key[4:]
	}
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	key = strings.TrimRight(key, "/")
	return strings.ToLower(key)
}

// NormalizeTitle lower-cases, drops non-alphanumerics and keeps the first 50 characters
func NormalizeTitle(title string) string {
	key := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "")
	if len(key) > titleKeyLength {
		key = key[:titleKeyLength]
	}
	return key
}

// Dedupe drops later articles sharing a normalized URL or title with an
// earlier one, then clears the image of later articles reusing an earlier
// image. Order is preserved and the input slice is not modified.
func Dedupe(articles []domain.Article) []domain.Article {
	out := make([]domain.Article, 0, len(articles))

	seenURLs := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		key := NormalizeURL(a.URL)
		if _, dup := seenURLs[key]; dup {
			continue
		}
		seenURLs[key] = struct{}{}
		out = append(out, a)
	}

	seenTitles := make(map[string]struct{}, len(out))
	byTitle := out[:0]
	for _, a := range out {
		key := NormalizeTitle(a.Title)
		if key != "" {
			if _, dup := seenTitles[key]; dup {
				continue
			}
			seenTitles[key] = struct{}{}
		}
		byTitle = append(byTitle, a)
	}
	out = byTitle

	seenImages := make(map[string]struct{}, len(out))
	for i := range out {
		img := out[i].ImageURL
		if img == "" {
			continue
		}
		if _, dup := seenImages[img]; dup {
			out[i].ImageURL = ""
			continue
		}
		seenImages[img] = struct{}{}
	}

	return out
}

// RequireImage drops articles without a resolved image
func RequireImage(articles []domain.Article) []domain.Article {
	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if a.HasImage() {
			out = append(out, a)
		}
	}
	return out
}
