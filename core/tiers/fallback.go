// ABOUTME: Static evergreen articles served when every cache tier is cold
// ABOUTME: Lets a first read return instantly while ingestion runs out of band

package tiers

import (
	"time"

	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/images"
)

var fallbackPublished = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var fallbackSeed = []domain.Article{
	{
		ID:       "fallback-emu-war",
		Title:    "Australia once declared war on emus and lost",
		Summary:  "In 1932 soldiers with machine guns were sent to cull emus in Western Australia. The emus won.",
		URL:      "https://en.wikipedia.org/wiki/Emu_War",
		Source:   "Oddly Enough",
		Category: domain.CategoryAnimals,
	},
	{
		ID:       "fallback-boaty",
		Title:    "Public vote names research ship Boaty McBoatface",
		Summary:  "An online poll to name a polar research vessel produced a winner nobody in charge expected.",
		URL:      "https://en.wikipedia.org/wiki/Boaty_McBoatface",
		Source:   "Oddly Enough",
		Category: domain.CategoryBritish,
	},
	{
		ID:       "fallback-dancing-plague",
		Title:    "The town that could not stop dancing",
		Summary:  "In 1518 hundreds of people in Strasbourg danced for days and nobody has fully explained why.",
		URL:      "https://en.wikipedia.org/wiki/Dancing_plague_of_1518",
		Source:   "Oddly Enough",
		Category: domain.CategoryMystery,
	},
}

// FallbackArticles returns a fresh copy of the static articles with placeholder images
func FallbackArticles() []domain.Article {
	out := make([]domain.Article, len(fallbackSeed))
	for i, a := range fallbackSeed {
		a.ImageURL = images.Placeholder(a.Title)
		a.PublishedAt = fallbackPublished
		out[i] = a
	}
	return out
}
