// ABOUTME: Deterministic placeholder images derived from a title hash
// ABOUTME: The same title always maps to the same gradient and caption

package images

import (
	"fmt"
	"unicode/utf16"
)

var gradientColors = [][2]string{
	{"FF6B6B", "4ECDC4"},
	{"A8E6CF", "FFD93D"},
	{"6C5CE7", "A29BFE"},
	{"FD79A8", "FDCB6E"},
	{"00B894", "00CEC9"},
	{"E17055", "FDCB6E"},
	{"0984E3", "74B9FF"},
	{"E84393", "FD79A8"},
	{"00B5AD", "21D4FD"},
	{"F8B500", "FF6F61"},
	{"7F00FF", "E100FF"},
	{"11998E", "38EF7D"},
}

var placeholderCaptions = []string{
	"👽+Image+Abducted",
	"🔮+No+Image+Found",
	"🛸+UFO+Took+This",
	"👀+Nothing+To+See",
	"🌀+Image+Lost+In+Void",
	"🎭+Mystery+Image",
	"🦑+Kraken+Ate+It",
	"👻+Ghost+Image",
	"🌈+Imagine+Something",
	"🐙+Tentacles+Only",
	"💀+RIP+Image",
	"🤖+Beep+Boop+No+Pic",
}

// HashCode is a rolling multiply-by-31 hash over UTF-16 code units with
// 32-bit wraparound. Not for security use.
func HashCode(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	return h
}

func hashIndex(s string, n int) int {
	h := int64(HashCode(s))
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}

// Placeholder returns the placeholder image URL for title
func Placeholder(title string) string {
	colors := gradientColors[hashIndex(title, len(gradientColors))]
	caption := placeholderCaptions[hashIndex(title, len(placeholderCaptions))]
	return fmt.Sprintf("https://dummyimage.com/800x450/%s/%s.png&text=%s", colors[0], colors[1], caption)
}
