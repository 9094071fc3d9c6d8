// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Handles the assorted date formats found in RSS/Atom feeds and falls back to a default

package time

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Formats dateparse does not recognise but feeds still emit
var timeFormats = []string{
	"02 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04 MST",
	"Monday, 02-Jan-06 15:04:05 MST",
}

// ParseFlexibleTime attempts to parse a time string using dateparse and then
// a list of known feed layouts. It returns the zero time when nothing matches.
func ParseFlexibleTime(timeStr string) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}

	if t, err := dateparse.ParseAny(timeStr); err == nil {
		return t
	}

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}

	return time.Time{}
}

// ParseWithDefault attempts to parse a time string, returning a default if parsing fails.
// Successful results are converted to UTC.
func ParseWithDefault(timeStr string, defaultTime time.Time) time.Time {
	if parsed := ParseFlexibleTime(timeStr); !parsed.IsZero() {
		return parsed.UTC()
	}
	return defaultTime
}
