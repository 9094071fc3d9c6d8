// ABOUTME: Duration parsing for configuration values given as seconds, Go durations or clock strings
// ABOUTME: Also renders durations as short human-readable text for logs and the CLI

package duration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse converts "90", "1h30m", "01:30:00" or "30:00" into a duration.
// A bare number is read as seconds.
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if seconds, err := strconv.Atoi(s); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second, nil
}

// ParseOrDefault returns def when s is empty or malformed
func ParseOrDefault(s string, def time.Duration) time.Duration {
	if d, err := Parse(s); err == nil {
		return d
	}
	return def
}

// HumanReadable renders d as "2 hours 5 minutes" or "45 seconds"
func HumanReadable(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%d seconds", seconds)
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	parts := []string{}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hour", hours))
		if hours > 1 {
			parts[len(parts)-1] += "s"
		}
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minute", minutes))
		if minutes > 1 {
			parts[len(parts)-1] += "s"
		}
	}

	return strings.Join(parts, " ")
}
