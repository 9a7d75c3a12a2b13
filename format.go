// ABOUTME: Human formatting of slideshow durations
// ABOUTME: Renders durations as compact "1h 2m 5.5s" strings for summaries

package main

import (
	"strconv"
	"strings"
	"time"
)

// secondsToDuration converts a fractional number of seconds
func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// FormatDuration returns d as hours, minutes and seconds, omitting zero
// units. Seconds keep at most one decimal digit, matching the playlist.
func FormatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	if d <= 0 {
		return "0s"
	}

	hours := d / time.Hour
	d -= hours * time.Hour

	minutes := d / time.Minute
	d -= minutes * time.Minute

	var parts []string

	if hours > 0 {
		parts = append(parts, strconv.FormatInt(int64(hours), 10)+"h")
	}

	if minutes > 0 {
		parts = append(parts, strconv.FormatInt(int64(minutes), 10)+"m")
	}

	if d > 0 {
		parts = append(parts, strconv.FormatFloat(d.Seconds(), 'f', -1, 64)+"s")
	}

	return strings.Join(parts, " ")
}
