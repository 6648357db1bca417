package reminder

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultInputLayout is the preferred layout for typed targets.
	DefaultInputLayout = "2006-01-02 15:04"
	// DisplayLayout renders targets in status and notification texts.
	DisplayLayout = "Mon, 02 Jan 2006 15:04:05"
)

// fallbackLayouts are tried after the configured layout.
// The second entry is the HTML datetime-local format.
//
//nolint:gochecknoglobals // Read-only table.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// clockLayouts carry no date; the target lands on the current day.
//
//nolint:gochecknoglobals // Read-only table.
var clockLayouts = []string{
	"15:04",
	"15:04:05",
}

// ParseTarget converts raw user input into an instant in loc.
// Time-of-day input is placed on the day of now. It does not check
// whether the result lies in the future.
func ParseTarget(raw, layout string, now time.Time, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrMissingTarget
	}

	if loc == nil {
		loc = time.Local
	}

	layouts := fallbackLayouts
	if layout != "" {
		layouts = append([]string{layout}, fallbackLayouts...)
	}

	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, raw, loc); err == nil {
			return t, nil
		}
	}

	for _, l := range clockLayouts {
		t, err := time.ParseInLocation(l, raw, loc)
		if err != nil {
			continue
		}

		day := now.In(loc)

		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("parse %q: %w", raw, ErrInvalidTarget)
}

// FormatDuration renders d as "Xh Ym Zs", dropping fractional seconds.
// Negative durations render as zero.
func FormatDuration(d time.Duration) string {
	totalSeconds := max(int64(d/time.Second), 0)

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

// FormatTarget renders a target instant in local time.
func FormatTarget(t time.Time) string {
	return t.Local().Format(DisplayLayout)
}
