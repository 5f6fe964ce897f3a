// Package week builds the calendar window shown by the pact week-view and joins
// backend day logs onto it.
package week

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/pact/internal/constants"
)

// Day is one calendar date in the window. It is recomputed on every build and
// never persisted.
type Day struct {
	Date    time.Time
	Key     string
	IsToday bool
}

// Midnight truncates t to the start of its calendar day in t's own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday at or before t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	d := Midnight(t)
	offset := (int(d.Weekday()) + 6) % 7 // Mon=0 .. Sun=6
	return d.AddDate(0, 0, -offset)
}

// Key formats the local calendar components of t as YYYY-MM-DD.
// It deliberately avoids converting to UTC first.
func Key(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// daysBetween counts calendar days from a to b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// Build returns the contiguous run of days from the Monday of the earlier of
// pactStart's week and today's week through the Sunday ending today's week.
// A nil pactStart anchors the window on today. The result always holds at
// least seven days and exactly one day flagged as today.
func Build(today time.Time, pactStart *time.Time) []Day {
	today = Midnight(today)

	base := today
	if pactStart != nil {
		base = Midnight(pactStart.In(today.Location()))
	}

	rangeStart := StartOfWeek(base)
	if todayWeek := StartOfWeek(today); todayWeek.Before(rangeStart) {
		rangeStart = todayWeek
	}
	rangeEnd := StartOfWeek(today).AddDate(0, 0, 6)

	count := max(constants.MinWindowDays, daysBetween(rangeStart, rangeEnd)+1)

	todayKey := Key(today)
	days := make([]Day, count)
	for i := range days {
		date := rangeStart.AddDate(0, 0, i)
		key := Key(date)
		days[i] = Day{Date: date, Key: key, IsToday: key == todayKey}
	}
	return days
}

// TodayIndex returns the position of today in days, or 0 when absent.
func TodayIndex(days []Day) int {
	for i, d := range days {
		if d.IsToday {
			return i
		}
	}
	return 0
}

// ParseStart interprets a pact start date from the backend. Date-only values
// are read as local calendar dates; timestamps are converted to loc and then
// truncated to midnight. An empty string means the pact has no start date.
func ParseStart(raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if len(raw) == len(constants.DateFormat) {
		t, err := time.ParseInLocation(constants.DateFormat, raw, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid pact start date %q: %w", raw, err)
		}
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid pact start date %q: %w", raw, err)
	}
	start := Midnight(t.In(loc))
	return &start, nil
}
