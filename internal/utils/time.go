package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/pact/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// TodayIn returns the current calendar date at midnight in loc.
func TodayIn(loc *time.Location, now time.Time) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// TodayKey returns today's date string (YYYY-MM-DD) in loc.
// The key is built from local calendar components so late-evening logs are not
// attributed to tomorrow when the zone is behind UTC.
func TodayKey(loc *time.Location, now time.Time) string {
	return TodayIn(loc, now).Format(constants.DateFormat)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, dateStr, loc)
}
