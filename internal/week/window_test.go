package week

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "monday stays", in: date(2024, time.June, 10), want: date(2024, time.June, 10)},
		{name: "thursday", in: date(2024, time.June, 13), want: date(2024, time.June, 10)},
		{name: "sunday goes back six", in: date(2024, time.June, 16), want: date(2024, time.June, 10)},
		{name: "wednesday across month", in: date(2024, time.May, 1), want: date(2024, time.April, 29)},
		{name: "time of day dropped", in: time.Date(2024, time.June, 13, 23, 59, 0, 0, time.Local), want: date(2024, time.June, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.in); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeyUsesLocalComponents(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2024-06-13 00:30 in UTC+10 is still 2024-06-12 in UTC.
	d := time.Date(2024, time.June, 13, 0, 30, 0, 0, loc)
	if got := Key(d); got != "2024-06-13" {
		t.Errorf("Key() = %q, want 2024-06-13", got)
	}
	if got := Key(date(2024, time.January, 5)); got != "2024-01-05" {
		t.Errorf("Key() = %q, want zero padded 2024-01-05", got)
	}
}

func TestBuildNoPactStart(t *testing.T) {
	today := date(2024, time.June, 13)
	days := Build(today, nil)

	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}
	if days[0].Key != "2024-06-10" || days[6].Key != "2024-06-16" {
		t.Errorf("window = %s..%s, want 2024-06-10..2024-06-16", days[0].Key, days[6].Key)
	}
	if !days[3].IsToday {
		t.Errorf("days[3] (%s) not flagged as today", days[3].Key)
	}
	if idx := TodayIndex(days); idx != 3 {
		t.Errorf("TodayIndex() = %d, want 3", idx)
	}
}

func TestBuildPastPactStart(t *testing.T) {
	start := date(2024, time.May, 1)
	today := date(2024, time.June, 13)
	days := Build(today, &start)

	if len(days) != 49 {
		t.Fatalf("len(days) = %d, want 49", len(days))
	}
	if days[0].Key != "2024-04-29" {
		t.Errorf("first day = %s, want 2024-04-29", days[0].Key)
	}
	if days[len(days)-1].Key != "2024-06-16" {
		t.Errorf("last day = %s, want 2024-06-16", days[len(days)-1].Key)
	}
	if idx := TodayIndex(days); idx != 45 {
		t.Errorf("TodayIndex() = %d, want 45", idx)
	}
}

func TestBuildFuturePactStart(t *testing.T) {
	start := date(2024, time.July, 3)
	today := date(2024, time.June, 13)
	days := Build(today, &start)

	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}
	if !days[0].Date.Equal(StartOfWeek(today)) {
		t.Errorf("first day = %s, want start of today's week", days[0].Key)
	}
	if days[6].Key != "2024-06-16" {
		t.Errorf("last day = %s, want 2024-06-16", days[6].Key)
	}
}

func TestBuildProperties(t *testing.T) {
	base := date(2023, time.December, 20)
	for offset := 0; offset < 60; offset += 3 {
		today := base.AddDate(0, 0, offset)
		for _, startOffset := range []int{-200, -45, -8, -1, 0, 1, 9, 120} {
			start := today.AddDate(0, 0, startOffset)
			days := Build(today, &start)

			if len(days) < 7 {
				t.Fatalf("today=%s start=%s: len = %d, want >= 7", Key(today), Key(start), len(days))
			}

			todays := 0
			for i, d := range days {
				if d.IsToday {
					todays++
					if d.Key != Key(today) {
						t.Errorf("day %s flagged today, want %s", d.Key, Key(today))
					}
				}
				if i > 0 {
					next := days[i-1].Date.AddDate(0, 0, 1)
					if !d.Date.Equal(next) {
						t.Fatalf("gap between %s and %s", days[i-1].Key, d.Key)
					}
				}
			}
			if todays != 1 {
				t.Errorf("today=%s start=%s: %d days flagged today, want 1", Key(today), Key(start), todays)
			}

			if startOffset <= 0 && days[0].Date.After(StartOfWeek(start)) {
				t.Errorf("first day %s after start of pact week %s", days[0].Key, Key(StartOfWeek(start)))
			}
			if days[len(days)-1].Date.Weekday() != time.Sunday {
				t.Errorf("last day %s is not a Sunday", days[len(days)-1].Key)
			}
		}
	}
}

func TestBuildAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// DST starts 2024-03-10 in New York.
	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, loc)
	today := time.Date(2024, time.March, 14, 0, 0, 0, 0, loc)
	days := Build(today, &start)

	if len(days) != 14 {
		t.Fatalf("len(days) = %d, want 14", len(days))
	}
	for i, d := range days {
		if d.Date.Hour() != 0 {
			t.Errorf("days[%d] = %v, want midnight", i, d.Date)
		}
	}
	if days[13].Key != "2024-03-17" {
		t.Errorf("last day = %s, want 2024-03-17", days[13].Key)
	}
}

func TestParseStart(t *testing.T) {
	loc := time.FixedZone("IST", 5*60*60+30*60)

	got, err := ParseStart("", loc)
	if err != nil || got != nil {
		t.Errorf("ParseStart(\"\") = %v, %v; want nil, nil", got, err)
	}

	got, err = ParseStart("2024-05-01", loc)
	if err != nil {
		t.Fatalf("ParseStart(date) error: %v", err)
	}
	if Key(*got) != "2024-05-01" || got.Location() != loc {
		t.Errorf("ParseStart(date) = %v", got)
	}

	got, err = ParseStart("2024-04-30T20:00:00.000Z", loc)
	if err != nil {
		t.Fatalf("ParseStart(timestamp) error: %v", err)
	}
	if Key(*got) != "2024-05-01" || got.Hour() != 0 {
		t.Errorf("ParseStart(timestamp) = %v, want local 2024-05-01 midnight", got)
	}

	if _, err := ParseStart("first of may", loc); err == nil {
		t.Error("ParseStart(garbage) expected error")
	}
}
