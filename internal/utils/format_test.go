package utils

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "Not set"},
		{in: "   ", want: "Not set"},
		{in: "2024-05-01", want: "May 1, 2024"},
		{in: "2024-12-25T00:00:00.000Z", want: "Dec 25, 2024"},
		{in: "soon", want: "Invalid date"},
		{in: "2024-13-01", want: "Invalid date"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatDate(tt.in); got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       string
	}{
		{name: "both unset", want: "Not set"},
		{name: "open ended", start: "2024-05-01", want: "Starts May 1, 2024"},
		{name: "end only", end: "2024-06-30", want: "Ends Jun 30, 2024"},
		{name: "full range", start: "2024-05-01", end: "2024-06-30", want: "May 1, 2024 - Jun 30, 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateRange(tt.start, tt.end); got != tt.want {
				t.Errorf("FormatDateRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	got := FormatCurrency(500)
	if !strings.Contains(got, "500") {
		t.Errorf("FormatCurrency(500) = %q, want amount included", got)
	}
	if got == "500" {
		t.Errorf("FormatCurrency(500) = %q, want currency marker", got)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0 B"},
		{in: -4, want: "0 B"},
		{in: 2_400_000, want: "2.4 MB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2024, time.June, 13, 12, 0, 0, 0, time.UTC)
	if got := FormatAgo(time.Time{}, now); got != "never" {
		t.Errorf("FormatAgo(zero) = %q, want never", got)
	}
	if got := FormatAgo(now.Add(-3*time.Minute), now); got != "3 minutes ago" {
		t.Errorf("FormatAgo() = %q, want 3 minutes ago", got)
	}
}

func TestFormatProgress(t *testing.T) {
	if got := FormatProgress(3, 5); got != "3/5 days" {
		t.Errorf("FormatProgress() = %q", got)
	}
}
