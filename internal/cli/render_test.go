package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/service"
	"github.com/julianstephens/pact/internal/week"
)

func TestFormatPactLine(t *testing.T) {
	p := models.Pact{ID: "p1", Title: "Readers", MinDaysPerWeek: 4, StartDate: "2024-06-03", Status: models.PactStatusCompleted}
	got := FormatPactLine(p, &models.PactProgress{ActivityDays: 2, TargetDays: 4})
	for _, want := range []string{"p1", "Readers", "4 days/week", "Starts Jun 3, 2024", "2/4 days", "[completed]"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatPactLine() = %q, missing %q", got, want)
		}
	}
}

func TestFormatPactDetailJoinAffordance(t *testing.T) {
	p := models.Pact{ID: "p1", Title: "Readers", MaxActivitiesPerUser: 2}
	tests := []struct {
		name   string
		detail service.PactDetail
		member bool
		want   string
	}{
		{
			name:   "guest",
			detail: service.PactDetail{Pact: p},
			want:   "Sign up to join this pact.",
		},
		{
			name:   "needs more activities",
			detail: service.PactDetail{Pact: p, Enrollment: models.EnrollmentState{Count: 1, Max: 2}},
			member: true,
			want:   "Add 1 more: pact activity add p1",
		},
		{
			name:   "ready",
			detail: service.PactDetail{Pact: p, Enrollment: models.EnrollmentState{Count: 2, Max: 2}},
			member: true,
			want:   "Ready to join: pact pact join p1",
		},
		{
			name:   "joined",
			detail: service.PactDetail{Pact: p, Joined: true, Enrollment: models.EnrollmentState{Count: 2, Max: 2}},
			member: true,
			want:   "✓ You are a participant",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPactDetail(tt.detail, tt.member)
			if !strings.Contains(got, tt.want) {
				t.Errorf("FormatPactDetail() missing %q in:\n%s", tt.want, got)
			}
		})
	}
}

func TestFormatWeek(t *testing.T) {
	today := time.Date(2024, time.June, 13, 10, 0, 0, 0, time.UTC)
	days := week.Build(today, nil)
	cells := week.Reconcile(days, []models.DayLogs{
		{Date: "2024-06-11", Logs: []models.LogSummary{{ID: "l1", Verified: true}, {ID: "l2"}}},
	})
	got := FormatWeek(service.Week{Pact: models.Pact{Title: "Readers"}, Cells: cells, TodayIndex: 3})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2+7 {
		t.Fatalf("got %d lines, want title, blank and 7 days:\n%s", len(lines), got)
	}
	want := map[int]string{
		2: "  Mon Jun 10  No activity logged.",
		3: "  Tue Jun 11  ✓ l1, ○ l2",
		5: "> Thu Jun 13  add activity log",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestFormatLog(t *testing.T) {
	got := FormatLog(models.LogDetail{
		ID:         "l1",
		ActivityID: "a1",
		OccurredAt: time.Date(2024, time.June, 12, 7, 0, 0, 0, time.UTC),
		Verified:   true,
		Images: []models.MediaFile{
			{Name: "run.jpg", MimeType: "image/jpeg", SizeBytes: 2_400_000, WebViewLink: "https://v", WebContentLink: "https://d"},
		},
	})
	for _, want := range []string{"Log l1", "Jun 12, 2024", "Verified:  yes", "run.jpg (image/jpeg, 2.4 MB)", "view:     https://v", "download: https://d"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatLog() missing %q in:\n%s", want, got)
		}
	}
}
