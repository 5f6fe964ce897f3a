package week

import (
	"testing"
	"time"

	"github.com/julianstephens/pact/internal/models"
)

func TestReconcileSingleVerifiedLog(t *testing.T) {
	start := date(2024, time.May, 1)
	days := Build(date(2024, time.June, 13), &start)
	byDay := []models.DayLogs{
		{Date: "2024-06-13", Logs: []models.LogSummary{{ID: "a", Verified: true}}},
	}

	cells := Reconcile(days, byDay)
	if len(cells) != len(days) {
		t.Fatalf("len(cells) = %d, want %d", len(cells), len(days))
	}
	for i, c := range cells {
		if c.Day.Key == "2024-06-13" {
			if i != 45 {
				t.Errorf("Thursday at index %d, want 45", i)
			}
			if len(c.Logs) != 1 || c.Logs[0].ID != "a" || !c.Logs[0].Verified {
				t.Errorf("Thursday logs = %+v, want one verified log", c.Logs)
			}
			continue
		}
		if c.Logs == nil {
			t.Errorf("cell %s has nil logs, want empty slice", c.Day.Key)
		}
		if len(c.Logs) != 0 {
			t.Errorf("cell %s has %d logs, want 0", c.Day.Key, len(c.Logs))
		}
	}
	if n := LoggedDays(cells); n != 1 {
		t.Errorf("LoggedDays() = %d, want 1", n)
	}
}

func TestReconcilePreservesOrder(t *testing.T) {
	days := Build(date(2024, time.June, 13), nil)
	logs := []models.LogSummary{{ID: "z"}, {ID: "a"}, {ID: "m"}}
	cells := Reconcile(days, []models.DayLogs{
		{Date: "2024-06-11", Logs: logs},
	})

	got := cells[1].Logs
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"z", "a", "m"} {
		if got[i].ID != want {
			t.Errorf("logs[%d] = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestReconcileEdgeCases(t *testing.T) {
	days := Build(date(2024, time.June, 13), nil)

	tests := []struct {
		name  string
		byDay []models.DayLogs
		check func(t *testing.T, cells []Cell)
	}{
		{
			name:  "nil collection",
			byDay: nil,
			check: func(t *testing.T, cells []Cell) {
				if LoggedDays(cells) != 0 {
					t.Errorf("LoggedDays() = %d, want 0", LoggedDays(cells))
				}
			},
		},
		{
			name:  "entry outside window ignored",
			byDay: []models.DayLogs{{Date: "2023-01-01", Logs: []models.LogSummary{{ID: "x"}}}},
			check: func(t *testing.T, cells []Cell) {
				if LoggedDays(cells) != 0 {
					t.Errorf("LoggedDays() = %d, want 0", LoggedDays(cells))
				}
			},
		},
		{
			name:  "matched entry with null logs",
			byDay: []models.DayLogs{{Date: "2024-06-12", Logs: nil}},
			check: func(t *testing.T, cells []Cell) {
				if cells[2].Logs == nil || len(cells[2].Logs) != 0 {
					t.Errorf("cells[2].Logs = %#v, want empty slice", cells[2].Logs)
				}
			},
		},
		{
			name: "duplicate date keeps first entry",
			byDay: []models.DayLogs{
				{Date: "2024-06-14", Logs: []models.LogSummary{{ID: "first"}}},
				{Date: "2024-06-14", Logs: []models.LogSummary{{ID: "second"}}},
			},
			check: func(t *testing.T, cells []Cell) {
				if len(cells[4].Logs) != 1 || cells[4].Logs[0].ID != "first" {
					t.Errorf("cells[4].Logs = %+v, want first entry", cells[4].Logs)
				}
			},
		},
		{
			name:  "unordered collection",
			byDay: []models.DayLogs{{Date: "2024-06-16", Logs: []models.LogSummary{{ID: "s"}}}, {Date: "2024-06-10", Logs: []models.LogSummary{{ID: "m"}}}},
			check: func(t *testing.T, cells []Cell) {
				if cells[0].Logs[0].ID != "m" || cells[6].Logs[0].ID != "s" {
					t.Errorf("cells not matched by key: %+v / %+v", cells[0].Logs, cells[6].Logs)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Reconcile(days, tt.byDay))
		})
	}
}
