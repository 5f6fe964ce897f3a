package week

import "github.com/julianstephens/pact/internal/models"

// Cell pairs a window day with the logs recorded on it.
type Cell struct {
	Day  Day
	Logs []models.LogSummary
}

// Reconcile joins backend day logs onto the window by exact date key.
// Days without an entry get an empty slice; entries outside the window are
// dropped. Logs keep the order the backend returned them in. If the backend
// ever sends two entries for one date, the first one wins.
func Reconcile(days []Day, byDay []models.DayLogs) []Cell {
	index := make(map[string][]models.LogSummary, len(byDay))
	for _, entry := range byDay {
		if _, seen := index[entry.Date]; seen {
			continue
		}
		index[entry.Date] = entry.Logs
	}

	cells := make([]Cell, len(days))
	for i, day := range days {
		logs := index[day.Key]
		if logs == nil {
			logs = []models.LogSummary{}
		}
		cells[i] = Cell{Day: day, Logs: logs}
	}
	return cells
}

// LoggedDays counts the cells that carry at least one log
func LoggedDays(cells []Cell) int {
	n := 0
	for _, c := range cells {
		if len(c.Logs) > 0 {
			n++
		}
	}
	return n
}
