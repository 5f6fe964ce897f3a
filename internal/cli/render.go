package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/service"
	"github.com/julianstephens/pact/internal/utils"
)

// FormatPactLine renders one pact for a listing.
func FormatPactLine(p models.Pact, progress *models.PactProgress) string {
	line := fmt.Sprintf("%s  %s  (%d days/week, %s)", p.ID, p.Title, p.MinDaysPerWeek,
		utils.FormatDateRange(p.StartDate, p.EndDate))
	if progress != nil {
		line += "  " + utils.FormatProgress(progress.ActivityDays, progress.TargetDays)
	}
	if p.Status != "" && p.Status != models.PactStatusActive {
		line += "  [" + string(p.Status) + "]"
	}
	return line
}

// FormatOverview renders the joined and explore sections.
func FormatOverview(ov service.Overview, showExplore bool) string {
	var b strings.Builder
	b.WriteString("Your pacts:\n")
	if len(ov.Joined) == 0 {
		b.WriteString("  You have not joined any pacts yet.\n")
	}
	for _, s := range ov.Joined {
		fmt.Fprintf(&b, "  %s\n", FormatPactLine(s.Pact, s.Progress))
	}
	if !showExplore {
		return b.String()
	}
	b.WriteString("\nExplore:\n")
	if len(ov.Explore) == 0 {
		b.WriteString("  No other active pacts.\n")
	}
	for _, p := range ov.Explore {
		fmt.Fprintf(&b, "  %s\n", FormatPactLine(p, nil))
	}
	return b.String()
}

// FormatPactDetail renders the pact page: terms, participants and the
// member's enrollment.
func FormatPactDetail(d service.PactDetail, member bool) string {
	p := d.Pact
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n", p.Description)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Status:          %s\n", p.Status)
	fmt.Fprintf(&b, "  Dates:           %s\n", utils.FormatDateRange(p.StartDate, p.EndDate))
	fmt.Fprintf(&b, "  Min days/week:   %d\n", p.MinDaysPerWeek)
	fmt.Fprintf(&b, "  Max activities:  %d\n", p.MaxActivitiesPerUser)
	fmt.Fprintf(&b, "  Skip fine:       %s\n", utils.FormatCurrency(p.SkipFine))
	fmt.Fprintf(&b, "  Leave fine:      %s\n", utils.FormatCurrency(p.LeaveFine))

	fmt.Fprintf(&b, "\nParticipants (%d):\n", len(p.Participants))
	for _, u := range p.Participants {
		fmt.Fprintf(&b, "  - %s\n", u.Name)
	}

	if !member {
		b.WriteString("\nSign up to join this pact.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "\nYour activities (%d/%d):\n", d.Enrollment.Count, d.Enrollment.Max)
	for _, a := range d.Mine {
		fmt.Fprintf(&b, "  - %s (%d days/week)\n", a.Name, a.NumberOfDays)
	}
	switch {
	case d.Joined:
		b.WriteString("\n✓ You are a participant\n")
	case d.Enrollment.ReadyToJoin():
		fmt.Fprintf(&b, "\nReady to join: pact pact join %s\n", p.ID)
	case d.Enrollment.CanAddActivity():
		fmt.Fprintf(&b, "\nAdd %d more: pact activity add %s\n", d.Enrollment.Remaining(), p.ID)
	}
	return b.String()
}

// FormatWeek renders the week view as one line per day, today marked.
func FormatWeek(w service.Week) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", w.Pact.Title)
	for _, c := range w.Cells {
		marker := "  "
		if c.Day.IsToday {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s  ", marker, c.Day.Date.Format("Mon Jan 02"))
		switch {
		case len(c.Logs) > 0:
			parts := make([]string, 0, len(c.Logs))
			for _, l := range c.Logs {
				mark := "○"
				if l.Verified {
					mark = "✓"
				}
				parts = append(parts, fmt.Sprintf("%s %s", mark, l.ID))
			}
			b.WriteString(strings.Join(parts, ", "))
		case c.Day.IsToday:
			b.WriteString("add activity log")
		default:
			b.WriteString("No activity logged.")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatLog renders a single log with its attachments.
func FormatLog(l models.LogDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Log %s\n", l.ID)
	date := l.Date
	if date == "" && !l.OccurredAt.IsZero() {
		date = l.OccurredAt.Format("2006-01-02")
	}
	fmt.Fprintf(&b, "  Date:      %s\n", utils.FormatDate(date))
	fmt.Fprintf(&b, "  Activity:  %s\n", l.ActivityID)
	verified := "no"
	if l.Verified {
		verified = "yes"
	}
	fmt.Fprintf(&b, "  Verified:  %s\n", verified)
	if l.Notes != "" {
		fmt.Fprintf(&b, "  Notes:     %s\n", l.Notes)
	}
	if len(l.Images) == 0 {
		return b.String()
	}
	b.WriteString("\nMedia:\n")
	for _, m := range l.Images {
		fmt.Fprintf(&b, "  - %s (%s, %s)\n", m.Name, m.MimeType, utils.FormatSize(m.SizeBytes))
		if m.WebViewLink != "" {
			fmt.Fprintf(&b, "      view:     %s\n", m.WebViewLink)
		}
		if m.WebContentLink != "" {
			fmt.Fprintf(&b, "      download: %s\n", m.WebContentLink)
		}
	}
	return b.String()
}
