package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pact/internal/constants"
	apperrors "github.com/julianstephens/pact/internal/errors"
	"github.com/julianstephens/pact/internal/utils"
	"github.com/julianstephens/pact/internal/week"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateLoading:
		content = m.spinner.View() + " Loading..."
	case constants.StateWeek:
		content = m.viewWeek()
	case constants.StatePacts:
		content = m.pactList.View()
	case constants.StateLogDetail:
		content = m.viewLog()
	case constants.StateSignup, constants.StateAddLog:
		content = m.viewForm()
	case constants.StateError:
		content = m.viewError()
	}

	if m.notice != "" {
		content = noticeStyle.Render(m.notice + "\n\n" + subtitleStyle.Render("press any key to continue"))
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.help.View(m),
	))
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("pact")
	if m.loaded {
		title += subtitleStyle.Render(m.week.Pact.Title)
	}
	if m.member.User.Name != "" {
		title += subtitleStyle.Render("  ·  " + m.member.User.Name)
	}
	return title + "\n"
}

func (m Model) viewWeek() string {
	var banner string
	switch {
	case m.offline:
		banner = warningStyle.Render(fmt.Sprintf("Offline. Showing the last loaded week, retrying every %s.", m.probeInterval()))
	case m.err != nil:
		banner = warningStyle.Render(apperrors.UserMessage(m.err, "Could not refresh logs."))
	}

	p := m.week.Pact
	status := subtitleStyle.Render(fmt.Sprintf("%d of %d days logged · %d days/week · updated %s",
		week.LoggedDays(m.week.Cells), len(m.week.Cells), p.MinDaysPerWeek,
		utils.FormatAgo(m.week.FetchedAt, m.svc.Today())))

	parts := []string{}
	if banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, m.weekView.View(), status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewLog() string {
	l := m.log
	date := l.Date
	if date == "" && !l.OccurredAt.IsZero() {
		date = l.OccurredAt.In(m.svc.Location()).Format(constants.DateFormat)
	}
	verified := "no"
	if l.Verified {
		verified = "yes"
	}

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	row("Date", utils.FormatDate(date))
	row("Activity", l.ActivityID)
	row("Verified", verified)
	if l.Notes != "" {
		row("Notes", l.Notes)
	}
	if len(l.Images) == 0 {
		row("Media", "none")
	}
	for i, f := range l.Images {
		label := ""
		if i == 0 {
			label = "Media"
		}
		row(label, fmt.Sprintf("%s (%s, %s)", f.Name, f.MimeType, utils.FormatSize(f.SizeBytes)))
		if f.WebViewLink != "" {
			row("", "view:     "+f.WebViewLink)
		}
		if f.WebContentLink != "" {
			row("", "download: "+f.WebContentLink)
		}
	}
	return titleStyle.Render("Log "+l.ID) + "\n\n" + b.String()
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	if m.err != nil && m.state == constants.StateSignup {
		msg := apperrors.UserMessage(m.err, "Sign up failed.")
		return dangerStyle.Render(msg) + "\n\n" + m.form.View()
	}
	return m.form.View()
}

func (m Model) viewError() string {
	msg := apperrors.UserMessage(m.err, "Something went wrong.")
	if m.err != nil && msg == "Something went wrong." {
		msg = m.err.Error()
	}
	hint := "press r to retry"
	if m.loaded {
		hint += ", esc to go back"
	}
	if m.offline {
		hint += fmt.Sprintf(" (retrying automatically every %s)", m.probeInterval())
	}
	return dangerStyle.Render(msg) + "\n\n" + subtitleStyle.Render(hint)
}
