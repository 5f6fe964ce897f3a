package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/forms"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/service"
	"github.com/julianstephens/pact/internal/session"
)

type identityMsg struct {
	identity session.Identity
	pactID   string
	err      error
}

type weekLoadedMsg struct {
	week service.Week
	err  error
}

type logsRefreshedMsg struct {
	week service.Week
	err  error
}

type overviewLoadedMsg struct {
	overview service.Overview
	err      error
}

type logLoadedMsg struct {
	log models.LogDetail
	err error
}

type activitiesLoadedMsg struct {
	activities []models.Activity
	date       string
	err        error
}

type signedUpMsg struct {
	member session.Member
	err    error
}

type logCreatedMsg struct {
	log models.ActivityLog
	err error
}

type probeTickMsg struct{}

type probeResultMsg struct {
	err error
}

func (m Model) loadIdentity() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		id, err := svc.Identity()
		if err != nil {
			return identityMsg{err: err}
		}
		pactID, err := svc.CurrentPact()
		return identityMsg{identity: id, pactID: pactID, err: err}
	}
}

func (m Model) loadWeek(pactID string) tea.Cmd {
	svc, ctx, member := m.svc, m.ctx, m.member
	return func() tea.Msg {
		w, err := svc.WeekView(ctx, member, pactID)
		return weekLoadedMsg{week: w, err: err}
	}
}

// refreshLogs refetches the logs of the loaded week. Responses are applied in
// arrival order, so the last one wins.
func (m Model) refreshLogs() tea.Cmd {
	svc, ctx, member, w := m.svc, m.ctx, m.member, m.week
	return func() tea.Msg {
		fresh, err := svc.RefreshLogs(ctx, member, w)
		return logsRefreshedMsg{week: fresh, err: err}
	}
}

func (m Model) loadOverview() tea.Cmd {
	svc, ctx, member := m.svc, m.ctx, m.member
	return func() tea.Msg {
		ov, err := svc.Overview(ctx, member)
		return overviewLoadedMsg{overview: ov, err: err}
	}
}

func (m Model) loadLog(id string) tea.Cmd {
	svc, ctx, member := m.svc, m.ctx, m.member
	return func() tea.Msg {
		l, err := svc.Log(ctx, member, id)
		return logLoadedMsg{log: l, err: err}
	}
}

func (m Model) loadActivities(date string) tea.Cmd {
	svc, ctx, member, pactID := m.svc, m.ctx, m.member, m.week.Pact.ID
	return func() tea.Msg {
		acts, err := svc.UserActivities(ctx, member, pactID)
		return activitiesLoadedMsg{activities: acts, date: date, err: err}
	}
}

func (m Model) signup(in models.CreateUserInput) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		member, err := svc.Signup(ctx, in)
		return signedUpMsg{member: member, err: err}
	}
}

func (m Model) createLog(fields forms.LogFields) tea.Cmd {
	svc, ctx, member, pactID := m.svc, m.ctx, m.member, m.week.Pact.ID
	return func() tea.Msg {
		in := models.CreateLogInput{
			PactID:     pactID,
			ActivityID: fields.ActivityID,
			Date:       fields.Date,
			Notes:      fields.Notes,
		}
		for _, p := range fields.Paths() {
			a, err := service.AttachmentFromPath(p)
			if err != nil {
				return logCreatedMsg{err: err}
			}
			in.Files = append(in.Files, a)
		}
		l, err := svc.CreateLog(ctx, member, in)
		return logCreatedMsg{log: l, err: err}
	}
}

func probeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return probeTickMsg{} })
}

func (m Model) probe() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return probeResultMsg{err: svc.Ping(ctx)}
	}
}

func (m Model) probeInterval() time.Duration {
	if m.probeEvery > 0 {
		return m.probeEvery
	}
	return constants.ReconnectProbeInterval
}
