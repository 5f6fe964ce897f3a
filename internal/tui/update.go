package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pact/internal/api"
	"github.com/julianstephens/pact/internal/constants"
	apperrors "github.com/julianstephens/pact/internal/errors"
	"github.com/julianstephens/pact/internal/forms"
	"github.com/julianstephens/pact/internal/logger"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
	"github.com/julianstephens/pact/internal/tui/components/pactlist"
	"github.com/julianstephens/pact/internal/tui/components/weekview"
	"github.com/julianstephens/pact/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.weekView.SetSize(max(0, msg.Width-4), m.contentHeight())
		m.pactList.SetSize(max(0, msg.Width-4), m.contentHeight())
		return m, nil

	case identityMsg:
		return m.handleIdentity(msg)

	case weekLoadedMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.week = msg.week
		m.loaded = true
		m.err = nil
		m.offline = false
		m.weekView.SetWeek(msg.week.Cells, msg.week.TodayIndex)
		m.state = constants.StateWeek
		return m, nil

	case logsRefreshedMsg:
		m.weekView.SetRefreshing(false)
		if msg.err != nil {
			// The stale week stays on screen; only the banner changes.
			m.err = msg.err
			next := m.noteOffline(msg.err)
			return m, next
		}
		if msg.week.Pact.ID != m.week.Pact.ID {
			return m, nil
		}
		m.week = msg.week
		m.err = nil
		m.offline = false
		m.weekView.SetWeek(msg.week.Cells, msg.week.TodayIndex)
		return m, nil

	case overviewLoadedMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.pactList.SetPacts(msg.overview.Joined)
		if m.loaded {
			m.pactList.Select(m.week.Pact.ID)
		}
		m.state = constants.StatePacts
		return m, nil

	case logLoadedMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.log = msg.log
		m.state = constants.StateLogDetail
		return m, nil

	case activitiesLoadedMsg:
		return m.handleActivities(msg)

	case signedUpMsg:
		if msg.err != nil {
			m.err = msg.err
			return m.startSignup(m.signupForm)
		}
		m.member = msg.member
		m.err = nil
		logger.Info("Signed up", "user", msg.member.UserID())
		next := tea.Batch(m.setLoading(), m.loadOverview())
		return m, next

	case logCreatedMsg:
		if msg.err != nil {
			m.weekView.SetRefreshing(false)
			var verrs models.ValidationErrors
			if errors.As(msg.err, &verrs) {
				m.notice = apperrors.UserMessage(msg.err, "The log is not valid.")
			} else {
				m.notice = "Upload failed, nothing was saved.\n" + apperrors.UserMessage(msg.err, msg.err.Error())
			}
			next := m.noteOffline(msg.err)
			return m, next
		}
		logger.Info("Log created", "log", msg.log.ID, "pact", m.week.Pact.ID)
		next := m.startRefresh()
		return m, next

	case probeTickMsg:
		return m, m.probe()

	case probeResultMsg:
		if msg.err != nil {
			logger.Debug("Server still unreachable", "error", msg.err)
			return m, probeAfter(m.probeInterval())
		}
		m.probing = false
		m.offline = false
		logger.Info("Server reachable again, refetching")
		if m.loaded {
			if m.state == constants.StateError {
				m.err = nil
				m.state = constants.StateWeek
			}
			next := m.startRefresh()
			return m, next
		}
		if m.state == constants.StateError {
			return m.retry()
		}
		return m, nil

	case tea.FocusMsg:
		if m.loaded {
			next := m.startRefresh()
			return m, next
		}
		return m, nil
	}

	if m.state == constants.StateSignup || m.state == constants.StateAddLog {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.state == constants.StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.weekView, cmd = m.weekView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case weekview.OpenLogMsg:
		next := tea.Batch(m.setLoading(), m.loadLog(msg.ID))
		return m, next

	case weekview.AddLogMsg:
		return m, m.loadActivities(msg.Date)

	case pactlist.SelectPactMsg:
		if err := m.svc.SetCurrentPact(msg.ID); err != nil {
			return m.fail(err)
		}
		m.loaded = false
		m.weekView = weekview.New(m.weekView.Width(), m.contentHeight(), m.svc.Location())
		next := tea.Batch(m.setLoading(), m.loadWeek(msg.ID))
		return m, next
	}

	if m.state == constants.StatePacts {
		var cmd tea.Cmd
		m.pactList, cmd = m.pactList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleIdentity(msg identityMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(msg.err)
	}
	member, ok := msg.identity.(session.Member)
	if !ok {
		return m.startSignup(nil)
	}
	m.member = member
	if msg.pactID == "" {
		next := tea.Batch(m.setLoading(), m.loadOverview())
		return m, next
	}
	next := tea.Batch(m.setLoading(), m.loadWeek(msg.pactID))
	return m, next
}

func (m Model) handleActivities(msg activitiesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notice = apperrors.UserMessage(msg.err, "Could not load your activities.")
		next := m.noteOffline(msg.err)
		return m, next
	}
	if len(msg.activities) == 0 {
		m.notice = "You have no activities in this pact yet.\nAdd one with: pact activity add " + m.week.Pact.ID
		return m, nil
	}
	m.logForm = &forms.LogFields{Date: msg.date}
	if len(msg.activities) == 1 {
		m.logForm.ActivityID = msg.activities[0].ID
	}
	m.form = forms.Log(m.logForm, msg.activities)
	m.state = constants.StateAddLog
	return m, m.form.Init()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	filtering := m.state == constants.StatePacts && m.pactList.Filtering()
	if !filtering {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	switch m.state {
	case constants.StateWeek:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			next := m.startRefresh()
			return m, next
		case key.Matches(msg, m.keys.Add):
			return m, m.loadActivities(m.addLogDate())
		case key.Matches(msg, m.keys.Pacts):
			next := tea.Batch(m.setLoading(), m.loadOverview())
			return m, next
		}
		var cmd tea.Cmd
		m.weekView, cmd = m.weekView.Update(msg)
		return m, cmd

	case constants.StatePacts:
		if !filtering && key.Matches(msg, m.keys.Back) && m.loaded {
			m.state = constants.StateWeek
			return m, nil
		}
		var cmd tea.Cmd
		m.pactList, cmd = m.pactList.Update(msg)
		return m, cmd

	case constants.StateLogDetail:
		if key.Matches(msg, m.keys.Back, m.keys.Enter) {
			m.state = constants.StateWeek
		}
		return m, nil

	case constants.StateError:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			return m.retry()
		case key.Matches(msg, m.keys.Back) && m.loaded:
			m.err = nil
			m.state = constants.StateWeek
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return m.abortForm()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm(cmd)
	case huh.StateAborted:
		return m.abortForm()
	}
	return m, cmd
}

func (m Model) submitForm(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateSignup:
		next := tea.Batch(cmd, m.setLoading(), m.signup(*m.signupForm))
		return m, next
	case constants.StateAddLog:
		m.state = constants.StateWeek
		next := tea.Batch(cmd, m.weekView.SetRefreshing(true), m.createLog(*m.logForm))
		return m, next
	}
	return m, cmd
}

func (m Model) abortForm() (tea.Model, tea.Cmd) {
	if m.state == constants.StateSignup {
		// Nothing works without an account.
		m.quitting = true
		return m, tea.Quit
	}
	m.state = constants.StateWeek
	return m, nil
}

func (m Model) startSignup(in *models.CreateUserInput) (tea.Model, tea.Cmd) {
	if in == nil {
		in = &models.CreateUserInput{}
	}
	m.signupForm = in
	m.form = forms.Signup(in)
	m.state = constants.StateSignup
	return m, m.form.Init()
}

// fail shows a foreground error. Transport failures also start probing so the
// screen recovers on its own once the server is back.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, session.ErrNoIdentity) {
		return m.startSignup(nil)
	}
	logger.Error("Request failed", "error", err)
	m.err = err
	m.state = constants.StateError
	next := m.noteOffline(err)
	return m, next
}

func (m Model) retry() (tea.Model, tea.Cmd) {
	m.err = nil
	if m.loaded {
		next := tea.Batch(m.setLoading(), m.loadWeek(m.week.Pact.ID))
		return m, next
	}
	next := tea.Batch(m.setLoading(), m.loadIdentity())
	return m, next
}

// noteOffline marks the model offline on transport errors and schedules a
// probe unless one is already pending.
func (m *Model) noteOffline(err error) tea.Cmd {
	if !api.IsTransport(err) {
		return nil
	}
	m.offline = true
	if m.probing {
		return nil
	}
	m.probing = true
	return probeAfter(m.probeInterval())
}

func (m *Model) startRefresh() tea.Cmd {
	return tea.Batch(m.weekView.SetRefreshing(true), m.refreshLogs())
}

func (m *Model) setLoading() tea.Cmd {
	m.state = constants.StateLoading
	return m.spinner.Tick
}

// addLogDate is the selected day, or today when a future day is selected.
func (m Model) addLogDate() string {
	today := utils.TodayKey(m.svc.Location(), m.svc.Today())
	if c, ok := m.weekView.SelectedDay(); ok && c.Day.Key <= today {
		return c.Day.Key
	}
	return today
}
