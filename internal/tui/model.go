// Package tui is the interactive week view: pick a pact, browse its days,
// open logs and record new ones.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/forms"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/service"
	"github.com/julianstephens/pact/internal/session"
	"github.com/julianstephens/pact/internal/tui/components/pactlist"
	"github.com/julianstephens/pact/internal/tui/components/weekview"
)

type Model struct {
	svc        *service.Service
	ctx        context.Context
	probeEvery time.Duration

	state   constants.SessionState
	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	member   session.Member
	week     service.Week
	loaded   bool
	weekView weekview.Model
	pactList pactlist.Model
	log      models.LogDetail

	form       *huh.Form
	signupForm *models.CreateUserInput
	logForm    *forms.LogFields

	err     error
	notice  string // blocks the screen until dismissed
	offline bool
	probing bool

	quitting bool
	width    int
	height   int
}

type Option func(*Model)

// WithContext bounds every request the model makes.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithProbeInterval overrides how often the server is probed while offline.
func WithProbeInterval(d time.Duration) Option {
	return func(m *Model) { m.probeEvery = d }
}

func New(svc *service.Service, opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		svc:      svc,
		ctx:      context.Background(),
		state:    constants.StateLoading,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		weekView: weekview.New(0, 0, svc.Location()),
		pactList: pactlist.New(nil, 0, 0),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadIdentity())
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateWeek:
		keys = append(keys, m.keys.Enter, m.keys.Add, m.keys.Refresh, m.keys.Pacts, m.weekView.Keys().Today)
	case constants.StatePacts:
		keys = append(keys, m.keys.Enter, m.keys.Back)
	case constants.StateLogDetail:
		keys = append(keys, m.keys.Back)
	case constants.StateError:
		keys = append(keys, m.keys.Refresh)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.Help, m.keys.Back}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateWeek:
		actions = []key.Binding{m.keys.Add, m.keys.Refresh, m.keys.Pacts, m.weekView.Keys().Today}
	case constants.StateError:
		actions = []key.Binding{m.keys.Refresh}
	}
	return [][]key.Binding{global, navigation, actions}
}

// contentHeight is what is left for the active screen after the header and
// help line.
func (m Model) contentHeight() int {
	return max(0, m.height-6)
}
