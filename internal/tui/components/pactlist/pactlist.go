package pactlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pact/internal/service"
	"github.com/julianstephens/pact/internal/utils"
)

// SelectPactMsg asks the parent to open the week view of a pact.
type SelectPactMsg struct {
	ID string
}

type Item struct {
	Summary service.PactSummary
}

func (i Item) Title() string { return i.Summary.Pact.Title }

func (i Item) Description() string {
	p := i.Summary.Pact
	desc := utils.FormatDateRange(p.StartDate, p.EndDate)
	if pr := i.Summary.Progress; pr != nil {
		desc += " · " + utils.FormatProgress(pr.ActivityDays, pr.TargetDays)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Summary.Pact.Title }

type KeyMap struct {
	Open key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open week"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(pacts []service.PactSummary, width, height int) Model {
	l := list.New(items(pacts), list.NewDefaultDelegate(), width, height)
	l.Title = "Your pacts"
	l.SetShowHelp(false)
	l.SetStatusBarItemName("pact", "pacts")
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open}
	}
	return Model{list: l, keys: keys}
}

func items(pacts []service.PactSummary) []list.Item {
	out := make([]list.Item, len(pacts))
	for i, p := range pacts {
		out[i] = Item{Summary: p}
	}
	return out
}

func (m *Model) SetPacts(pacts []service.PactSummary) {
	m.list.SetItems(items(pacts))
}

// Select moves the cursor to the pact with the given id, if listed.
func (m *Model) Select(id string) {
	for i, it := range m.list.Items() {
		if it.(Item).Summary.Pact.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Len() int { return len(m.list.Items()) }

// Filtering reports whether the user is typing a filter, when keys belong to
// the filter input.
func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Open) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Summary.Pact.ID
				return m, func() tea.Msg { return SelectPactMsg{ID: id} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "You have not joined any pacts yet.\n\nBrowse with 'pact pacts --all' and join with 'pact pact join ID'."
	}
	return m.list.View()
}
