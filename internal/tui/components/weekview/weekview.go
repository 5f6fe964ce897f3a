package weekview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/week"
)

// OpenLogMsg asks the parent to show a single log.
type OpenLogMsg struct {
	ID string
}

// AddLogMsg asks the parent to open the log form for a day.
type AddLogMsg struct {
	Date string
}

const (
	cardGap        = 1
	emptyToday     = "add activity log"
	emptyOtherDays = "No activity logged."
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("205"))

	todayHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	addStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	selectedLogStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
)

type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Today key.Binding
	Open  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
	}
}

// Model renders a pact's days either as a horizontal strip of cards (wide
// terminals) or as a vertical list inside a viewport (narrow terminals).
type Model struct {
	cells      []week.Cell
	today      int
	selected   int
	logIndex   int
	width      int
	height     int
	refreshing bool
	spinner    spinner.Model
	viewport   viewport.Model
	keys       KeyMap
	loc        *time.Location
}

// New builds an empty week view; log times are shown in loc.
func New(width, height int, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	m := Model{
		spinner:  s,
		viewport: viewport.New(width, height),
		keys:     DefaultKeyMap(),
		loc:      loc,
	}
	m.SetSize(width, height)
	return m
}

func (m Model) Keys() KeyMap { return m.keys }

// SetWeek replaces the days. A window of a different length (first load, or
// the week rolled over) reselects today; otherwise the selection is kept.
func (m *Model) SetWeek(cells []week.Cell, today int) {
	if len(cells) != len(m.cells) {
		m.selected = today
		m.logIndex = 0
	}
	m.cells = cells
	m.today = today
	m.clamp()
	m.sync()
}

func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.viewport.Width = width
	m.viewport.Height = height
	m.sync()
}

// SetRefreshing toggles the spinner on today's cell.
func (m *Model) SetRefreshing(on bool) tea.Cmd {
	m.refreshing = on
	if on {
		return m.spinner.Tick
	}
	return nil
}

func (m Model) Refreshing() bool { return m.refreshing }

// Wide reports whether days are laid out horizontally.
func (m Model) Wide() bool { return m.width >= constants.WideLayoutMinWidth }

func (m Model) Len() int { return len(m.cells) }

func (m Model) Width() int { return m.width }

// Selected returns the index of the selected day.
func (m Model) Selected() int { return m.selected }

// SelectedDay returns the selected cell, false when there are no days.
func (m Model) SelectedDay() (week.Cell, bool) {
	if m.selected < 0 || m.selected >= len(m.cells) {
		return week.Cell{}, false
	}
	return m.cells[m.selected], true
}

// SelectedLog returns the highlighted log of the selected day.
func (m Model) SelectedLog() (models.LogSummary, bool) {
	c, ok := m.SelectedDay()
	if !ok || m.logIndex < 0 || m.logIndex >= len(c.Logs) {
		return models.LogSummary{}, false
	}
	return c.Logs[m.logIndex], true
}

// Move shifts the selected day by delta, clamped to the window.
func (m *Model) Move(delta int) {
	m.selected += delta
	m.logIndex = 0
	m.clamp()
	m.sync()
}

// MoveLog shifts the highlighted log within the selected day.
func (m *Model) MoveLog(delta int) {
	m.logIndex += delta
	m.clamp()
	m.sync()
}

// SelectToday jumps back to today.
func (m *Model) SelectToday() {
	m.selected = m.today
	m.logIndex = 0
	m.clamp()
	m.sync()
}

func (m *Model) clamp() {
	if m.selected >= len(m.cells) {
		m.selected = len(m.cells) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	n := 0
	if c, ok := m.SelectedDay(); ok {
		n = len(c.Logs)
	}
	if m.logIndex >= n {
		m.logIndex = n - 1
	}
	if m.logIndex < 0 {
		m.logIndex = 0
	}
}

// blockHeight is the fixed line height of one day in the narrow layout, so
// that a day's offset is index*blockHeight.
func (m Model) blockHeight() int {
	most := 1
	for _, c := range m.cells {
		most = max(most, len(c.Logs))
	}
	return most + 2
}

// sync refreshes the viewport content and centres the selected day in it.
func (m *Model) sync() {
	if m.Wide() || len(m.cells) == 0 {
		return
	}
	m.viewport.SetContent(m.renderList())
	m.viewport.SetYOffset(week.CenterOffset(m.selected, m.blockHeight(), m.viewport.Height, len(m.cells)))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if !m.Wide() {
			m.sync()
		}
		return m, cmd

	case tea.KeyMsg:
		dayPrev, dayNext, logPrev, logNext := m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right
		if m.Wide() {
			dayPrev, dayNext, logPrev, logNext = m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down
		}
		switch {
		case key.Matches(msg, dayPrev):
			m.Move(-1)
		case key.Matches(msg, dayNext):
			m.Move(1)
		case key.Matches(msg, logPrev):
			m.MoveLog(-1)
		case key.Matches(msg, logNext):
			m.MoveLog(1)
		case key.Matches(msg, m.keys.Today):
			m.SelectToday()
		case key.Matches(msg, m.keys.Open):
			return m, m.open()
		}
	}
	return m, nil
}

func (m Model) open() tea.Cmd {
	if l, ok := m.SelectedLog(); ok {
		return func() tea.Msg { return OpenLogMsg{ID: l.ID} }
	}
	c, ok := m.SelectedDay()
	if !ok || !c.Day.IsToday {
		return nil
	}
	return func() tea.Msg { return AddLogMsg{Date: c.Day.Key} }
}

func (m Model) View() string {
	if len(m.cells) == 0 {
		return mutedStyle.Render("Loading days...")
	}
	if m.Wide() {
		return m.renderStrip()
	}
	return m.viewport.View()
}

func (m Model) renderStrip() string {
	visible := max(1, m.width/(constants.DayCardWidth+cardGap))
	start, end := week.VisibleRange(m.selected, visible, len(m.cells))

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		style := cardStyle
		if i == m.selected {
			style = selectedCardStyle
		}
		body := m.renderDay(i, constants.DayCardWidth-4)
		cards = append(cards, style.Width(constants.DayCardWidth-2).Render(body))
		if i < end-1 {
			cards = append(cards, strings.Repeat(" ", cardGap))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderList() string {
	h := m.blockHeight()
	blocks := make([]string, len(m.cells))
	for i := range m.cells {
		prefix := "  "
		if i == m.selected {
			prefix = "> "
		}
		body := m.renderDay(i, max(10, m.width-4))
		lines := strings.Split(body, "\n")
		for j := range lines {
			if j == 0 {
				lines[j] = prefix + lines[j]
			} else {
				lines[j] = "  " + lines[j]
			}
		}
		blocks[i] = lipgloss.NewStyle().Height(h).Render(strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n")
}

func (m Model) renderDay(i, width int) string {
	c := m.cells[i]
	header := c.Day.Date.Format("Mon Jan 2")
	if c.Day.IsToday {
		header = todayHeaderStyle.Render(header + " · today")
		if m.refreshing {
			header += " " + m.spinner.View()
		}
	} else {
		header = headerStyle.Render(header)
	}

	lines := []string{header}
	switch {
	case len(c.Logs) > 0:
		for j, l := range c.Logs {
			line := truncate(logLabel(l, m.loc), width)
			if i == m.selected && j == m.logIndex {
				line = selectedLogStyle.Render(line)
			}
			lines = append(lines, line)
		}
	case c.Day.IsToday:
		lines = append(lines, addStyle.Render("+ "+emptyToday))
	default:
		lines = append(lines, mutedStyle.Render(emptyOtherDays))
	}
	return strings.Join(lines, "\n")
}

func logLabel(l models.LogSummary, loc *time.Location) string {
	mark := "○"
	if l.Verified {
		mark = "✓"
	}
	label := l.Notes
	if label == "" {
		label = l.ActivityID
	}
	if !l.OccurredAt.IsZero() {
		return fmt.Sprintf("%s %s %s", mark, l.OccurredAt.In(loc).Format("15:04"), label)
	}
	return fmt.Sprintf("%s %s", mark, label)
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}
