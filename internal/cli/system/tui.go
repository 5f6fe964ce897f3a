package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pact/internal/cli"
	"github.com/julianstephens/pact/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	model := tui.New(ctx.Service, tui.WithContext(ctx.Background()))
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx.Background()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive view stopped: %w", err)
	}
	return nil
}
