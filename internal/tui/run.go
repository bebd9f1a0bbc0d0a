package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the program and blocks until it exits or ctx is cancelled.
// Debounced chart work reaches the program through m's relay.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	m.relay.Attach(p)
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.destroyCharts()
	}
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
