package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
