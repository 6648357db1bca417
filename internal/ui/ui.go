package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the form until the user quits or ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	program := tea.NewProgram(
		NewModel(ctx, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run reminder UI: %w", err)
	}

	return nil
}
