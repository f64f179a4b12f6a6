package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/ui"
	"github.com/urfave/cli/v3"
)

// Browse launches the interactive terminal UI over the catalog.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureLibrary(cmd); err != nil {
		return err
	}

	model := ui.NewModel(r.library)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
