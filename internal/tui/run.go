package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run plays sess in the terminal until the player quits.
func Run(ctx context.Context, sess Session, in io.Reader, out io.Writer) error {
	m := newPlayModel(ctx, sess)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}
