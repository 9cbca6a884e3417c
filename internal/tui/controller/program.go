package controller

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the Bubble Tea program for m. Mouse support reports
// all motion so that panes can show hover.
func NewProgram(m *AppModel) *tea.Program {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if m.cfg.MouseEnabled() {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	return tea.NewProgram(m, opts...)
}

// Run starts the background producers and blocks until the program exits.
// A terminated producer is reported as the returned error.
func Run(m *AppModel) error {
	m.Start()
	defer func() {
		m.Stop()
		m.term.Wait()
	}()

	if _, err := NewProgram(m).Run(); err != nil {
		return err
	}
	return m.Err()
}
