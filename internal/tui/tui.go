// Package tui implements the interactive terminal surfaces: the signed-in
// admin dashboard and the public edition viewer.
package tui

import (
	"errors"

	"presskit-cli/internal/api"
	"presskit-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// RunDashboard starts the admin dashboard for the signed-in user and blocks
// until it exits.
func RunDashboard(client *api.Client, actor *model.User) error {
	if actor == nil {
		return errors.New("no signed-in user")
	}
	applyColorProfilePreference()

	m := newDashModel(client, *actor)
	p := tea.NewProgram(m, tea.WithAltScreen())
	// Debounced query applies fire on a timer goroutine; route them back
	// through the program loop.
	m.send = p.Send
	_, err := p.Run()
	return err
}

// RunViewer starts the read-only edition viewer. An empty date opens the
// latest published edition.
func RunViewer(client *api.Client, date string) error {
	applyColorProfilePreference()

	m := newViewerModel(client, date)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
