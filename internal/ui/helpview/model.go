// Package helpview renders the expanded keybinding reference.
package helpview

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wamashudu/tasktrack/internal/keys"
	"github.com/wamashudu/tasktrack/internal/theme"
)

// CloseMsg is emitted when the user dismisses the help view.
type CloseMsg struct{}

// Model is the Bubble Tea model for the help screen.
type Model struct {
	help   help.Model
	keyMap *keys.KeyMap
	width  int
}

// New creates the help screen model.
func New(keyMap *keys.KeyMap, width int) Model {
	h := help.New()
	h.ShowAll = true
	h.Width = width
	return Model{
		help:   h,
		keyMap: keyMap,
		width:  width,
	}
}

// SetSize updates the view width.
func (m *Model) SetSize(width int) {
	m.width = width
	m.help.Width = width
}

// Update handles messages for the help screen. Any key closes it.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, func() tea.Msg { return CloseMsg{} }
	}
	return m, nil
}

// View renders the help screen.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Keyboard Shortcuts")

	body := m.help.View(m.keyMap)

	hint := theme.HelpStyle.Render("press any key to return")

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body, "", hint))
}
