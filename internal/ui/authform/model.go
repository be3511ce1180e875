// Package authform renders the sign-in and registration forms. All
// field rules run client-side before a submission message is emitted;
// an invalid form never produces a network call.
package authform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/wamashudu/tasktrack/internal/theme"
	"github.com/wamashudu/tasktrack/internal/validate"
)

// LoginSubmittedMsg carries validated sign-in credentials.
type LoginSubmittedMsg struct {
	Username string
	Password string
}

// RegisterSubmittedMsg carries a validated registration profile. The
// confirmation password stays inside the form; only the fields the
// endpoint wants leave it.
type RegisterSubmittedMsg struct {
	Username string
	Email    string
	Password string
}

// QuitRequestMsg is emitted when the user abandons the auth screen.
type QuitRequestMsg struct{}

// Mode selects which of the two forms is showing.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// bindings holds field values on the heap so huh's Value() pointers
// remain valid across Bubble Tea model copies.
type bindings struct {
	username        string
	email           string
	password        string
	confirmPassword string
}

// Model is the Bubble Tea model for the auth screen.
type Model struct {
	mode       Mode
	form       *huh.Form
	fb         *bindings
	submitting bool
	errMsg     string
	width      int
	height     int
}

// New creates the auth screen model in login mode.
func New(width, height int) Model {
	return Model{
		fb:     &bindings{},
		width:  width,
		height: height,
	}
}

// Start (re)builds the form for the current mode and returns its init
// command. The username survives mode switches and failed submissions.
func (m *Model) Start() tea.Cmd {
	m.submitting = false
	m.fb.password = ""
	m.fb.confirmPassword = ""
	if m.mode == ModeLogin {
		m.form = m.buildLoginForm()
	} else {
		m.form = m.buildRegisterForm()
	}
	return m.form.Init()
}

// ToggleMode switches between sign-in and registration and rebuilds.
func (m *Model) ToggleMode() tea.Cmd {
	if m.mode == ModeLogin {
		m.mode = ModeRegister
	} else {
		m.mode = ModeLogin
	}
	m.errMsg = ""
	return m.Start()
}

// Mode returns the current form mode.
func (m Model) Mode() Mode {
	return m.mode
}

// SetError displays a submission failure banner above the form.
func (m *Model) SetError(msg string) {
	m.errMsg = msg
	m.submitting = false
}

// SetSubmitting marks an in-flight auth call so the form shows progress.
func (m *Model) SetSubmitting(v bool) {
	m.submitting = v
}

// Update handles messages for the auth screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+r":
			return m, m.ToggleMode()
		case "ctrl+c":
			return m, func() tea.Msg { return QuitRequestMsg{} }
		}
	}

	if m.form == nil || m.submitting {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.submitting = true
		return m, m.submitMsg()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return QuitRequestMsg{} }
	}

	return m, cmd
}

func (m Model) submitMsg() tea.Cmd {
	fb := *m.fb
	if m.mode == ModeLogin {
		return func() tea.Msg {
			return LoginSubmittedMsg{
				Username: fb.username,
				Password: fb.password,
			}
		}
	}
	return func() tea.Msg {
		return RegisterSubmittedMsg{
			Username: fb.username,
			Email:    fb.email,
			Password: fb.password,
		}
	}
}

// View renders the auth screen.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Sign In"
	hint := "ctrl+r create account | esc quit"
	if m.mode == ModeRegister {
		titleText = "Create Account"
		hint = "ctrl+r back to sign in | esc quit"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render(titleText)}

	if m.errMsg != "" {
		parts = append(parts, theme.ErrorBannerStyle.Render(m.errMsg))
	}
	if m.submitting {
		parts = append(parts, theme.HelpStyle.Render("Submitting..."))
	}

	parts = append(parts, m.form.View(), theme.HelpStyle.Render(hint))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("Enter your username").
				Value(&m.fb.username).
				Validate(validate.Username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Placeholder("Enter your password").
				Value(&m.fb.password).
				Validate(validate.Password),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m *Model) buildRegisterForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("Choose a username").
				Value(&m.fb.username).
				Validate(validate.NewUsername),
			huh.NewInput().
				Title("Email").
				Placeholder("Enter your email").
				Value(&m.fb.email).
				Validate(validate.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Placeholder("Create a password").
				Value(&m.fb.password).
				Validate(validate.NewPassword),
			huh.NewInput().
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Placeholder("Confirm your password").
				Value(&m.fb.confirmPassword).
				Validate(validate.ConfirmPassword(&m.fb.password)),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}
