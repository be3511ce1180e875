// Package taskform renders the create/edit task form. Title and
// description are required here, so the collection manager never sees
// an empty payload.
package taskform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/wamashudu/tasktrack/internal/api"
	"github.com/wamashudu/tasktrack/internal/model"
	"github.com/wamashudu/tasktrack/internal/theme"
	"github.com/wamashudu/tasktrack/internal/validate"
)

// TaskCreatedMsg is dispatched when the create form is submitted.
type TaskCreatedMsg struct {
	Req api.CreateTaskRequest
}

// TaskUpdatedMsg is dispatched when the edit form is submitted.
type TaskUpdatedMsg struct {
	ID  int64
	Req api.UpdateTaskRequest
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

// bindings holds form field values on the heap so huh's Value()
// pointers remain valid across Bubble Tea model copies.
type bindings struct {
	title       string
	description string
	dueDate     string
	status      model.TaskStatus
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *bindings
	editMode bool
	editID   int64
	errMsg   string
	width    int
	height   int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &bindings{status: model.StatusNew},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.errMsg = ""
	m.fb.title = ""
	m.fb.description = ""
	m.fb.dueDate = ""
	m.fb.status = model.StatusNew
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.editID = task.ID
	m.errMsg = ""
	m.fb.title = task.Title
	m.fb.description = task.Description
	m.fb.status = task.Status
	if task.DueDate != nil {
		m.fb.dueDate = task.DueDate.DateOnly()
	} else {
		m.fb.dueDate = ""
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError shows a submission failure above the form and reopens it so
// the user's input is not lost.
func (m *Model) SetError(msg string) tea.Cmd {
	m.errMsg = msg
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render(titleText)}
	if m.errMsg != "" {
		parts = append(parts, theme.ErrorBannerStyle.Render(m.errMsg))
	}
	parts = append(parts, m.form.View())

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validate.TaskTitle),
		huh.NewText().
			Title("Description").
			Placeholder("Details...").
			Value(&m.fb.description).
			Validate(validate.TaskDescription),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validate.OptionalDate),
	}

	if m.editMode {
		opts := make([]huh.Option[model.TaskStatus], len(model.AllStatuses))
		for i, s := range model.AllStatuses {
			opts[i] = huh.NewOption(s.Label(), s)
		}
		fields = append(fields,
			huh.NewSelect[model.TaskStatus]().
				Title("Status").
				Options(opts...).
				Value(&m.fb.status),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	fb := *m.fb

	var due *model.Date
	if fb.dueDate != "" {
		if d, err := model.ParseDate(fb.dueDate); err == nil {
			due = &d
		}
	}

	if m.editMode {
		id := m.editID
		title := fb.title
		description := fb.description
		status := fb.status
		return func() tea.Msg {
			return TaskUpdatedMsg{
				ID: id,
				Req: api.UpdateTaskRequest{
					Title:       &title,
					Description: &description,
					Status:      &status,
					DueDate:     due,
				},
			}
		}
	}

	return func() tea.Msg {
		return TaskCreatedMsg{
			Req: api.CreateTaskRequest{
				Title:       fb.title,
				Description: fb.description,
				DueDate:     due,
			},
		}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
