// Package tasklist renders the main task board: a navigable list with
// server-backed filters, a derived statistics line, and shortcuts for
// every task operation.
package tasklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wamashudu/tasktrack/internal/collection"
	"github.com/wamashudu/tasktrack/internal/keys"
	"github.com/wamashudu/tasktrack/internal/model"
	"github.com/wamashudu/tasktrack/internal/theme"
	"github.com/wamashudu/tasktrack/internal/view"
)

// FiltersChangedMsg signals that the active filters changed and the
// task list should be refetched.
type FiltersChangedMsg struct {
	Filters model.TaskFilters
}

// RefreshRequestMsg asks for an immediate refetch with current filters.
type RefreshRequestMsg struct{}

// NewRequestMsg asks to open the create-task form.
type NewRequestMsg struct{}

// EditRequestMsg asks to open the edit form for the selected task.
type EditRequestMsg struct {
	Task model.Task
}

// DeleteRequestMsg asks to delete a task after confirmation.
type DeleteRequestMsg struct {
	ID int64
}

// CompleteRequestMsg asks to mark a task completed.
type CompleteRequestMsg struct {
	ID int64
}

// AssignRequestMsg asks to assign the selected task to the session user.
type AssignRequestMsg struct {
	ID int64
}

// UnassignRequestMsg asks to clear the selected task's assignee.
type UnassignRequestMsg struct {
	ID int64
}

// LogoutRequestMsg asks to end the session.
type LogoutRequestMsg struct{}

// mode is the input mode of the list view.
type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeDates
	modeConfirmDelete
	modeDetail
)

// statusCycle is the order the status filter steps through, with the
// empty string meaning no status filter.
var statusCycle = []model.TaskStatus{
	"",
	model.StatusNew,
	model.StatusInProgress,
	model.StatusCompleted,
	model.StatusDelayed,
	model.StatusOverdue,
}

// Model is the Bubble Tea model for the task list view.
type Model struct {
	list    list.Model
	keyMap  *keys.KeyMap
	mode    mode
	filters model.TaskFilters

	searchInput textinput.Model
	afterInput  textinput.Model
	beforeInput textinput.Model

	tasks   []model.Task
	stats   view.Stats
	loading bool

	confirmID    int64
	confirmTitle string

	width  int
	height int
}

// New creates the task list model.
func New(width, height int) Model {
	l := list.New(nil, ItemDelegate{}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.Prompt = "/ "
	search.CharLimit = 120

	after := textinput.New()
	after.Placeholder = "YYYY-MM-DD"
	after.Prompt = "from "
	after.CharLimit = 10

	before := textinput.New()
	before.Placeholder = "YYYY-MM-DD"
	before.Prompt = "to "
	before.CharLimit = 10

	return Model{
		list:        l,
		keyMap:      keys.DefaultKeyMap(),
		searchInput: search,
		afterInput:  after,
		beforeInput: before,
		width:       width,
		height:      height,
	}
}

// Filters returns the currently active filters.
func (m Model) Filters() model.TaskFilters {
	return m.filters
}

// Selected returns the task under the cursor, if any.
func (m Model) Selected() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// SetCollection replaces the displayed tasks from a collection snapshot.
func (m *Model) SetCollection(state collection.State) {
	m.tasks = state.Tasks
	m.loading = state.IsLoading
	m.rebuildItems()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, m.listHeight())
}

func (m *Model) rebuildItems() {
	var items []list.Item
	for t := range view.Filtered(m.tasks, m.filters) {
		items = append(items, TaskItem{Task: t})
	}
	m.stats = view.Summarize(view.Filtered(m.tasks, m.filters))
	m.list.SetItems(items)
	if m.list.Index() >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeDates:
		return m.updateDates(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	case modeDetail:
		return m.updateDetail(msg)
	}
	return m.updateNormal(msg)
}

func (m Model) updateNormal(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keyMap.Select):
		if _, ok := m.Selected(); ok {
			m.mode = modeDetail
		}
		return m, nil

	case key.Matches(keyMsg, m.keyMap.Search):
		m.mode = modeSearch
		m.searchInput.SetValue(m.filters.Search)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(keyMsg, m.keyMap.FilterDates):
		m.mode = modeDates
		m.afterInput.SetValue(m.filters.DueDateAfter)
		m.beforeInput.SetValue(m.filters.DueDateBefore)
		m.beforeInput.Blur()
		return m, m.afterInput.Focus()

	case key.Matches(keyMsg, m.keyMap.CycleStatus):
		m.filters.Status = nextStatus(m.filters.Status)
		m.rebuildItems()
		return m, filtersChanged(m.filters)

	case key.Matches(keyMsg, m.keyMap.ClearFilters):
		if m.filters.IsZero() {
			return m, nil
		}
		m.filters = model.TaskFilters{}
		m.rebuildItems()
		return m, filtersChanged(m.filters)

	case key.Matches(keyMsg, m.keyMap.Refresh):
		return m, func() tea.Msg { return RefreshRequestMsg{} }

	case key.Matches(keyMsg, m.keyMap.New):
		return m, func() tea.Msg { return NewRequestMsg{} }

	case key.Matches(keyMsg, m.keyMap.Edit):
		if task, ok := m.Selected(); ok {
			return m, func() tea.Msg { return EditRequestMsg{Task: task} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keyMap.Delete):
		if task, ok := m.Selected(); ok {
			m.mode = modeConfirmDelete
			m.confirmID = task.ID
			m.confirmTitle = task.Title
		}
		return m, nil

	case key.Matches(keyMsg, m.keyMap.Complete):
		if task, ok := m.Selected(); ok && task.Status != model.StatusCompleted {
			id := task.ID
			return m, func() tea.Msg { return CompleteRequestMsg{ID: id} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keyMap.Assign):
		if task, ok := m.Selected(); ok {
			id := task.ID
			return m, func() tea.Msg { return AssignRequestMsg{ID: id} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keyMap.Unassign):
		if task, ok := m.Selected(); ok && task.AssignedUserID != nil {
			id := task.ID
			return m, func() tea.Msg { return UnassignRequestMsg{ID: id} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keyMap.Logout):
		return m, func() tea.Msg { return LogoutRequestMsg{} }
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.mode = modeNormal
			m.searchInput.Blur()
			return m, nil
		case "esc":
			m.mode = modeNormal
			m.searchInput.Blur()
			if m.filters.Search != "" {
				m.filters.Search = ""
				m.rebuildItems()
				return m, filtersChanged(m.filters)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if v := m.searchInput.Value(); v != m.filters.Search {
		m.filters.Search = v
		m.rebuildItems()
		return m, tea.Batch(cmd, filtersChanged(m.filters))
	}
	return m, cmd
}

func (m Model) updateDates(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "shift+tab":
			if m.afterInput.Focused() {
				m.afterInput.Blur()
				return m, m.beforeInput.Focus()
			}
			m.beforeInput.Blur()
			return m, m.afterInput.Focus()
		case "enter":
			m.mode = modeNormal
			m.afterInput.Blur()
			m.beforeInput.Blur()
			after := strings.TrimSpace(m.afterInput.Value())
			before := strings.TrimSpace(m.beforeInput.Value())
			if !validDateField(after) || !validDateField(before) {
				return m, nil
			}
			if after == m.filters.DueDateAfter && before == m.filters.DueDateBefore {
				return m, nil
			}
			m.filters.DueDateAfter = after
			m.filters.DueDateBefore = before
			m.rebuildItems()
			return m, filtersChanged(m.filters)
		case "esc":
			m.mode = modeNormal
			m.afterInput.Blur()
			m.beforeInput.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.afterInput.Focused() {
		m.afterInput, cmd = m.afterInput.Update(msg)
	} else {
		m.beforeInput, cmd = m.beforeInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		id := m.confirmID
		m.mode = modeNormal
		m.confirmID = 0
		m.confirmTitle = ""
		return m, func() tea.Msg { return DeleteRequestMsg{ID: id} }
	case "n", "N", "esc":
		m.mode = modeNormal
		m.confirmID = 0
		m.confirmTitle = ""
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keyMap.Back), key.Matches(keyMsg, m.keyMap.Select):
		m.mode = modeNormal
	case key.Matches(keyMsg, m.keyMap.Edit):
		m.mode = modeNormal
		if task, ok := m.Selected(); ok {
			return m, func() tea.Msg { return EditRequestMsg{Task: task} }
		}
	}
	return m, nil
}

func (m Model) detailView() string {
	task, ok := m.Selected()
	if !ok {
		return ""
	}

	var lines []string
	lines = append(lines,
		lipgloss.NewStyle().Bold(true).Render(task.Title),
		theme.StatusStyle(task.Status).Render(task.Status.Label()),
		"",
		task.Description,
		"",
	)

	if task.DueDate != nil {
		due := "Due " + task.DueDate.Time.Format("Mon, Jan 2 2006")
		if view.IsOverdue(task, time.Now()) {
			due = theme.OverdueStyle.Render(due + " (overdue)")
		}
		lines = append(lines, due)
	}
	if !task.CreatedDate.IsZero() {
		lines = append(lines, theme.StatsStyle.Render(
			"Created "+task.CreatedDate.Time.Format("Mon, Jan 2 2006")))
	}
	if task.AssignedUserName != nil && *task.AssignedUserName != "" {
		lines = append(lines, "Assigned to "+*task.AssignedUserName)
	} else {
		lines = append(lines, theme.HelpStyle.Render("Unassigned"))
	}

	return theme.BorderStyle.Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// View renders the task list view.
func (m Model) View() string {
	if m.mode == modeDetail {
		return m.detailView()
	}

	var sections []string

	sections = append(sections, m.filterLine())

	switch m.mode {
	case modeSearch:
		sections = append(sections, m.searchInput.View())
	case modeDates:
		sections = append(sections, lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.afterInput.View(),
			"  ",
			m.beforeInput.View(),
		))
	case modeConfirmDelete:
		sections = append(sections, theme.ErrorBannerStyle.Render(
			fmt.Sprintf("Delete %q? (y/n)", m.confirmTitle),
		))
	}

	if m.loading && len(m.tasks) == 0 {
		sections = append(sections, theme.HelpStyle.Render("Loading tasks..."))
	} else if len(m.list.Items()) == 0 {
		sections = append(sections, theme.HelpStyle.Render("No tasks found."))
	} else {
		sections = append(sections, m.list.View())
	}

	sections = append(sections, m.statsLine())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// StatusHints returns the keyboard hints for the status bar.
func (m Model) StatusHints() string {
	switch m.mode {
	case modeSearch:
		return "enter apply | esc clear search"
	case modeDates:
		return "tab switch field | enter apply | esc cancel"
	case modeConfirmDelete:
		return "y confirm delete | n cancel"
	case modeDetail:
		return "e edit | esc back"
	}
	return "n new | e edit | d delete | x complete | a/u assign | / search | s status | f dates | c clear | r refresh | ? help"
}

func (m Model) filterLine() string {
	var parts []string
	if m.filters.Status != "" {
		parts = append(parts, "status: "+m.filters.Status.Label())
	}
	if m.filters.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.filters.Search))
	}
	if m.filters.DueDateAfter != "" {
		parts = append(parts, "from: "+m.filters.DueDateAfter)
	}
	if m.filters.DueDateBefore != "" {
		parts = append(parts, "to: "+m.filters.DueDateBefore)
	}
	if len(parts) == 0 {
		return theme.HelpStyle.Render("All tasks")
	}
	return theme.HelpStyle.Render("Filters: " + strings.Join(parts, " | "))
}

func (m Model) statsLine() string {
	s := fmt.Sprintf(
		"%d tasks | %d completed | %d in progress | %d overdue",
		m.stats.Total, m.stats.Completed, m.stats.InProgress, m.stats.Overdue,
	)
	if m.loading {
		s += " | refreshing..."
	}
	return theme.StatsStyle.Render(s)
}

func (m Model) listHeight() int {
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	return h
}

func filtersChanged(f model.TaskFilters) tea.Cmd {
	return func() tea.Msg { return FiltersChangedMsg{Filters: f} }
}

func nextStatus(current model.TaskStatus) model.TaskStatus {
	for i, s := range statusCycle {
		if s == current {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return ""
}

func validDateField(s string) bool {
	if s == "" {
		return true
	}
	_, err := model.ParseDate(s)
	return err == nil
}
