package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wamashudu/tasktrack/internal/model"
	"github.com/wamashudu/tasktrack/internal/theme"
	"github.com/wamashudu/tasktrack/internal/view"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering. The list's
// own filtering is disabled; search goes through TaskFilters instead.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// ItemDelegate implements list.ItemDelegate for rendering task lines.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	t := ti.Task

	statusBadge := theme.StatusStyle(t.Status).Render(t.Status.Label())

	dueStr := ""
	if t.DueDate != nil {
		dueStr = " due " + t.DueDate.Time.Format("Jan 02")
		if view.IsOverdue(t, time.Now()) {
			dueStr = theme.OverdueStyle.Render(dueStr + " !")
		} else {
			dueStr = lipgloss.NewStyle().Foreground(theme.ColorGray).Render(dueStr)
		}
	}

	assigneeStr := ""
	if t.AssignedUserName != nil && *t.AssignedUserName != "" {
		assigneeStr = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" @" + *t.AssignedUserName)
	}

	line := fmt.Sprintf("%s %s%s%s", statusBadge, t.Title, dueStr, assigneeStr)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
