// Package view derives presentation data from the task collection: the
// client-side filtered sequence, summary statistics, and display
// predicates. It holds no state of its own.
package view

import (
	"iter"
	"strings"
	"time"

	"github.com/wamashudu/tasktrack/internal/model"
)

// Filtered returns a lazy, restartable sequence of the tasks matching
// the client-side filters, preserving the input order. Search is a
// case-insensitive substring match against title or description (either
// field matching admits the task). The due-date bounds apply only to
// tasks that have a due date; a task without one is excluded from any
// date-bounded query. Status filtering is not re-applied here: the
// server already narrowed by status, and that split is deliberate.
func Filtered(tasks []model.Task, filters model.TaskFilters) iter.Seq[model.Task] {
	search := strings.ToLower(strings.TrimSpace(filters.Search))

	var before, after time.Time
	if filters.DueDateBefore != "" {
		if d, err := model.ParseDate(filters.DueDateBefore); err == nil {
			before = d.Time
		}
	}
	if filters.DueDateAfter != "" {
		if d, err := model.ParseDate(filters.DueDateAfter); err == nil {
			after = d.Time
		}
	}

	return func(yield func(model.Task) bool) {
		for _, t := range tasks {
			if !matchesSearch(t, search) {
				continue
			}
			if !matchesDateBounds(t, before, after) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func matchesSearch(t model.Task, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search)
}

func matchesDateBounds(t model.Task, before, after time.Time) bool {
	if before.IsZero() && after.IsZero() {
		return true
	}
	if t.DueDate == nil {
		return false
	}
	due := t.DueDate.Time
	if !before.IsZero() && due.After(before) {
		return false
	}
	if !after.IsZero() && due.Before(after) {
		return false
	}
	return true
}

// Stats summarizes a filtered sequence. Overdue counts tasks the server
// marked OVERDUE; it is not recomputed from due dates here.
type Stats struct {
	Total      int
	Completed  int
	InProgress int
	Overdue    int
}

// Summarize computes stats over the sequence in one pass.
func Summarize(tasks iter.Seq[model.Task]) Stats {
	var s Stats
	for t := range tasks {
		s.Total++
		switch t.Status {
		case model.StatusCompleted:
			s.Completed++
		case model.StatusInProgress:
			s.InProgress++
		case model.StatusOverdue:
			s.Overdue++
		}
	}
	return s
}

// IsOverdue reports whether the task's due date lies strictly before
// today and the task is not completed. It decorates single-task display
// only; the Overdue stat trusts the server's status instead.
func IsOverdue(t model.Task, now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Time.Before(today) && t.Status != model.StatusCompleted
}
