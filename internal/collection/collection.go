// Package collection owns the in-memory set of tasks and the request
// lifecycles that mutate it. Every operation follows the same two-phase
// shape: a start that flips the loading flag, then a success that
// applies one collection mutation or an error that stores a message and
// leaves the collection untouched.
package collection

import (
	"github.com/wamashudu/tasktrack/internal/model"
)

// State is the task collection plus the shared request flags. The flags
// are last-writer-wins across overlapping operations; see the manager
// docs for the accepted race.
type State struct {
	Tasks     []model.Task
	IsLoading bool
	Error     string
}

// action is the sealed set of collection state transitions.
type action interface {
	isCollectionAction()
}

// opStart begins any request lifecycle: loading on, error cleared, the
// collection untouched.
type opStart struct{}

// fetchSuccess replaces the whole collection with the server's ordering.
type fetchSuccess struct {
	tasks []model.Task
}

// createSuccess appends the stored task to the end of the collection.
type createSuccess struct {
	task model.Task
}

// updateSuccess replaces the entry whose id matches. When no entry
// matches, the collection is left unchanged (a deliberate silent no-op).
type updateSuccess struct {
	task model.Task
}

// deleteSuccess removes the entry with the given id.
type deleteSuccess struct {
	id int64
}

// opError ends any request lifecycle with a stored message.
type opError struct {
	message string
}

// clearError dismisses the stored error without touching anything else.
type clearError struct{}

func (opStart) isCollectionAction()       {}
func (fetchSuccess) isCollectionAction()  {}
func (createSuccess) isCollectionAction() {}
func (updateSuccess) isCollectionAction() {}
func (deleteSuccess) isCollectionAction() {}
func (opError) isCollectionAction()       {}
func (clearError) isCollectionAction()    {}

// reduce applies an action to the collection state. Mutating actions
// copy the slice so published snapshots stay immutable.
func reduce(s State, a action) State {
	switch a := a.(type) {
	case opStart:
		s.IsLoading = true
		s.Error = ""
		return s

	case fetchSuccess:
		s.Tasks = a.tasks
		s.IsLoading = false
		s.Error = ""
		return s

	case createSuccess:
		tasks := make([]model.Task, 0, len(s.Tasks)+1)
		tasks = append(tasks, s.Tasks...)
		tasks = append(tasks, a.task)
		s.Tasks = tasks
		s.IsLoading = false
		s.Error = ""
		return s

	case updateSuccess:
		tasks := make([]model.Task, len(s.Tasks))
		for i, t := range s.Tasks {
			if t.ID == a.task.ID {
				tasks[i] = a.task
			} else {
				tasks[i] = t
			}
		}
		s.Tasks = tasks
		s.IsLoading = false
		s.Error = ""
		return s

	case deleteSuccess:
		tasks := make([]model.Task, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			if t.ID != a.id {
				tasks = append(tasks, t)
			}
		}
		s.Tasks = tasks
		s.IsLoading = false
		s.Error = ""
		return s

	case opError:
		s.IsLoading = false
		s.Error = a.message
		return s

	case clearError:
		s.Error = ""
		return s

	default:
		return s
	}
}
