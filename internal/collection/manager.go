package collection

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wamashudu/tasktrack/internal/api"
	"github.com/wamashudu/tasktrack/internal/model"
)

// Fallback messages when a failure carries no structured message.
const (
	msgFetchFailed  = "Failed to fetch tasks"
	msgCreateFailed = "Failed to create task"
	msgUpdateFailed = "Failed to update task"
	msgDeleteFailed = "Failed to delete task"
	msgAssignFailed = "Failed to assign task"
)

// Manager owns the task collection. Operations may overlap freely; there
// is no mutual exclusion between requests, so IsLoading and Error are
// last-writer-wins across concurrent operations. A fast delete finishing
// after a slow fetch starts will clear IsLoading from the fetch's point
// of view. That is an accepted limitation, not a guarantee.
type Manager struct {
	tasks *api.TaskClient
	log   zerolog.Logger

	mu    sync.Mutex
	state State
	subs  []func(State)
}

// NewManager wires the manager to the task endpoint client.
func NewManager(tasks *api.TaskClient, log zerolog.Logger) *Manager {
	return &Manager{tasks: tasks, log: log}
}

// State returns a snapshot of the current collection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to receive a state snapshot after every
// transition. Subscribers must not call back into the manager.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) dispatch(a action) {
	m.mu.Lock()
	m.state = reduce(m.state, a)
	snapshot := m.state
	subs := make([]func(State), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// fail records the error in state and hands it back to the caller so
// screen-specific handling (keep the form open, for instance) can react.
func (m *Manager) fail(err error, fallback string) error {
	msg := fallback
	if apiErr, ok := api.AsAPIError(err); ok && apiErr.Message != "" {
		msg = apiErr.Message
	}
	m.dispatch(opError{message: msg})
	return err
}

// FetchTasks replaces the collection with the server's result for the
// given filters. A nil filters fetches everything.
func (m *Manager) FetchTasks(ctx context.Context, filters *model.TaskFilters) error {
	m.dispatch(opStart{})

	tasks, err := m.tasks.List(ctx, filters)
	if err != nil {
		return m.fail(err, msgFetchFailed)
	}

	m.dispatch(fetchSuccess{tasks: tasks})
	return nil
}

// CreateTask posts a new task and appends the stored version. Title and
// description emptiness is the caller's concern; validation never
// reaches this manager.
func (m *Manager) CreateTask(ctx context.Context, req api.CreateTaskRequest) error {
	m.dispatch(opStart{})

	task, err := m.tasks.Create(ctx, req)
	if err != nil {
		return m.fail(err, msgCreateFailed)
	}

	m.dispatch(createSuccess{task: *task})
	return nil
}

// UpdateTask applies a partial update and replaces the matching entry
// with the server's full updated task.
func (m *Manager) UpdateTask(ctx context.Context, id int64, req api.UpdateTaskRequest) error {
	m.dispatch(opStart{})

	task, err := m.tasks.Update(ctx, id, req)
	if err != nil {
		return m.fail(err, msgUpdateFailed)
	}

	m.dispatch(updateSuccess{task: *task})
	return nil
}

// DeleteTask removes the entry by id. Confirmation is the caller's
// responsibility before invoking this.
func (m *Manager) DeleteTask(ctx context.Context, id int64) error {
	m.dispatch(opStart{})

	if err := m.tasks.Delete(ctx, id); err != nil {
		return m.fail(err, msgDeleteFailed)
	}

	m.dispatch(deleteSuccess{id: id})
	return nil
}

// AssignTask sets the assignee and applies the returned task like an
// update.
func (m *Manager) AssignTask(ctx context.Context, taskID, userID int64) error {
	m.dispatch(opStart{})

	task, err := m.tasks.Assign(ctx, taskID, userID)
	if err != nil {
		return m.fail(err, msgAssignFailed)
	}

	m.dispatch(updateSuccess{task: *task})
	return nil
}

// UnassignTask clears the assignee and applies the returned task like an
// update.
func (m *Manager) UnassignTask(ctx context.Context, taskID int64) error {
	m.dispatch(opStart{})

	task, err := m.tasks.Unassign(ctx, taskID)
	if err != nil {
		return m.fail(err, msgAssignFailed)
	}

	m.dispatch(updateSuccess{task: *task})
	return nil
}

// ClearError dismisses the stored error synchronously.
func (m *Manager) ClearError() {
	m.dispatch(clearError{})
}
