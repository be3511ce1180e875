package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/wamashudu/tasktrack/internal/model"
)

// CreateTaskRequest is the payload for POST /tasks.
type CreateTaskRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DueDate     *model.Date `json:"dueDate,omitempty"`
}

// UpdateTaskRequest is the partial-update payload for PUT /tasks/{id}.
// Nil fields are omitted and left unchanged by the server.
type UpdateTaskRequest struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Status      *model.TaskStatus `json:"status,omitempty"`
	DueDate     *model.Date       `json:"dueDate,omitempty"`
}

// TaskClient talks to the task endpoint. Credential-invalid responses
// (401/403, or the server's invalid-user 500) are converted into
// AuthExpiredError and reported to the registered observer so the auth
// layer can force a sign-out.
type TaskClient struct {
	c             *client
	onAuthExpired func(*AuthExpiredError)
}

// NewTaskClient creates the task endpoint client sharing cred with the
// auth endpoint client.
func NewTaskClient(cfg Config, cred *Credential) *TaskClient {
	return &TaskClient{c: newClient(cfg, cred)}
}

// OnAuthExpired registers the observer invoked whenever a request fails
// with an invalid credential. At most one observer is held; registering
// replaces the previous one.
func (t *TaskClient) OnAuthExpired(fn func(*AuthExpiredError)) {
	t.onAuthExpired = fn
}

// List fetches tasks matching the given filters. Only status,
// dueDateBefore, dueDateAfter, assignedUserId, and search are forwarded;
// empty values are omitted entirely.
func (t *TaskClient) List(ctx context.Context, filters *model.TaskFilters) ([]model.Task, error) {
	var tasks []model.Task
	err := t.c.get(ctx, "/tasks", buildTaskQuery(filters), &tasks)
	if err != nil {
		return nil, t.escalate(err)
	}
	return tasks, nil
}

// Get fetches a single task by id.
func (t *TaskClient) Get(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	if err := t.c.get(ctx, "/tasks/"+formatID(id), nil, &task); err != nil {
		return nil, t.escalate(err)
	}
	return &task, nil
}

// Create posts a new task and returns the server's stored version.
func (t *TaskClient) Create(ctx context.Context, req CreateTaskRequest) (*model.Task, error) {
	var task model.Task
	if err := t.c.post(ctx, "/tasks", req, &task); err != nil {
		return nil, t.escalate(err)
	}
	return &task, nil
}

// Update applies a partial update and returns the full updated task.
func (t *TaskClient) Update(ctx context.Context, id int64, req UpdateTaskRequest) (*model.Task, error) {
	var task model.Task
	if err := t.c.put(ctx, "/tasks/"+formatID(id), req, &task); err != nil {
		return nil, t.escalate(err)
	}
	return &task, nil
}

// Delete removes a task. The server answers 204 on success.
func (t *TaskClient) Delete(ctx context.Context, id int64) error {
	if err := t.c.delete(ctx, "/tasks/"+formatID(id)); err != nil {
		return t.escalate(err)
	}
	return nil
}

// Assign sets the task's assignee and returns the updated task.
func (t *TaskClient) Assign(ctx context.Context, taskID, userID int64) (*model.Task, error) {
	var task model.Task
	path := fmt.Sprintf("/tasks/%d/assign/%d", taskID, userID)
	if err := t.c.post(ctx, path, nil, &task); err != nil {
		return nil, t.escalate(err)
	}
	return &task, nil
}

// Unassign clears the task's assignee and returns the updated task.
func (t *TaskClient) Unassign(ctx context.Context, taskID int64) (*model.Task, error) {
	var task model.Task
	path := fmt.Sprintf("/tasks/%d/unassign", taskID)
	if err := t.c.post(ctx, path, nil, &task); err != nil {
		return nil, t.escalate(err)
	}
	return &task, nil
}

// escalate inspects an error from the task endpoint and converts
// credential-invalid responses into AuthExpiredError, notifying the
// observer. Other errors pass through unchanged.
func (t *TaskClient) escalate(err error) error {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return err
	}

	if !credentialInvalid(apiErr) {
		return err
	}

	authErr := &AuthExpiredError{Status: apiErr.Status, Message: apiErr.Message}
	if t.onAuthExpired != nil {
		t.onAuthExpired(authErr)
	}
	return authErr
}

// credentialInvalid reports whether the response means the stored token
// is no longer usable: 401/403, or a 500 whose message names the
// invalid-user condition.
func credentialInvalid(e *APIError) bool {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return true
	}
	return e.Status == http.StatusInternalServerError &&
		strings.Contains(e.Message, "User not found")
}

// buildTaskQuery maps filters to query parameters, omitting unset values.
func buildTaskQuery(filters *model.TaskFilters) url.Values {
	if filters == nil {
		return nil
	}

	q := url.Values{}
	if filters.Status != "" {
		q.Set("status", string(filters.Status))
	}
	if filters.DueDateBefore != "" {
		q.Set("dueDateBefore", filters.DueDateBefore)
	}
	if filters.DueDateAfter != "" {
		q.Set("dueDateAfter", filters.DueDateAfter)
	}
	if filters.AssignedUserID > 0 {
		q.Set("assignedUserId", formatID(filters.AssignedUserID))
	}
	if s := strings.TrimSpace(filters.Search); s != "" {
		q.Set("search", s)
	}
	if len(q) == 0 {
		return nil
	}
	return q
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
