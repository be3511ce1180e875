package model

// TaskStatus is the server-side lifecycle state of a task.
type TaskStatus string

const (
	StatusNew        TaskStatus = "NEW"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
	StatusDelayed    TaskStatus = "DELAYED"
	StatusOverdue    TaskStatus = "OVERDUE"
)

// AllStatuses lists every task status in display order.
var AllStatuses = []TaskStatus{
	StatusNew,
	StatusInProgress,
	StatusCompleted,
	StatusDelayed,
	StatusOverdue,
}

// Label returns the human-readable form of a status.
func (s TaskStatus) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusDelayed:
		return "Delayed"
	case StatusOverdue:
		return "Overdue"
	default:
		return string(s)
	}
}

// Task is a single work item as returned by the task endpoint.
// Identity is the numeric ID; the collection holds at most one entry per ID.
type Task struct {
	// ID is the server-assigned unique identifier.
	ID int64 `json:"id"`

	// Title is the short summary of the task.
	Title string `json:"title"`

	// Description is the full body text.
	Description string `json:"description"`

	// Status is the lifecycle state (use the Status* constants).
	Status TaskStatus `json:"status"`

	// DueDate is when the task is due; nil when the task has no deadline.
	DueDate *Date `json:"dueDate,omitempty"`

	// CreatedDate is when the task was created on the server.
	CreatedDate Date `json:"createdDate"`

	// AssignedUserID identifies the assignee; nil when unassigned.
	AssignedUserID *int64 `json:"assignedUserId,omitempty"`

	// AssignedUserName is the assignee's display name; nil when unassigned.
	AssignedUserName *string `json:"assignedUserName,omitempty"`
}

// TaskFilters is the ephemeral query descriptor for task list views.
// Status is forwarded to the server; Search and the due-date bounds are
// also sent as query parameters but re-applied client-side against
// whatever the server returned.
type TaskFilters struct {
	Status         TaskStatus
	DueDateBefore  string // YYYY-MM-DD, empty when unset
	DueDateAfter   string // YYYY-MM-DD, empty when unset
	AssignedUserID int64  // 0 when unset
	Search         string
}

// IsZero reports whether no filter field is set.
func (f TaskFilters) IsZero() bool {
	return f == TaskFilters{}
}
