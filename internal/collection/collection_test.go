package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wamashudu/tasktrack/internal/model"
)

func task(id int64, title string) model.Task {
	return model.Task{ID: id, Title: title, Status: model.StatusNew}
}

func TestReduceOpStartClearsErrorAndSetsLoading(t *testing.T) {
	s := reduce(State{Error: "old failure"}, opStart{})

	assert.True(t, s.IsLoading)
	assert.Empty(t, s.Error)
}

func TestReduceFetchSuccessReplacesCollection(t *testing.T) {
	initial := State{Tasks: []model.Task{task(1, "old")}, IsLoading: true}
	fetched := []model.Task{task(2, "b"), task(3, "c")}

	s := reduce(initial, fetchSuccess{tasks: fetched})

	assert.Equal(t, fetched, s.Tasks)
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Error)
}

func TestReduceCreateSuccessAppends(t *testing.T) {
	initial := State{Tasks: []model.Task{task(1, "a")}, IsLoading: true}

	s := reduce(initial, createSuccess{task: task(2, "b")})

	assert.Len(t, s.Tasks, 2)
	assert.Equal(t, int64(2), s.Tasks[1].ID)
	// The original slice is not shared.
	assert.Len(t, initial.Tasks, 1)
}

func TestReduceUpdateSuccessReplacesOnlyMatch(t *testing.T) {
	initial := State{Tasks: []model.Task{task(1, "a"), task(2, "b"), task(3, "c")}}
	updated := task(2, "b-renamed")
	updated.Status = model.StatusCompleted

	s := reduce(initial, updateSuccess{task: updated})

	assert.Equal(t, "a", s.Tasks[0].Title)
	assert.Equal(t, "b-renamed", s.Tasks[1].Title)
	assert.Equal(t, model.StatusCompleted, s.Tasks[1].Status)
	assert.Equal(t, "c", s.Tasks[2].Title)
}

func TestReduceUpdateSuccessWithUnknownIDIsANoOp(t *testing.T) {
	tasks := []model.Task{task(1, "a"), task(2, "b")}
	initial := State{Tasks: tasks, IsLoading: true}

	s := reduce(initial, updateSuccess{task: task(99, "ghost")})

	assert.Equal(t, tasks, s.Tasks)
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Error)
}

func TestReduceDeleteSuccessRemovesEntry(t *testing.T) {
	initial := State{Tasks: []model.Task{task(1, "a"), task(2, "b")}}

	s := reduce(initial, deleteSuccess{id: 1})

	assert.Len(t, s.Tasks, 1)
	assert.Equal(t, int64(2), s.Tasks[0].ID)
}

func TestReduceDeleteSuccessWithUnknownIDIsANoOp(t *testing.T) {
	initial := State{Tasks: []model.Task{task(1, "a")}}

	s := reduce(initial, deleteSuccess{id: 99})

	assert.Len(t, s.Tasks, 1)
}

func TestReduceOpErrorKeepsCollection(t *testing.T) {
	tasks := []model.Task{task(1, "a")}
	initial := State{Tasks: tasks, IsLoading: true}

	s := reduce(initial, opError{message: "Failed to fetch tasks"})

	assert.Equal(t, tasks, s.Tasks)
	assert.False(t, s.IsLoading)
	assert.Equal(t, "Failed to fetch tasks", s.Error)
}

func TestReduceClearErrorOnlyClearsError(t *testing.T) {
	tasks := []model.Task{task(1, "a")}
	initial := State{Tasks: tasks, Error: "boom"}

	s := reduce(initial, clearError{})

	assert.Empty(t, s.Error)
	assert.Equal(t, tasks, s.Tasks)
}
