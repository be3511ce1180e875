package tasklist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wamashudu/tasktrack/internal/collection"
	"github.com/wamashudu/tasktrack/internal/model"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{r}})
}

func newModelWithTasks(tasks ...model.Task) Model {
	m := New(80, 24)
	m.SetCollection(collection.State{Tasks: tasks})
	return m
}

func TestCycleStatusFilterEmitsFilterChange(t *testing.T) {
	m := newModelWithTasks(model.Task{ID: 1, Title: "a", Status: model.StatusNew})

	m, cmd := m.Update(keyMsg('s'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(FiltersChangedMsg)
	require.True(t, ok)
	assert.Equal(t, model.StatusNew, msg.Filters.Status)
	assert.Equal(t, model.StatusNew, m.Filters().Status)
}

func TestCycleStatusFilterWrapsAround(t *testing.T) {
	m := newModelWithTasks()

	for range statusCycle {
		m, _ = m.Update(keyMsg('s'))
	}
	assert.Empty(t, m.Filters().Status)
}

func TestClearFiltersIsANoOpWhenNoneSet(t *testing.T) {
	m := newModelWithTasks()

	m, cmd := m.Update(keyMsg('c'))
	assert.Nil(t, cmd)
	assert.True(t, m.Filters().IsZero())
}

func TestClearFiltersResetsAndRefetches(t *testing.T) {
	m := newModelWithTasks()
	m, _ = m.Update(keyMsg('s'))

	m, cmd := m.Update(keyMsg('c'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(FiltersChangedMsg)
	require.True(t, ok)
	assert.True(t, msg.Filters.IsZero())
	assert.True(t, m.Filters().IsZero())
}

func TestSearchModeEmitsLiveFilterChanges(t *testing.T) {
	m := newModelWithTasks(
		model.Task{ID: 1, Title: "Apple"},
		model.Task{ID: 2, Title: "Banana"},
	)

	m, _ = m.Update(keyMsg('/'))
	m, cmd := m.Update(keyMsg('x'))
	require.NotNil(t, cmd)

	found := false
	switch got := cmd().(type) {
	case FiltersChangedMsg:
		assert.Equal(t, "x", got.Filters.Search)
		found = true
	case tea.BatchMsg:
		for _, c := range got {
			if fc, ok := c().(FiltersChangedMsg); ok {
				assert.Equal(t, "x", fc.Filters.Search)
				found = true
			}
		}
	}
	assert.True(t, found)

	// The client-side view narrows immediately, before any fetch.
	assert.Empty(t, m.list.Items())
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := newModelWithTasks(model.Task{ID: 7, Title: "doomed"})

	m, cmd := m.Update(keyMsg('d'))
	assert.Nil(t, cmd)

	m, cmd = m.Update(keyMsg('y'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(DeleteRequestMsg)
	require.True(t, ok)
	assert.Equal(t, int64(7), msg.ID)
}

func TestDeleteCanBeCancelled(t *testing.T) {
	m := newModelWithTasks(model.Task{ID: 7, Title: "spared"})

	m, _ = m.Update(keyMsg('d'))
	m, cmd := m.Update(keyMsg('n'))
	assert.Nil(t, cmd)

	// Back to normal mode; the next key is an ordinary action again.
	_, cmd = m.Update(keyMsg('r'))
	require.NotNil(t, cmd)
	_, ok := cmd().(RefreshRequestMsg)
	assert.True(t, ok)
}

func TestCompleteSkipsAlreadyCompletedTask(t *testing.T) {
	m := newModelWithTasks(model.Task{ID: 1, Title: "done", Status: model.StatusCompleted})

	_, cmd := m.Update(keyMsg('x'))
	assert.Nil(t, cmd)
}

func TestCompleteEmitsRequestForOpenTask(t *testing.T) {
	m := newModelWithTasks(model.Task{ID: 3, Title: "open", Status: model.StatusNew})

	_, cmd := m.Update(keyMsg('x'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(CompleteRequestMsg)
	require.True(t, ok)
	assert.Equal(t, int64(3), msg.ID)
}

func TestUnassignSkipsUnassignedTask(t *testing.T) {
	m := newModelWithTasks(model.Task{ID: 1, Title: "a"})

	_, cmd := m.Update(keyMsg('u'))
	assert.Nil(t, cmd)
}

func TestDetailModeOpensAndCloses(t *testing.T) {
	m := newModelWithTasks(model.Task{ID: 1, Title: "a", Description: "body"})

	m, _ = m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEnter}))
	assert.Equal(t, modeDetail, m.mode)
	assert.Contains(t, m.View(), "body")

	m, _ = m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEsc}))
	assert.Equal(t, modeNormal, m.mode)
}

func TestStatsLineSummarizesFilteredTasks(t *testing.T) {
	m := newModelWithTasks(
		model.Task{ID: 1, Title: "a", Status: model.StatusCompleted},
		model.Task{ID: 2, Title: "b", Status: model.StatusInProgress},
	)

	assert.Contains(t, m.View(), "2 tasks")
	assert.Contains(t, m.View(), "1 completed")
}
