package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wamashudu/tasktrack/internal/model"
)

func testConfig(url string) Config {
	return Config{
		BaseURL: url,
		Timeout: 5 * time.Second,
		Logger:  zerolog.Nop(),
	}
}

func TestListSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		json.NewEncoder(w).Encode([]model.Task{})
	}))
	defer srv.Close()

	cred := NewCredential()
	cred.Set("token-abc")
	client := NewTaskClient(testConfig(srv.URL), cred)

	_, err := client.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", gotAuth)
}

func TestListOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]model.Task{})
	}))
	defer srv.Close()

	client := NewTaskClient(testConfig(srv.URL), NewCredential())

	_, err := client.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestListForwardsFilters(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode([]model.Task{})
	}))
	defer srv.Close()

	client := NewTaskClient(testConfig(srv.URL), NewCredential())

	filters := &model.TaskFilters{
		Status:        model.StatusInProgress,
		DueDateBefore: "2026-12-31",
		DueDateAfter:  "2026-01-01",
		Search:        "  report ",
	}
	_, err := client.List(context.Background(), filters)
	require.NoError(t, err)

	assert.Equal(t, "IN_PROGRESS", gotQuery.Get("status"))
	assert.Equal(t, "2026-12-31", gotQuery.Get("dueDateBefore"))
	assert.Equal(t, "2026-01-01", gotQuery.Get("dueDateAfter"))
	assert.Equal(t, "report", gotQuery.Get("search"))
	assert.False(t, gotQuery.Has("assignedUserId"))
}

func TestBuildTaskQueryOmitsEmptyFilters(t *testing.T) {
	assert.Nil(t, buildTaskQuery(nil))
	assert.Nil(t, buildTaskQuery(&model.TaskFilters{}))
	assert.Nil(t, buildTaskQuery(&model.TaskFilters{Search: "   "}))

	q := buildTaskQuery(&model.TaskFilters{AssignedUserID: 7})
	require.NotNil(t, q)
	assert.Equal(t, "7", q.Get("assignedUserId"))
}

func TestErrorResponseMapsToAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"message": "Task not found"})
	}))
	defer srv.Close()

	client := NewTaskClient(testConfig(srv.URL), NewCredential())

	_, err := client.Get(context.Background(), 42)
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Task not found", apiErr.Message)
	assert.False(t, IsAuthExpired(err))
}

func TestErrorResponseWithoutBodyUsesStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewTaskClient(testConfig(srv.URL), NewCredential())

	_, err := client.Get(context.Background(), 1)
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "HTTP 400: Bad Request", apiErr.Message)
}

func TestUnauthorizedEscalatesAndNotifiesObserver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "Token expired"})
	}))
	defer srv.Close()

	client := NewTaskClient(testConfig(srv.URL), NewCredential())

	var observed *AuthExpiredError
	client.OnAuthExpired(func(e *AuthExpiredError) { observed = e })

	_, err := client.List(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsAuthExpired(err))

	require.NotNil(t, observed)
	assert.Equal(t, http.StatusUnauthorized, observed.Status)
	assert.Equal(t, "Token expired", observed.Message)
}

func TestUserNotFoundEscalates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"message": "User not found with username: ghost"})
	}))
	defer srv.Close()

	client := NewTaskClient(testConfig(srv.URL), NewCredential())

	_, err := client.List(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsAuthExpired(err))
}

func TestOtherServerErrorDoesNotEscalate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"message": "database unavailable"})
	}))
	defer srv.Close()

	client := NewTaskClient(testConfig(srv.URL), NewCredential())

	notified := false
	client.OnAuthExpired(func(*AuthExpiredError) { notified = true })

	_, err := client.List(context.Background(), nil)
	require.Error(t, err)
	assert.False(t, IsAuthExpired(err))
	assert.True(t, IsAPIError(err))
	assert.False(t, notified)
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/tasks/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewTaskClient(testConfig(srv.URL), NewCredential())

	require.NoError(t, client.Delete(context.Background(), 9))
}

func TestAssignPostsToAssignPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks/3/assign/7", r.URL.Path)
		json.NewEncoder(w).Encode(model.Task{ID: 3, Title: "t", Status: model.StatusNew})
	}))
	defer srv.Close()

	client := NewTaskClient(testConfig(srv.URL), NewCredential())

	task, err := client.Assign(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), task.ID)
}

func TestUpdateOmitsNilFields(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(model.Task{ID: 5})
	}))
	defer srv.Close()

	client := NewTaskClient(testConfig(srv.URL), NewCredential())

	status := model.StatusCompleted
	_, err := client.Update(context.Background(), 5, UpdateTaskRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"status": "COMPLETED"}, gotBody)
}
