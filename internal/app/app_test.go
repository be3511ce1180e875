package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/99designs/keyring"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wamashudu/tasktrack/internal/api"
	"github.com/wamashudu/tasktrack/internal/collection"
	"github.com/wamashudu/tasktrack/internal/credential"
	"github.com/wamashudu/tasktrack/internal/model"
	"github.com/wamashudu/tasktrack/internal/session"
	"github.com/wamashudu/tasktrack/internal/ui/tasklist"
)

func newTestApp(t *testing.T, authenticated bool) (Model, *session.Manager, *collection.Manager) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(api.AuthResponse{
				AccessToken:  "access-1",
				RefreshToken: "refresh-1",
				UserID:       1,
				Username:     "alice",
				Role:         model.RoleUser,
			})
		default:
			json.NewEncoder(w).Encode([]model.Task{})
		}
	}))
	t.Cleanup(srv.Close)

	apiCfg := api.Config{BaseURL: srv.URL, Timeout: 5 * time.Second, Logger: zerolog.Nop()}
	cred := api.NewCredential()
	tokens := credential.NewKeyringStore(keyring.NewArrayKeyring(nil))

	sess := session.NewManager(api.NewAuthClient(apiCfg, cred), tokens, cred, zerolog.Nop())
	taskClient := api.NewTaskClient(apiCfg, cred)
	taskClient.OnAuthExpired(sess.HandleAuthError)
	coll := collection.NewManager(taskClient, zerolog.Nop())

	if authenticated {
		require.NoError(t, sess.Login(context.Background(),
			api.LoginRequest{Username: "alice", Password: "pw"}))
	}

	cfg := model.AppConfig{
		Server:  model.ServerConfig{BaseURL: srv.URL, TimeoutSec: 5},
		Display: model.DisplayConfig{ErrorBannerSec: 5, SearchDebounceMs: 500},
	}
	return New(cfg, zerolog.Nop(), sess, coll), sess, coll
}

func update(t *testing.T, m Model, msg interface{}) (Model, interface{}) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	if cmd == nil {
		return nm, nil
	}
	return nm, cmd()
}

func TestStartsOnAuthViewWhenAnonymous(t *testing.T) {
	m, _, _ := newTestApp(t, false)
	assert.Equal(t, ViewAuth, m.view)
}

func TestStartsOnListViewWhenAuthenticated(t *testing.T) {
	m, _, _ := newTestApp(t, true)
	assert.Equal(t, ViewList, m.view)
}

func TestStaleDebounceTickIsIgnored(t *testing.T) {
	m, _, _ := newTestApp(t, true)

	// Two filter changes in a row; only the newest generation may fire.
	next, cmd := m.Update(tasklist.FiltersChangedMsg{Filters: model.TaskFilters{Search: "a"}})
	m = next.(Model)
	require.NotNil(t, cmd)
	next, cmd = m.Update(tasklist.FiltersChangedMsg{Filters: model.TaskFilters{Search: "ab"}})
	m = next.(Model)
	require.NotNil(t, cmd)

	next, stale := m.Update(debounceMsg{seq: 1, filters: model.TaskFilters{Search: "a"}})
	m = next.(Model)
	assert.Nil(t, stale)

	_, current := m.Update(debounceMsg{seq: 2, filters: model.TaskFilters{Search: "ab"}})
	assert.NotNil(t, current)
}

func TestLateResultAfterLogoutDoesNotResurrectListView(t *testing.T) {
	m, _, _ := newTestApp(t, true)

	next, _ := update(t, m, tasklist.LogoutRequestMsg{})
	m = next
	require.Equal(t, ViewAuth, m.view)

	// A fetch that was in flight when the user logged out completes now.
	next, _ = update(t, m, opDoneMsg{op: opFetch, err: nil})
	assert.Equal(t, ViewAuth, next.view)
}

func TestAuthExpiredResultSwitchesToAuthView(t *testing.T) {
	m, sess, _ := newTestApp(t, true)

	authErr := &api.AuthExpiredError{Status: http.StatusUnauthorized, Message: "Token expired"}
	sess.HandleAuthError(authErr)

	next, _ := update(t, m, opDoneMsg{op: opFetch, err: authErr})
	assert.Equal(t, ViewAuth, next.view)
	assert.False(t, sess.State().IsAuthenticated)
}

func TestBannerExpiryIgnoresStaleGeneration(t *testing.T) {
	m, _, _ := newTestApp(t, true)

	_ = m.showBanner("first")
	_ = m.showBanner("second")

	next, _ := m.Update(bannerExpiredMsg{seq: 1})
	m = next.(Model)
	assert.Equal(t, "second", m.banner)

	next, _ = m.Update(bannerExpiredMsg{seq: 2})
	m = next.(Model)
	assert.Empty(t, m.banner)
}

func TestHelpViewRoundTrip(t *testing.T) {
	m, _, _ := newTestApp(t, true)

	next, _ := m.Update(keyMsg('?'))
	m = next.(Model)
	require.Equal(t, ViewHelp, m.view)

	// Any key in the help view emits a close message; feed it back.
	m2, out := update(t, m, keyMsg('x'))
	m = m2
	require.NotNil(t, out)
	m2, _ = update(t, m, out)
	assert.Equal(t, ViewList, m2.view)
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{r}})
}
