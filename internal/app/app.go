// Package app wires the screens, managers, and endpoint clients into
// the root Bubble Tea model.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/wamashudu/tasktrack/internal/api"
	"github.com/wamashudu/tasktrack/internal/collection"
	"github.com/wamashudu/tasktrack/internal/keys"
	"github.com/wamashudu/tasktrack/internal/model"
	"github.com/wamashudu/tasktrack/internal/session"
	"github.com/wamashudu/tasktrack/internal/theme"
	"github.com/wamashudu/tasktrack/internal/ui"
	"github.com/wamashudu/tasktrack/internal/ui/authform"
	"github.com/wamashudu/tasktrack/internal/ui/helpview"
	"github.com/wamashudu/tasktrack/internal/ui/taskform"
	"github.com/wamashudu/tasktrack/internal/ui/tasklist"
)

// View identifies the active screen.
type View int

const (
	ViewAuth View = iota
	ViewList
	ViewTaskCreate
	ViewTaskEdit
	ViewHelp
)

// opKind distinguishes which collection operation a result belongs to,
// so failures land in the right place (form banner vs list banner).
type opKind int

const (
	opFetch opKind = iota
	opCreate
	opUpdate
	opDelete
	opAssign
	opUnassign
)

// authResultMsg reports a finished login or register call.
type authResultMsg struct {
	register bool
	err      error
}

// opDoneMsg reports a finished collection operation.
type opDoneMsg struct {
	op  opKind
	err error
}

// debounceMsg fires when a filter change has settled.
type debounceMsg struct {
	seq     int
	filters model.TaskFilters
}

// bannerExpiredMsg retires a stale error banner.
type bannerExpiredMsg struct {
	seq int
}

// Model is the root application model.
type Model struct {
	cfg    model.AppConfig
	log    zerolog.Logger
	keyMap *keys.KeyMap
	layout ui.Layout

	session    *session.Manager
	collection *collection.Manager

	view     View
	prevView View

	auth     authform.Model
	tasks    tasklist.Model
	taskForm taskform.Model
	help     helpview.Model

	banner      string
	bannerSeq   int
	debounceSeq int
}

// New builds the root model. Session restore must already have run; the
// starting view follows the restored session state.
func New(
	cfg model.AppConfig,
	log zerolog.Logger,
	sess *session.Manager,
	coll *collection.Manager,
) Model {
	keyMap := keys.DefaultKeyMap()

	m := Model{
		cfg:        cfg,
		log:        log,
		keyMap:     keyMap,
		layout:     ui.NewLayout(80, 24),
		session:    sess,
		collection: coll,
		auth:       authform.New(80, 24),
		tasks:      tasklist.New(80, 20),
		taskForm:   taskform.New(80, 24),
		help:       helpview.New(keyMap, 80),
		view:       ViewAuth,
	}

	if sess.State().IsAuthenticated {
		m.view = ViewList
	}
	return m
}

// Init starts the initial screen.
func (m Model) Init() tea.Cmd {
	if m.view == ViewList {
		return m.fetchCmd(m.tasks.Filters())
	}
	return m.auth.Start()
}

// Update is the root message handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case authResultMsg:
		return m.handleAuthResult(msg)

	case opDoneMsg:
		return m.handleOpDone(msg)

	case debounceMsg:
		if msg.seq != m.debounceSeq {
			return m, nil
		}
		return m, m.fetchCmd(msg.filters)

	case bannerExpiredMsg:
		if msg.seq == m.bannerSeq {
			m.banner = ""
			m.collection.ClearError()
		}
		return m, nil
	}

	switch m.view {
	case ViewAuth:
		return m.updateAuth(msg)
	case ViewList:
		return m.updateList(msg)
	case ViewTaskCreate, ViewTaskEdit:
		return m.updateTaskForm(msg)
	case ViewHelp:
		return m.updateHelp(msg)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.layout = ui.NewLayout(msg.Width, msg.Height)
	m.auth.SetSize(msg.Width, msg.Height)
	m.tasks.SetSize(m.layout.ContentWidth(), m.layout.ContentHeight())
	m.taskForm.SetSize(msg.Width, m.layout.ContentHeight())
	m.help.SetSize(msg.Width)
	return m
}

func (m Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.auth, cmd = m.auth.Update(msg)

	switch msg := msg.(type) {
	case authform.LoginSubmittedMsg:
		return m, m.loginCmd(msg)
	case authform.RegisterSubmittedMsg:
		return m, m.registerCmd(msg)
	case authform.QuitRequestMsg:
		return m, tea.Quit
	}
	return m, cmd
}

func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.auth.SetError(errorMessage(msg.err, "Authentication failed"))
		return m, m.auth.Start()
	}

	m.view = ViewList
	m.banner = ""
	m.collection.ClearError()
	return m, m.fetchCmd(m.tasks.Filters())
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(keyMsg, m.keyMap.Help):
			m.prevView = ViewList
			m.view = ViewHelp
			return m, nil
		case key.Matches(keyMsg, m.keyMap.Back):
			if m.banner != "" {
				m.banner = ""
				m.collection.ClearError()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.tasks, cmd = m.tasks.Update(msg)

	switch msg := msg.(type) {
	case tasklist.FiltersChangedMsg:
		m.debounceSeq++
		seq := m.debounceSeq
		filters := msg.Filters
		debounce := time.Duration(m.cfg.Display.SearchDebounceMs) * time.Millisecond
		return m, tea.Tick(debounce, func(time.Time) tea.Msg {
			return debounceMsg{seq: seq, filters: filters}
		})

	case tasklist.RefreshRequestMsg:
		return m, m.fetchCmd(m.tasks.Filters())

	case tasklist.NewRequestMsg:
		m.view = ViewTaskCreate
		return m, m.taskForm.StartCreate()

	case tasklist.EditRequestMsg:
		m.view = ViewTaskEdit
		return m, m.taskForm.StartEdit(msg.Task)

	case tasklist.DeleteRequestMsg:
		return m, m.opCmd(opDelete, func(ctx context.Context) error {
			return m.collection.DeleteTask(ctx, msg.ID)
		})

	case tasklist.CompleteRequestMsg:
		status := model.StatusCompleted
		req := api.UpdateTaskRequest{Status: &status}
		return m, m.opCmd(opUpdate, func(ctx context.Context) error {
			return m.collection.UpdateTask(ctx, msg.ID, req)
		})

	case tasklist.AssignRequestMsg:
		user := m.session.State().User
		if user == nil || user.ID == 0 {
			return m, m.showBanner("Assignment needs a full sign-in")
		}
		userID := user.ID
		return m, m.opCmd(opAssign, func(ctx context.Context) error {
			return m.collection.AssignTask(ctx, msg.ID, userID)
		})

	case tasklist.UnassignRequestMsg:
		return m, m.opCmd(opUnassign, func(ctx context.Context) error {
			return m.collection.UnassignTask(ctx, msg.ID)
		})

	case tasklist.LogoutRequestMsg:
		m.session.Logout()
		m.view = ViewAuth
		m.banner = ""
		m.collection.ClearError()
		return m, m.auth.Start()
	}

	return m, cmd
}

func (m Model) updateTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.taskForm, cmd = m.taskForm.Update(msg)

	switch msg := msg.(type) {
	case taskform.TaskCreatedMsg:
		return m, m.opCmd(opCreate, func(ctx context.Context) error {
			return m.collection.CreateTask(ctx, msg.Req)
		})

	case taskform.TaskUpdatedMsg:
		return m, m.opCmd(opUpdate, func(ctx context.Context) error {
			return m.collection.UpdateTask(ctx, msg.ID, msg.Req)
		})

	case taskform.TaskFormCancelMsg:
		m.view = ViewList
		return m, nil
	}

	return m, cmd
}

func (m Model) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)

	if _, ok := msg.(helpview.CloseMsg); ok {
		m.view = m.prevView
		return m, nil
	}
	return m, cmd
}

// handleOpDone folds a finished collection operation back into the UI.
// Results arriving after a logout are dropped so a slow response cannot
// resurrect an authenticated screen.
func (m Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if !m.session.State().IsAuthenticated {
		if m.view != ViewAuth {
			m.view = ViewAuth
			if api.IsAuthExpired(msg.err) {
				m.auth.SetError("Session expired, please sign in again")
			}
			return m, m.auth.Start()
		}
		if api.IsAuthExpired(msg.err) {
			m.auth.SetError("Session expired, please sign in again")
		}
		return m, nil
	}

	m.tasks.SetCollection(m.collection.State())

	if msg.err == nil {
		switch msg.op {
		case opCreate, opUpdate:
			if m.view == ViewTaskCreate || m.view == ViewTaskEdit {
				m.view = ViewList
			}
		}
		return m, nil
	}

	failure := errorMessage(msg.err, m.collection.State().Error)

	switch msg.op {
	case opCreate, opUpdate:
		if m.view == ViewTaskCreate || m.view == ViewTaskEdit {
			return m, m.taskForm.SetError(failure)
		}
	}
	return m, m.showBanner(failure)
}

// View renders the active screen inside the shared frame.
func (m Model) View() string {
	if m.view == ViewAuth {
		return m.auth.View()
	}

	identity := ""
	if user := m.session.State().User; user != nil {
		identity = user.Username
	}
	header := m.layout.RenderHeader("TaskTrack", identity)

	var content, hints string
	switch m.view {
	case ViewList:
		content = m.tasks.View()
		hints = m.tasks.StatusHints()
	case ViewTaskCreate, ViewTaskEdit:
		content = m.taskForm.View()
		hints = "enter submit | esc cancel"
	case ViewHelp:
		content = m.help.View()
		hints = "any key to return"
	}

	if m.banner != "" {
		content = theme.ErrorBannerStyle.Render(m.banner) + "\n" + content
	}

	return m.layout.RenderWithFrame(header, content, m.layout.RenderStatusBar(hints))
}

func (m Model) loginCmd(msg authform.LoginSubmittedMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		err := m.session.Login(ctx, api.LoginRequest{
			Username: msg.Username,
			Password: msg.Password,
		})
		return authResultMsg{err: err}
	}
}

func (m Model) registerCmd(msg authform.RegisterSubmittedMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		err := m.session.Register(ctx, api.RegisterRequest{
			Username: msg.Username,
			Email:    msg.Email,
			Password: msg.Password,
		})
		return authResultMsg{register: true, err: err}
	}
}

func (m Model) fetchCmd(filters model.TaskFilters) tea.Cmd {
	return m.opCmd(opFetch, func(ctx context.Context) error {
		var f *model.TaskFilters
		if !filters.IsZero() {
			f = &filters
		}
		return m.collection.FetchTasks(ctx, f)
	})
}

func (m Model) opCmd(op opKind, run func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return opDoneMsg{op: op, err: run(ctx)}
	}
}

// showBanner displays a dismissible error line that retires itself after
// the configured interval unless a newer banner replaced it.
func (m *Model) showBanner(text string) tea.Cmd {
	m.banner = text
	m.bannerSeq++
	seq := m.bannerSeq
	ttl := time.Duration(m.cfg.Display.ErrorBannerSec) * time.Second
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(m.cfg.Server.TimeoutSec) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}

func errorMessage(err error, fallback string) string {
	if apiErr, ok := api.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if api.IsAuthExpired(err) {
		return "Session expired, please sign in again"
	}
	if fallback != "" {
		return fallback
	}
	return "Something went wrong"
}
