package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/wamashudu/tasktrack/internal/api"
	"github.com/wamashudu/tasktrack/internal/credential"
	"github.com/wamashudu/tasktrack/internal/model"
)

// Manager drives the session state machine. It owns the login, register,
// logout, and restore operations, persists tokens through the Store, and
// keeps the shared Credential in step with the current session.
type Manager struct {
	auth   *api.AuthClient
	tokens credential.Store
	cred   *api.Credential
	log    zerolog.Logger

	mu    sync.Mutex
	state State
	subs  []func(State)
}

// NewManager wires the manager to its collaborators. The initial state
// is Anonymous.
func NewManager(auth *api.AuthClient, tokens credential.Store, cred *api.Credential, log zerolog.Logger) *Manager {
	return &Manager{
		auth:   auth,
		tokens: tokens,
		cred:   cred,
		log:    log,
	}
}

// State returns a snapshot of the current session state.
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

// dispatch applies the action and notifies subscribers with the
// resulting snapshot.
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

// Login authenticates with the auth endpoint. On success both tokens are
// persisted, the shared credential is updated, and the session becomes
// Authenticated. On failure the session resets to Anonymous and the
// error is returned for the caller to display.
func (m *Manager) Login(ctx context.Context, req api.LoginRequest) error {
	m.dispatch(authStart{})

	resp, err := m.auth.Login(ctx, req)
	if err != nil {
		m.dispatch(authFailure{})
		return err
	}

	m.completeAuth(resp)
	return nil
}

// Register creates an account, with the identical contract to Login.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) error {
	m.dispatch(authStart{})

	resp, err := m.auth.Register(ctx, req)
	if err != nil {
		m.dispatch(authFailure{})
		return err
	}

	m.completeAuth(resp)
	return nil
}

// completeAuth persists the token pair and transitions to Authenticated.
// A keyring failure is logged but does not undo the in-memory session.
func (m *Manager) completeAuth(resp *api.AuthResponse) {
	err := m.tokens.Save(credential.Tokens{
		Access:  resp.AccessToken,
		Refresh: resp.RefreshToken,
	})
	if err != nil {
		m.log.Warn().Err(err).Msg("persisting tokens failed")
	}

	m.cred.Set(resp.AccessToken)
	m.dispatch(authSuccess{user: resp.User(), token: resp.AccessToken})
	m.log.Info().Str("username", resp.Username).Msg("authenticated")
}

// Logout clears the token store and credential and resets the session.
// It is synchronous and always succeeds; no network call is made.
func (m *Manager) Logout() {
	if err := m.tokens.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("clearing token store failed")
	}
	m.cred.Clear()
	m.dispatch(logoutAction{})
	m.log.Info().Msg("logged out")
}

// Restore rebuilds a session from a previously persisted token. The
// token's claims are read without verification (the server remains the
// authority) to build a minimal placeholder identity; the full profile
// is not re-fetched. A missing, unreadable, or expired token means
// "no session" and is never an outward failure.
func (m *Manager) Restore() {
	stored, err := m.tokens.Load()
	if err != nil || stored.Access == "" {
		if err != nil {
			m.log.Warn().Err(err).Msg("reading token store failed")
		}
		return
	}

	user, ok := userFromToken(stored.Access)
	if !ok {
		m.log.Info().Msg("stored token unusable, discarding")
		if err := m.tokens.Clear(); err != nil {
			m.log.Warn().Err(err).Msg("clearing token store failed")
		}
		return
	}

	m.cred.Set(stored.Access)
	m.dispatch(authSuccess{user: user, token: stored.Access})
	m.log.Info().Str("username", user.Username).Msg("session restored")
}

// HandleAuthError is the one externally triggered transition: any
// collaborator that hits an invalid-credential response reports it here,
// and the session is forced to Anonymous regardless of current state.
func (m *Manager) HandleAuthError(e *api.AuthExpiredError) {
	if err := m.tokens.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("clearing token store failed")
	}
	m.cred.Clear()
	m.dispatch(authFailure{})
	m.log.Warn().Int("status", e.Status).Str("message", e.Message).
		Msg("credential invalidated")
}

// userFromToken builds the placeholder identity from the access token's
// claims. The subject claim carries the username; id and email are not
// encoded in the token. Expired or malformed tokens yield no user.
func userFromToken(token string) (model.User, bool) {
	var claims jwt.RegisteredClaims
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil || claims.Subject == "" {
		return model.User{}, false
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return model.User{}, false
	}

	return model.User{
		Username: claims.Subject,
		Role:     model.RoleUser,
	}, true
}
