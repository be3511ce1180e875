// Package session owns the authentication state machine: Anonymous,
// Authenticating, and Authenticated, with logout and auth failures
// looping back to Anonymous. State is mutated only by the reducer.
package session

import (
	"github.com/wamashudu/tasktrack/internal/model"
)

// State is the client's authentication session.
// Invariant: IsAuthenticated == (User != nil && Token != "").
type State struct {
	User            *model.User
	Token           string
	IsLoading       bool
	IsAuthenticated bool
}

// action is the sealed set of session state transitions.
type action interface {
	isSessionAction()
}

// authStart marks the beginning of a login or register call.
type authStart struct{}

// authSuccess carries the identity and token of a successful auth call.
type authSuccess struct {
	user  model.User
	token string
}

// authFailure resets the session after a failed or invalidated auth,
// clearing any prior user and token.
type authFailure struct{}

// logoutAction resets the session on explicit sign-out.
type logoutAction struct{}

func (authStart) isSessionAction()    {}
func (authSuccess) isSessionAction()  {}
func (authFailure) isSessionAction()  {}
func (logoutAction) isSessionAction() {}

// reduce applies an action to the session state. IsAuthenticated is
// derived here and nowhere else, so the invariant holds for every
// reachable state.
func reduce(s State, a action) State {
	switch a := a.(type) {
	case authStart:
		s.IsLoading = true
		return s

	case authSuccess:
		u := a.user
		return State{
			User:            &u,
			Token:           a.token,
			IsLoading:       false,
			IsAuthenticated: true,
		}

	case authFailure:
		return State{}

	case logoutAction:
		return State{}

	default:
		// The action set is sealed; nothing else can arrive.
		return s
	}
}
