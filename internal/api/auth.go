package api

import (
	"context"

	"github.com/wamashudu/tasktrack/internal/model"
)

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the profile payload for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// refreshRequest is the payload for POST /auth/refresh.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is the shared response shape of all three auth calls.
type AuthResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	TokenType    string     `json:"tokenType"`
	ExpiresIn    int64      `json:"expiresIn"`
	UserID       int64      `json:"userId"`
	Username     string     `json:"username"`
	Role         model.Role `json:"role"`
}

// User builds the account identity carried in the auth response.
func (r *AuthResponse) User() model.User {
	return model.User{
		ID:       r.UserID,
		Username: r.Username,
		Role:     r.Role,
	}
}

// AuthClient talks to the auth endpoint. Auth calls never escalate
// 401 responses to a global sign-out: a rejected login is an ordinary
// APIError for the caller to display.
type AuthClient struct {
	c *client
}

// NewAuthClient creates the auth endpoint client sharing cred with the
// task endpoint client.
func NewAuthClient(cfg Config, cred *Credential) *AuthClient {
	return &AuthClient{c: newClient(cfg, cred)}
}

// Login exchanges credentials for a token pair.
func (a *AuthClient) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := a.c.post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns a token pair, with the same
// contract as Login.
func (a *AuthClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := a.c.post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a fresh token pair.
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := a.c.post(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
