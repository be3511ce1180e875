package api

import "sync"

// Credential is the single shared holder for the current bearer token.
// Both endpoint clients reference the same instance, so updating it here
// updates every outbound request. It is never duplicated.
type Credential struct {
	mu    sync.RWMutex
	token string
}

// NewCredential creates an empty credential holder.
func NewCredential() *Credential {
	return &Credential{}
}

// Set replaces the current access token. An empty string means
// "no credential" and suppresses the Authorization header.
func (c *Credential) Set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Clear removes the current access token.
func (c *Credential) Clear() {
	c.Set("")
}

// Token returns the current access token, or "" when unauthenticated.
func (c *Credential) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}
