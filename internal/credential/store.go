// Package credential persists the two authentication tokens in the
// system keyring. Nothing else is stored client-side.
package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "tasktrack"

// Fixed keyring item names for the two persisted values.
const (
	accessTokenKey  = "access-token"
	refreshTokenKey = "refresh-token"
)

// Tokens is the pair of credentials returned by the auth endpoint.
type Tokens struct {
	Access  string
	Refresh string
}

// Store is the token persistence contract. Save overwrites both values,
// Load returns whatever is stored (a missing access token reads as "not
// logged in", not an error), and Clear removes both.
type Store interface {
	Save(t Tokens) error
	Load() (Tokens, error)
	Clear() error
}

// KeyringStore persists tokens in the system keyring.
type KeyringStore struct {
	ring keyring.Keyring
}

// OpenKeyringStore opens the default system keyring for the application.
func OpenKeyringStore() (*KeyringStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/tasktrack/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("tasktrack-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &KeyringStore{ring: ring}, nil
}

// NewKeyringStore wraps an existing keyring; tests pass
// keyring.NewArrayKeyring for an in-memory store.
func NewKeyringStore(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

// Save stores both tokens, overwriting any previous pair.
func (s *KeyringStore) Save(t Tokens) error {
	if err := s.set(accessTokenKey, t.Access); err != nil {
		return err
	}
	return s.set(refreshTokenKey, t.Refresh)
}

// Load reads the stored token pair. Missing entries come back as empty
// strings rather than errors, so "no session" is not a failure.
func (s *KeyringStore) Load() (Tokens, error) {
	access, err := s.get(accessTokenKey)
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := s.get(refreshTokenKey)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{Access: access, Refresh: refresh}, nil
}

// Clear removes both tokens. Removing an absent key is not an error.
func (s *KeyringStore) Clear() error {
	if err := s.remove(accessTokenKey); err != nil {
		return err
	}
	return s.remove(refreshTokenKey)
}

func (s *KeyringStore) set(key, value string) error {
	err := s.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

func (s *KeyringStore) get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

func (s *KeyringStore) remove(key string) error {
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}
