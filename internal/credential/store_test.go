package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *KeyringStore {
	return NewKeyringStore(keyring.NewArrayKeyring(nil))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.Save(Tokens{Access: "access-1", Refresh: "refresh-1"}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Tokens{Access: "access-1", Refresh: "refresh-1"}, got)
}

func TestLoadFromEmptyStoreIsNotAnError(t *testing.T) {
	s := newTestStore()

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Access)
	assert.Empty(t, got.Refresh)
}

func TestSaveOverwritesPreviousPair(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.Save(Tokens{Access: "old-a", Refresh: "old-r"}))
	require.NoError(t, s.Save(Tokens{Access: "new-a", Refresh: "new-r"}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Tokens{Access: "new-a", Refresh: "new-r"}, got)
}

func TestClearRemovesBothTokens(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.Save(Tokens{Access: "a", Refresh: "r"}))
	require.NoError(t, s.Clear())

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Access)
	assert.Empty(t, got.Refresh)
}

func TestClearOnEmptyStoreIsNotAnError(t *testing.T) {
	s := newTestStore()

	assert.NoError(t, s.Clear())
}
