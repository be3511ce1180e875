package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	assert.NoError(t, Username("alice"))

	err := Username("")
	require.Error(t, err)
	assert.Equal(t, MsgUsernameRequired, err.Error())

	err = Username("   ")
	require.Error(t, err)
	assert.Equal(t, MsgUsernameRequired, err.Error())
}

func TestNewUsername(t *testing.T) {
	assert.NoError(t, NewUsername("bob"))

	err := NewUsername("ab")
	require.Error(t, err)
	assert.Equal(t, MsgUsernameTooShort, err.Error())

	err = NewUsername("")
	require.Error(t, err)
	assert.Equal(t, MsgUsernameRequired, err.Error())
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("bob@example.com"))

	err := Email("")
	require.Error(t, err)
	assert.Equal(t, MsgEmailRequired, err.Error())

	err = Email("not-an-email")
	require.Error(t, err)
	assert.Equal(t, MsgEmailInvalid, err.Error())
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("x"))

	err := Password("")
	require.Error(t, err)
	assert.Equal(t, MsgPasswordRequired, err.Error())
}

func TestNewPassword(t *testing.T) {
	assert.NoError(t, NewPassword("secret"))

	err := NewPassword("short")
	require.Error(t, err)
	assert.Equal(t, MsgPasswordTooShort, err.Error())

	err = NewPassword("")
	require.Error(t, err)
	assert.Equal(t, MsgPasswordRequired, err.Error())
}

func TestConfirmPassword(t *testing.T) {
	password := "secret"
	check := ConfirmPassword(&password)

	assert.NoError(t, check("secret"))

	err := check("")
	require.Error(t, err)
	assert.Equal(t, MsgConfirmRequired, err.Error())

	err = check("different")
	require.Error(t, err)
	assert.Equal(t, MsgPasswordsMismatch, err.Error())

	// The rule tracks the password as currently typed.
	password = "changed"
	assert.NoError(t, check("changed"))
}

func TestTaskTitle(t *testing.T) {
	assert.NoError(t, TaskTitle("Write report"))

	err := TaskTitle("  ")
	require.Error(t, err)
	assert.Equal(t, MsgTitleRequired, err.Error())
}

func TestTaskDescription(t *testing.T) {
	assert.NoError(t, TaskDescription("details"))

	err := TaskDescription("")
	require.Error(t, err)
	assert.Equal(t, MsgDescriptionRequired, err.Error())
}

func TestOptionalDate(t *testing.T) {
	assert.NoError(t, OptionalDate(""))
	assert.NoError(t, OptionalDate("2026-08-30"))
	assert.NoError(t, OptionalDate(" 2026-08-30 "))

	err := OptionalDate("30/08/2026")
	require.Error(t, err)
	assert.Equal(t, MsgDateInvalid, err.Error())

	err = OptionalDate("2026-13-01")
	require.Error(t, err)
	assert.Equal(t, MsgDateInvalid, err.Error())
}
