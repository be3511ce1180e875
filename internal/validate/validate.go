// Package validate implements the client-side field validation applied
// before any network call. Rules run through go-playground/validator;
// messages are fixed strings the UI shows verbatim.
package validate

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Validation messages surfaced next to form fields.
const (
	MsgUsernameRequired   = "Username is required"
	MsgUsernameTooShort   = "Username must be at least 3 characters"
	MsgEmailRequired      = "Email is required"
	MsgEmailInvalid       = "Please enter a valid email address"
	MsgPasswordRequired   = "Password is required"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgConfirmRequired    = "Please confirm your password"
	MsgPasswordsMismatch  = "Passwords do not match"
	MsgTitleRequired      = "Title is required"
	MsgDescriptionRequired = "Description is required"
	MsgDateInvalid        = "Invalid date format, use YYYY-MM-DD"
)

// Username checks the login username rule: non-blank.
func Username(s string) error {
	if err := v.Var(strings.TrimSpace(s), "required"); err != nil {
		return errors.New(MsgUsernameRequired)
	}
	return nil
}

// NewUsername checks the registration username rules: non-blank and at
// least 3 characters.
func NewUsername(s string) error {
	if err := Username(s); err != nil {
		return err
	}
	if err := v.Var(s, "min=3"); err != nil {
		return errors.New(MsgUsernameTooShort)
	}
	return nil
}

// Email checks the registration email rules.
func Email(s string) error {
	if err := v.Var(strings.TrimSpace(s), "required"); err != nil {
		return errors.New(MsgEmailRequired)
	}
	if err := v.Var(s, "email"); err != nil {
		return errors.New(MsgEmailInvalid)
	}
	return nil
}

// Password checks the login password rule: non-empty.
func Password(s string) error {
	if err := v.Var(s, "required"); err != nil {
		return errors.New(MsgPasswordRequired)
	}
	return nil
}

// NewPassword checks the registration password rules: non-empty and at
// least 6 characters.
func NewPassword(s string) error {
	if err := Password(s); err != nil {
		return err
	}
	if err := v.Var(s, "min=6"); err != nil {
		return errors.New(MsgPasswordTooShort)
	}
	return nil
}

// ConfirmPassword returns a validator comparing the confirmation against
// the password the form will actually submit. The pointer indirection
// lets the rule see the password as currently typed.
func ConfirmPassword(password *string) func(string) error {
	return func(s string) error {
		if err := v.Var(s, "required"); err != nil {
			return errors.New(MsgConfirmRequired)
		}
		if s != *password {
			return errors.New(MsgPasswordsMismatch)
		}
		return nil
	}
}

// TaskTitle checks the task form title rule.
func TaskTitle(s string) error {
	if err := v.Var(strings.TrimSpace(s), "required"); err != nil {
		return errors.New(MsgTitleRequired)
	}
	return nil
}

// TaskDescription checks the task form description rule.
func TaskDescription(s string) error {
	if err := v.Var(strings.TrimSpace(s), "required"); err != nil {
		return errors.New(MsgDescriptionRequired)
	}
	return nil
}

// OptionalDate accepts an empty value or a well-formed YYYY-MM-DD date.
func OptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return errors.New(MsgDateInvalid)
	}
	return nil
}
