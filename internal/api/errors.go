package api

import (
	"errors"
	"fmt"
	"time"
)

// APIError is a structured non-2xx response from the server.
type APIError struct {
	Message   string
	Status    int
	Timestamp time.Time
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// IsAPIError reports whether err (or any error in its chain) is an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// AsAPIError extracts the APIError from err's chain, if present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// AuthExpiredError indicates the stored credential is no longer valid:
// a 401/403 response, or the server's invalid-user 500 variant. It
// escalates to a global sign-out.
type AuthExpiredError struct {
	Status  int
	Message string
}

func (e *AuthExpiredError) Error() string {
	return fmt.Sprintf("authentication expired (%d): %s", e.Status, e.Message)
}

// IsAuthExpired reports whether err (or any error in its chain) is an
// AuthExpiredError.
func IsAuthExpired(err error) bool {
	var authErr *AuthExpiredError
	return errors.As(err, &authErr)
}
