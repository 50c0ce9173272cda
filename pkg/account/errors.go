package account

import "errors"

var (
	// ErrAccountNotFound is returned when no account exists for the given
	// username.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUsernameTaken is returned by Create when the username is already
	// in use. Callers that derived the username should re-allocate and
	// retry.
	ErrUsernameTaken = errors.New("username already exists")
)
