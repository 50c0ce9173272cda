package login

import "errors"

var (
	// ErrUnknownUsername is returned when no account exists for the
	// supplied username. Distinct from ErrIncorrectPassword; both map to
	// the same HTTP status but different messages.
	ErrUnknownUsername = errors.New("could not find username")

	// ErrIncorrectPassword is returned when the supplied password does
	// not verify against the stored one.
	ErrIncorrectPassword = errors.New("incorrect password")

	// ErrSamePassword is returned when a rotation supplies a new password
	// equal to the current one. Checked before any repository read.
	ErrSamePassword = errors.New("new password must be different from the current password")
)
