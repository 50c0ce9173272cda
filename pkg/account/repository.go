package account

import "context"

// Repository defines the account storage operations the identity core
// depends on. Username uniqueness is enforced at the storage layer:
// Create must fail with ErrUsernameTaken rather than ever producing two
// accounts with the same username.
type Repository interface {
	// FindByUsername returns the account for the exact username, or
	// ErrAccountNotFound.
	FindByUsername(ctx context.Context, username string) (Account, error)

	// Create inserts a new account. Returns ErrUsernameTaken when the
	// username is already in use.
	Create(ctx context.Context, params CreateAccountParams) (Account, error)

	// UpdatePassword replaces the stored password for the username.
	// Returns ErrAccountNotFound when no such account exists.
	UpdatePassword(ctx context.Context, username, newPassword string) error
}
