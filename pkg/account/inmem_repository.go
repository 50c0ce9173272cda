package account

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository implements Repository using in-memory storage. It is
// used by the dev server and by tests. Uniqueness is checked under the
// write lock, so concurrent Create calls for the same username cannot
// both succeed.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewInMemoryRepository creates a new in-memory account repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		accounts: make(map[string]Account),
	}
}

// FindByUsername retrieves an account by its exact username.
func (r *InMemoryRepository) FindByUsername(ctx context.Context, username string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, ok := r.accounts[username]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acct, nil
}

// Create inserts a new account, failing with ErrUsernameTaken when the
// username is already present.
func (r *InMemoryRepository) Create(ctx context.Context, params CreateAccountParams) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[params.Username]; exists {
		return Account{}, ErrUsernameTaken
	}

	now := time.Now().UTC()
	acct := Account{
		ID:        uuid.New(),
		Username:  params.Username,
		Password:  params.Password,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Role:      params.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.accounts[params.Username] = acct
	return acct, nil
}

// UpdatePassword replaces the stored password for the username.
func (r *InMemoryRepository) UpdatePassword(ctx context.Context, username, newPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[username]
	if !ok {
		return ErrAccountNotFound
	}
	acct.Password = newPassword
	acct.UpdatedAt = time.Now().UTC()
	r.accounts[username] = acct
	return nil
}

// Delete removes an account. Only used by tests that exercise the
// account-deleted-after-token-issuance path.
func (r *InMemoryRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[username]; !ok {
		return ErrAccountNotFound
	}
	delete(r.accounts, username)
	return nil
}
