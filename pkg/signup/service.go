package signup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/campushq/classroom-idm/pkg/account"
	"github.com/campushq/classroom-idm/pkg/login"
)

// SignupService allocates usernames and creates accounts.
type SignupService struct {
	repo   account.Repository
	hasher login.PasswordHasher
}

// SignupServiceOption configures a SignupService.
type SignupServiceOption func(*SignupService)

// WithPasswordHasher overrides how new passwords are turned into their
// stored form. Must match the verifier wired into the login service.
func WithPasswordHasher(hasher login.PasswordHasher) SignupServiceOption {
	return func(s *SignupService) {
		s.hasher = hasher
	}
}

// NewSignupService creates a signup service.
func NewSignupService(repo account.Repository, opts ...SignupServiceOption) *SignupService {
	s := &SignupService{
		repo:   repo,
		hasher: login.PlaintextHasher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterParams carries the validated account-creation input.
type RegisterParams struct {
	Password  string
	FirstName string
	LastName  string
	Role      account.Role
}

// AllocateUsername derives a unique username from the name pair. The
// seed is the lowercased first letter of the first name joined to the
// lowercased last name; on collision the candidate's trailing digit run
// is incremented ("ab1" advances to "ab2", never "ab11"), or "1" is
// appended when there is none. A free seed returns with zero loop
// iterations.
func (s *SignupService) AllocateUsername(ctx context.Context, firstName, lastName string) (string, error) {
	candidate := seedUsername(firstName, lastName)
	for {
		_, err := s.repo.FindByUsername(ctx, candidate)
		if errors.Is(err, account.ErrAccountNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed checking username %q: %w", candidate, err)
		}
		candidate = nextCandidate(candidate)
	}
}

// Register allocates a username and inserts the account. The check-loop-
// then-insert sequence is not atomic: a concurrent signup deriving the
// same seed can claim the candidate between the final check and the
// insert. The repository's uniqueness constraint reports that as
// ErrUsernameTaken and the whole allocation is retried against the new
// state, so no two accounts can end up with the same username.
func (s *SignupService) Register(ctx context.Context, params RegisterParams) (account.Account, error) {
	stored, err := s.hasher.Hash(params.Password)
	if err != nil {
		return account.Account{}, fmt.Errorf("failed to prepare password: %w", err)
	}

	for {
		username, err := s.AllocateUsername(ctx, params.FirstName, params.LastName)
		if err != nil {
			return account.Account{}, err
		}

		acct, err := s.repo.Create(ctx, account.CreateAccountParams{
			Username:  username,
			Password:  stored,
			FirstName: params.FirstName,
			LastName:  params.LastName,
			Role:      params.Role,
		})
		if errors.Is(err, account.ErrUsernameTaken) {
			slog.Warn("Username claimed by concurrent signup, reallocating", "username", username)
			continue
		}
		if err != nil {
			slog.Error("Failed creating account", "username", username, "err", err)
			return account.Account{}, fmt.Errorf("failed to create account: %w", err)
		}

		slog.Info("Created account", "username", acct.Username, "role", acct.Role)
		return acct, nil
	}
}

func seedUsername(firstName, lastName string) string {
	first := []rune(strings.ToLower(firstName))
	if len(first) == 0 {
		return strings.ToLower(lastName)
	}
	return string(first[0]) + strings.ToLower(lastName)
}

// nextCandidate advances a colliding candidate to the next one in the
// deterministic sequence.
func nextCandidate(username string) string {
	base := strings.TrimRightFunc(username, unicode.IsDigit)
	if base == username {
		return username + "1"
	}
	n, err := strconv.Atoi(username[len(base):])
	if err != nil {
		// Digit run too long to parse; treat it as part of the stem.
		return username + "1"
	}
	return base + strconv.Itoa(n+1)
}
