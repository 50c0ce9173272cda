package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campushq/classroom-idm/pkg/account"
	"github.com/campushq/classroom-idm/pkg/sessiontoken"
)

// LoginService verifies credentials against the account repository and
// mints session tokens. It also owns password rotation.
type LoginService struct {
	repo     account.Repository
	tokens   *sessiontoken.Service
	verifier PasswordVerifier
	hasher   PasswordHasher
}

// LoginServiceOption configures a LoginService.
type LoginServiceOption func(*LoginService)

// WithPasswordVerifier overrides how supplied passwords are checked
// against stored values.
func WithPasswordVerifier(verifier PasswordVerifier) LoginServiceOption {
	return func(s *LoginService) {
		s.verifier = verifier
	}
}

// WithPasswordHasher overrides how new passwords are turned into their
// stored form.
func WithPasswordHasher(hasher PasswordHasher) LoginServiceOption {
	return func(s *LoginService) {
		s.hasher = hasher
	}
}

// NewLoginService creates a login service. Password comparison defaults
// to the legacy plain-text scheme; see PlaintextVerifier.
func NewLoginService(repo account.Repository, tokens *sessiontoken.Service, opts ...LoginServiceOption) *LoginService {
	s := &LoginService{
		repo:     repo,
		tokens:   tokens,
		verifier: PlaintextVerifier{},
		hasher:   PlaintextHasher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the username/password pair and issues a fresh session
// token. This is the only path that mints a session. Fails with
// ErrUnknownUsername when the account is absent and ErrIncorrectPassword
// when the stored password does not verify.
func (s *LoginService) Login(ctx context.Context, username, password string) (string, sessiontoken.Claims, error) {
	acct, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, account.ErrAccountNotFound) {
		return "", sessiontoken.Claims{}, ErrUnknownUsername
	}
	if err != nil {
		slog.Error("Failed looking up account for login", "username", username, "err", err)
		return "", sessiontoken.Claims{}, fmt.Errorf("failed to look up account: %w", err)
	}

	valid, err := s.verifier.Verify(password, acct.Password)
	if err != nil {
		slog.Error("Failed verifying password", "username", username, "err", err)
		return "", sessiontoken.Claims{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return "", sessiontoken.Claims{}, ErrIncorrectPassword
	}

	tokenStr, claims, err := s.tokens.Issue(acct.Username)
	if err != nil {
		return "", sessiontoken.Claims{}, fmt.Errorf("failed to issue session token: %w", err)
	}
	return tokenStr, claims, nil
}

// ChangePassword rotates the stored password for username. The
// same-password check runs before any repository read; only after the
// current password verifies is the repository updated. No password
// history beyond the immediately-previous value is consulted.
func (s *LoginService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	if currentPassword == newPassword {
		return ErrSamePassword
	}

	acct, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, account.ErrAccountNotFound) {
		return ErrUnknownUsername
	}
	if err != nil {
		slog.Error("Failed looking up account for password change", "username", username, "err", err)
		return fmt.Errorf("failed to look up account: %w", err)
	}

	valid, err := s.verifier.Verify(currentPassword, acct.Password)
	if err != nil {
		slog.Error("Failed verifying current password", "username", username, "err", err)
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return ErrIncorrectPassword
	}

	stored, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to prepare new password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, username, stored); err != nil {
		slog.Error("Failed updating password", "username", username, "err", err)
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
