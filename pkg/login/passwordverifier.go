package login

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier abstracts how a supplied password is checked against
// the stored value, so the storage scheme can be swapped without
// touching callers.
type PasswordVerifier interface {
	// Verify reports whether password matches the stored value.
	Verify(password, stored string) (bool, error)
}

// PasswordHasher produces the stored form of a new password.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// PlaintextVerifier compares the supplied password to the stored value
// byte for byte, case-sensitively. This preserves the legacy storage
// format: passwords at rest are NOT hashed. It is the default only for
// compatibility with existing account rows; new deployments should wire
// BcryptVerifier/BcryptHasher instead.
type PlaintextVerifier struct{}

// Verify compares the plain-text password with the stored value.
func (PlaintextVerifier) Verify(password, stored string) (bool, error) {
	if password == "" || stored == "" {
		return false, errors.New("password and stored password cannot be empty")
	}
	return password == stored, nil
}

// PlaintextHasher stores passwords as-is. Pairs with PlaintextVerifier.
type PlaintextHasher struct{}

// Hash returns the password unchanged.
func (PlaintextHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}

// BcryptVerifier checks passwords against bcrypt hashes. Substitutable
// for PlaintextVerifier once stored rows are migrated.
type BcryptVerifier struct{}

// Verify compares the plain-text password with the stored bcrypt hash.
func (BcryptVerifier) Verify(password, stored string) (bool, error) {
	if password == "" || stored == "" {
		return false, errors.New("password and stored password cannot be empty")
	}
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BcryptHasher hashes new passwords with bcrypt at the default cost.
type BcryptHasher struct{}

// Hash generates the bcrypt hash of the password.
func (BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
