package sessiontoken

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiry is how long an issued session token stays valid.
// The session cookie deliberately outlives this (see cookie.go); the
// token itself is what bounds the session.
const DefaultTokenExpiry = time.Hour

// ErrInvalidToken is returned for any token that fails validation.
// Structural, signature, and expiry failures all collapse to this one
// error: callers must not be able to distinguish a tampered token from
// an expired one at the API boundary.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded session token payload.
type Claims struct {
	Username  string
	ExpiresAt time.Time
}

// Service signs and verifies session tokens with a process-wide secret.
// Tokens are stateless and self-contained; no server-side record of
// issued tokens is kept.
type Service struct {
	secret []byte
	expiry time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithExpiry overrides the token expiry duration.
func WithExpiry(expiry time.Duration) Option {
	return func(s *Service) {
		s.expiry = expiry
	}
}

// NewService creates a session token service. The secret must come from
// configuration; there is no default.
func NewService(secret string, opts ...Option) *Service {
	s := &Service{
		secret: []byte(secret),
		expiry: DefaultTokenExpiry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token over {username, exp} with exp = now + expiry.
func (s *Service) Issue(username string) (string, Claims, error) {
	expiresAt := time.Now().UTC().Add(s.expiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      jwt.NewNumericDate(expiresAt),
	})

	tokenStr, err := token.SignedString(s.secret)
	if err != nil {
		slog.Error("Failed signing session token", "err", err)
		return "", Claims{}, err
	}
	return tokenStr, Claims{Username: username, ExpiresAt: expiresAt}, nil
}

// Validate checks signature and expiry and returns the decoded claims.
// Any failure is reported as ErrInvalidToken.
func (s *Service) Validate(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr,
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	username, ok := mapClaims["username"].(string)
	if !ok || username == "" {
		return Claims{}, ErrInvalidToken
	}
	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{Username: username, ExpiresAt: exp.Time}, nil
}
