package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"

	"github.com/campushq/classroom-idm/pkg/account"
	"github.com/campushq/classroom-idm/pkg/sessiontoken"
)

// AuthAccount is the per-request identity resolved from a session token.
// It carries everything downstream handlers need and never the password.
type AuthAccount struct {
	Username  string       `json:"username"`
	Role      account.Role `json:"role"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
}

func (a AuthAccount) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", a.Username),
		slog.String("role", string(a.Role)),
	)
}

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "classroom-idm context value " + k.name
}

var (
	// AuthAccountKey holds the resolved *AuthAccount on the request
	// context once the session middleware has run.
	AuthAccountKey = &contextKey{"AuthAccount"}
)

// Verifier extracts and verifies the session token from the request's
// cookie store. Verification outcomes are surfaced by AccountMiddleware,
// which must run after it.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, sessiontoken.TokenFromCookie)
}

// AccountMiddleware resolves the verified token to a stored account and
// attaches the identity to the request context. A missing token, a
// token that fails verification, and a token whose account no longer
// exists all answer 401; the three cases keep their distinct messages.
// The middleware performs no writes, so resolving the same token twice
// yields the same identity.
func AccountMiddleware(repo account.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				unauthenticated(w, r, "You need to be logged in to do that.")
				return
			}
			if err != nil || token == nil {
				unauthenticated(w, r, "Unauthorized")
				return
			}

			username, _ := claims["username"].(string)
			if username == "" {
				unauthenticated(w, r, "Unauthorized")
				return
			}

			acct, err := repo.FindByUsername(r.Context(), username)
			if errors.Is(err, account.ErrAccountNotFound) {
				// Token outlived its account.
				unauthenticated(w, r, "Could not find your session.")
				return
			}
			if err != nil {
				slog.Error("Failed resolving session account", "username", username, "err", err)
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, MessageResponse{Message: "An unexpected error occurred."})
				return
			}

			authAccount := &AuthAccount{
				Username:  acct.Username,
				Role:      acct.Role,
				FirstName: acct.FirstName,
				LastName:  acct.LastName,
			}
			ctx := context.WithValue(r.Context(), AuthAccountKey, authAccount)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthAccountFromContext returns the identity attached by
// AccountMiddleware, or false when the middleware has not run.
func AuthAccountFromContext(ctx context.Context) (*AuthAccount, bool) {
	authAccount, ok := ctx.Value(AuthAccountKey).(*AuthAccount)
	return authAccount, ok
}

func unauthenticated(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, MessageResponse{Message: message})
}
