package iam

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/campushq/classroom-idm/pkg/account"
	"github.com/campushq/classroom-idm/pkg/login"
)

// StaffRoleMiddleware authorizes an already-resolved identity for
// account creation: the lowest-privilege role (STUDENT) is denied, every
// other valid role proceeds with the identity re-attached unchanged. A
// request with no resolved identity is denied the same way; callers must
// guarantee the session middleware runs first.
func StaffRoleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authAccount, ok := login.AuthAccountFromContext(r.Context())
		if !ok {
			slog.Error("Failed to get authenticated account from context")
			forbidden(w, r)
			return
		}

		if authAccount.Role == account.RoleStudent {
			slog.Warn("Account attempted to create an account without an elevated role",
				"username", authAccount.Username,
				"role", authAccount.Role)
			forbidden(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), login.AuthAccountKey, authAccount)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func forbidden(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusForbidden)
	render.JSON(w, r, login.MessageResponse{Message: "You are unauthorized to create an account."})
}
