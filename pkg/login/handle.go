package login

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/campushq/classroom-idm/pkg/sessiontoken"
)

// Handle carries the dependencies of the authentication endpoints.
type Handle struct {
	loginService  *LoginService
	tokens        *sessiontoken.Service
	cookies       *sessiontoken.CookieSetter
	policyChecker PasswordPolicyChecker
}

// HandleOption configures a Handle.
type HandleOption func(*Handle)

// WithPolicyChecker overrides the password policy checker used for
// request validation.
func WithPolicyChecker(checker PasswordPolicyChecker) HandleOption {
	return func(h *Handle) {
		h.policyChecker = checker
	}
}

// NewHandle creates the authentication handle.
func NewHandle(loginService *LoginService, tokens *sessiontoken.Service, cookies *sessiontoken.CookieSetter, opts ...HandleOption) Handle {
	h := Handle{
		loginService:  loginService,
		tokens:        tokens,
		cookies:       cookies,
		policyChecker: NewDefaultPasswordPolicyChecker(nil),
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Routes mounts the authentication endpoints. resolveSession is the
// middleware chain that turns the session cookie into a request
// identity; it guards /me and /update_password.
func Routes(r chi.Router, handle Handle, resolveSession ...func(http.Handler) http.Handler) {
	r.Post("/login", handle.PostLogin)
	r.Get("/logout", handle.GetLogout)

	r.Group(func(r chi.Router) {
		r.Use(resolveSession...)
		r.Get("/me", handle.GetMe)
		r.Put("/update_password", handle.PutUpdatePassword)
	})
}

// PostLogin verifies credentials and stores a fresh session token in the
// cookie.
func (h Handle) PostLogin(w http.ResponseWriter, r *http.Request) {
	data := LoginRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		badRequest(w, r, "Unable to parse request body.")
		return
	}

	if issues := data.Validate(); len(issues) > 0 {
		badRequest(w, r, JoinIssues(issues))
		return
	}

	tokenStr, claims, err := h.loginService.Login(r.Context(), data.Username, data.Password)
	switch {
	case errors.Is(err, ErrUnknownUsername):
		unauthenticated(w, r, "Could not find username.")
		return
	case errors.Is(err, ErrIncorrectPassword):
		unauthenticated(w, r, "Incorrect password.")
		return
	case err != nil:
		slog.Error("Failed logging in", "username", data.Username, "err", err)
		internalError(w, r)
		return
	}

	slog.Info("Logged in", "username", claims.Username)
	h.cookies.SetCookie(w, tokenStr)
	render.JSON(w, r, MessageResponse{Message: "Logged in successfully!"})
}

// GetMe returns the resolved identity of the current session.
func (h Handle) GetMe(w http.ResponseWriter, r *http.Request) {
	authAccount, ok := AuthAccountFromContext(r.Context())
	if !ok {
		unauthenticated(w, r, "Unauthorized")
		return
	}
	render.JSON(w, r, authAccount)
}

// GetLogout deletes the session cookie. The token itself stays valid
// until its exp if replayed; there is no server-side revocation.
func (h Handle) GetLogout(w http.ResponseWriter, r *http.Request) {
	if tokenStr := sessiontoken.TokenFromCookie(r); tokenStr != "" {
		if claims, err := h.tokens.Validate(tokenStr); err == nil {
			slog.Info("Logged out", "username", claims.Username)
		}
	}
	h.cookies.ClearCookie(w)
	render.JSON(w, r, MessageResponse{Message: "Logged out successfully!"})
}

// PutUpdatePassword rotates the current account's password.
func (h Handle) PutUpdatePassword(w http.ResponseWriter, r *http.Request) {
	authAccount, ok := AuthAccountFromContext(r.Context())
	if !ok {
		unauthenticated(w, r, "Unauthorized")
		return
	}

	data := UpdatePasswordRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		badRequest(w, r, "Unable to parse request body.")
		return
	}

	if issues := data.Validate(h.policyChecker); len(issues) > 0 {
		badRequest(w, r, JoinIssues(issues))
		return
	}

	err := h.loginService.ChangePassword(r.Context(), authAccount.Username, data.Password, data.NewPassword)
	switch {
	case errors.Is(err, ErrSamePassword):
		badRequest(w, r, "New password must be different from the current password.")
		return
	case errors.Is(err, ErrIncorrectPassword):
		unauthenticated(w, r, "Incorrect password.")
		return
	case err != nil:
		slog.Error("Failed updating password", "username", authAccount.Username, "err", err)
		internalError(w, r)
		return
	}

	render.JSON(w, r, MessageResponse{Message: "Password updated successfully!"})
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, MessageResponse{Message: message})
}

func internalError(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, MessageResponse{Message: "An unexpected error occurred."})
}
