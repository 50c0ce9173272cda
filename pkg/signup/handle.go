package signup

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	"github.com/campushq/classroom-idm/pkg/login"
)

// Handle carries the dependencies of the account-creation endpoint.
type Handle struct {
	signupService *SignupService
	policyChecker login.PasswordPolicyChecker
}

// HandleOption configures a Handle.
type HandleOption func(*Handle)

// WithPolicyChecker overrides the password policy checker used for
// request validation.
func WithPolicyChecker(checker login.PasswordPolicyChecker) HandleOption {
	return func(h *Handle) {
		h.policyChecker = checker
	}
}

// NewHandle creates the signup handle.
func NewHandle(signupService *SignupService, opts ...HandleOption) Handle {
	h := Handle{
		signupService: signupService,
		policyChecker: login.NewDefaultPasswordPolicyChecker(nil),
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Routes mounts the account-creation endpoint behind the given
// middleware chain (session resolution plus the role guard).
func Routes(r chi.Router, handle Handle, middlewares ...func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(middlewares...)
		r.Post("/create_account", handle.PostCreateAccount)
	})
}

// PostCreateAccount validates the input, allocates a username, and
// creates the account.
func (h Handle) PostCreateAccount(w http.ResponseWriter, r *http.Request) {
	data := login.CreateAccountRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, login.MessageResponse{Message: "Unable to parse request body."})
		return
	}

	role, issues := data.Validate(h.policyChecker)
	if len(issues) > 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, login.MessageResponse{Message: login.JoinIssues(issues)})
		return
	}

	params := RegisterParams{}
	copier.Copy(&params, &data)
	params.Role = role

	acct, err := h.signupService.Register(r.Context(), params)
	if err != nil {
		slog.Error("Failed registering account", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, login.MessageResponse{Message: "An error occurred while creating the account."})
		return
	}

	render.JSON(w, r, login.MessageResponse{
		Message: fmt.Sprintf("Account created successfully with username: %s", acct.Username),
	})
}
