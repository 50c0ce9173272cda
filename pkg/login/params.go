package login

import (
	"strings"

	"github.com/campushq/classroom-idm/pkg/account"
)

// MessageResponse is the JSON body every endpoint answers with on
// anything but a data response.
type MessageResponse struct {
	Message string `json:"message"`
}

// JoinIssues flattens an ordered list of validation messages into the
// single user-visible string the API returns.
func JoinIssues(issues []string) string {
	return strings.Join(issues, " ")
}

// LoginRequest is the POST /login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate requires both fields to be present.
func (r LoginRequest) Validate() []string {
	var issues []string
	if r.Username == "" {
		issues = append(issues, "Username is required.")
	}
	if r.Password == "" {
		issues = append(issues, "Password is required.")
	}
	return issues
}

// CreateAccountRequest is the POST /create_account body. The username is
// not part of the request; it is allocated from the name pair.
type CreateAccountRequest struct {
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Validate checks shape and password strength and returns the normalized
// role. Issue order follows the field order of the request body.
func (r CreateAccountRequest) Validate(checker PasswordPolicyChecker) (account.Role, []string) {
	var issues []string

	if r.Password == "" {
		issues = append(issues, "Password is required.")
	} else {
		issues = append(issues, checker.Violations(r.Password)...)
	}

	if len(r.FirstName) < 3 {
		issues = append(issues, "First name must be at least 3 characters.")
	}
	if len(r.LastName) < 2 {
		issues = append(issues, "Last name must be at least 2 characters.")
	}

	var role account.Role
	if r.Role == "" {
		issues = append(issues, "Role is required.")
	} else {
		parsed, err := account.ParseRole(r.Role)
		if err != nil {
			issues = append(issues, "Invalid role value.")
		} else {
			role = parsed
		}
	}

	return role, issues
}

// UpdatePasswordRequest is the PUT /update_password body.
type UpdatePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
}

// Validate requires the current password and holds the new password to
// the same strength policy as account creation.
func (r UpdatePasswordRequest) Validate(checker PasswordPolicyChecker) []string {
	var issues []string
	if r.Password == "" {
		issues = append(issues, "Password is required.")
	}
	if r.NewPassword == "" {
		issues = append(issues, "New password is required.")
	} else {
		issues = append(issues, checker.Violations(r.NewPassword)...)
	}
	return issues
}
