package login

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/classroom-idm/pkg/account"
)

func TestLoginRequestValidate(t *testing.T) {
	assert.Empty(t, LoginRequest{Username: "alovelace", Password: "x"}.Validate())

	assert.Equal(t, []string{"Username is required.", "Password is required."},
		LoginRequest{}.Validate())
	assert.Equal(t, []string{"Password is required."},
		LoginRequest{Username: "alovelace"}.Validate())
}

func TestCreateAccountRequestValidate(t *testing.T) {
	checker := NewDefaultPasswordPolicyChecker(nil)

	role, issues := CreateAccountRequest{
		Password:  "Analyt1cal!",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      "instructor",
	}.Validate(checker)
	assert.Empty(t, issues)
	assert.Equal(t, account.RoleInstructor, role, "role is normalized case-insensitively")

	_, issues = CreateAccountRequest{
		Password:  "weak",
		FirstName: "Al",
		LastName:  "B",
		Role:      "wizard",
	}.Validate(checker)
	assert.Equal(t, []string{
		"Password must be at least 8 characters long.",
		"Password must contain at least one uppercase letter.",
		"Password must contain at least one digit.",
		"Password must contain at least one special character.",
		"First name must be at least 3 characters.",
		"Last name must be at least 2 characters.",
		"Invalid role value.",
	}, issues)

	_, issues = CreateAccountRequest{
		Password:  "Analyt1cal!",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}.Validate(checker)
	assert.Equal(t, []string{"Role is required."}, issues)
}

func TestUpdatePasswordRequestValidate(t *testing.T) {
	checker := NewDefaultPasswordPolicyChecker(nil)

	assert.Empty(t, UpdatePasswordRequest{
		Password:    "old",
		NewPassword: "Analyt1cal!",
	}.Validate(checker))

	issues := UpdatePasswordRequest{NewPassword: "weak1"}.Validate(checker)
	assert.Equal(t, "Password is required.", issues[0])

	issues = UpdatePasswordRequest{Password: "old"}.Validate(checker)
	assert.Equal(t, []string{"New password is required."}, issues)
}

func TestJoinIssues(t *testing.T) {
	assert.Equal(t, "A. B.", JoinIssues([]string{"A.", "B."}))
	assert.Equal(t, "", JoinIssues(nil))
}
