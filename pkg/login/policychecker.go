package login

import (
	"fmt"
	"regexp"
	"strings"
)

// PasswordSpecialChars is the fixed punctuation set a password must draw
// its symbol from.
const PasswordSpecialChars = "!@#$%^&*()-_=+[]{}|;:'\",.<>/?`~\\"

// PasswordPolicy defines the requirements for password complexity.
type PasswordPolicy struct {
	MinLength          int
	RequireUppercase   bool
	RequireLowercase   bool
	RequireDigit       bool
	RequireSpecialChar bool
	SpecialChars       string
}

// DefaultPasswordPolicy returns the policy enforced at account creation
// and password rotation.
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength:          8,
		RequireUppercase:   true,
		RequireLowercase:   true,
		RequireDigit:       true,
		RequireSpecialChar: true,
		SpecialChars:       PasswordSpecialChars,
	}
}

// PasswordPolicyChecker defines the interface for checking password
// complexity.
type PasswordPolicyChecker interface {
	// Violations returns every policy violation as a human-readable
	// message, in policy order. An empty slice means the password passes.
	Violations(password string) []string
	GetPolicy() *PasswordPolicy
}

// DefaultPasswordPolicyChecker implements the PasswordPolicyChecker
// interface.
type DefaultPasswordPolicyChecker struct {
	policy *PasswordPolicy
}

// NewDefaultPasswordPolicyChecker creates a new default password policy
// checker.
func NewDefaultPasswordPolicyChecker(policy *PasswordPolicy) *DefaultPasswordPolicyChecker {
	if policy == nil {
		policy = DefaultPasswordPolicy()
	}
	return &DefaultPasswordPolicyChecker{
		policy: policy,
	}
}

// Violations checks the password against the complexity requirements.
// The messages are user-visible and their order is part of the API.
func (pc *DefaultPasswordPolicyChecker) Violations(password string) []string {
	var issues []string

	if len(password) < pc.policy.MinLength {
		issues = append(issues, fmt.Sprintf("Password must be at least %d characters long.", pc.policy.MinLength))
	}

	if pc.policy.RequireUppercase && !regexp.MustCompile(`[A-Z]`).MatchString(password) {
		issues = append(issues, "Password must contain at least one uppercase letter.")
	}

	if pc.policy.RequireLowercase && !regexp.MustCompile(`[a-z]`).MatchString(password) {
		issues = append(issues, "Password must contain at least one lowercase letter.")
	}

	if pc.policy.RequireDigit && !regexp.MustCompile(`[0-9]`).MatchString(password) {
		issues = append(issues, "Password must contain at least one digit.")
	}

	if pc.policy.RequireSpecialChar && !strings.ContainsAny(password, pc.policy.SpecialChars) {
		issues = append(issues, "Password must contain at least one special character.")
	}

	return issues
}

// GetPolicy returns the password policy.
func (pc *DefaultPasswordPolicyChecker) GetPolicy() *PasswordPolicy {
	return pc.policy
}
