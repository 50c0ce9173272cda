package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role classifies an account's privilege tier. STUDENT is the
// lowest-privilege role and is denied on privileged operations.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

// ValidRoles lists the roles accepted at account creation, in the order
// they are documented to clients.
var ValidRoles = []Role{RoleStudent, RoleInstructor, RoleAdmin}

// ParseRole normalizes a raw role value to uppercase and checks it against
// the known roles.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(raw))
	for _, r := range ValidRoles {
		if role == r {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role value: %s", raw)
}

// Account is the stored identity record. Username is the primary
// identifier and is never reassigned after creation. Password is stored
// as whatever the configured password scheme produced (plaintext by
// default, see pkg/login).
type Account struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAccountParams carries the fields needed to insert a new account.
type CreateAccountParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      Role
}
