package model

import "time"

// Role values stored in users.role.  A freshly registered user carries an
// empty role until an admin assigns one; the empty string is a valid state
// and matches no role gate.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// User mirrors the `users` table.  Email is the unique key; the role is
// the single source of truth for authorization and is re-read from this
// table on every protected request (never trusted from a token).
type User struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the assignable role values.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}
