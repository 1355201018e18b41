package user

import "strings"

// Role is the coarse authorization role carried in token claims.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleStudent:
		return true
	}
	return false
}

// User is the account record consulted by the authentication core. The
// account subsystem owns it; this core reads it and only writes back through
// UpdatePasswordHash during a password change.
type User struct {
	ID           uint
	Username     string
	Email        string
	FirstName    string
	MiddleName   string
	LastName     string
	PasswordHash string
	Role         Role
	IsActive     bool
}

// FullName joins the non-empty name parts with single spaces.
func (u *User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, u.MiddleName, u.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
