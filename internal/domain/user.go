package domain

import "time"

// Role is the closed set of authorization tags a token can carry.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is a known member of the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for platform members. PasswordHash is nil for
// accounts that only ever authenticated through an external provider.
type User struct {
	ID           int
	Username     string
	Email        string
	Icon         *string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
