package types

import (
	"strings"
	"time"
)

// Role is the access tier attached to a user.
type Role string

const (
	// RoleCarer is the standard staff tier.
	RoleCarer Role = "carer"
	// RoleManager is the elevated tier that may use the business vault,
	// review timesheets and schedule HR activities.
	RoleManager Role = "manager"
)

// ParseRole normalises a role name. It reports false for anything outside
// the carer/manager set.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleCarer:
		return RoleCarer, true
	case RoleManager:
		return RoleManager, true
	default:
		return "", false
	}
}

// User represents a staff account.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// Role indicates the user's access tier ("carer" or "manager").
	Role Role `json:"role" db:"role"`

	// FirstName and LastName are captured at registration.
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`

	// Email is the user's contact address.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// IsManager reports whether the user holds the manager role. The comparison
// is case-insensitive.
func (u User) IsManager() bool {
	return strings.EqualFold(string(u.Role), string(RoleManager))
}

// UserSummary is the public projection of a user used in listings and joins.
type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Summary projects the user to its public fields.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Role: u.Role}
}
