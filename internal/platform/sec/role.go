// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Default role for standard registered users
	RoleUser Role = "user"

	// Can manage community content and moderate reviews/comments
	RoleModerator Role = "moderator"

	// Unrestricted system access
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known role values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// # Actor

// Actor is the authenticated identity that authorization policies evaluate.
//
// It is deliberately small: role plus the two orthogonal operator flags.
// Staff and superuser are kept separate from the role enum so that the
// admin predicate stays an explicit union rather than an inheritance chain.
type Actor struct {
	ID          string
	Username    string
	Role        Role
	IsStaff     bool
	IsSuperuser bool
}

// IsAdmin reports whether the actor holds administrative power.
//
// The predicate is a union: the admin role, the staff flag, or the
// superuser flag each grant it independently.
func (a *Actor) IsAdmin() bool {
	if a == nil {
		return false
	}
	return a.Role == RoleAdmin || a.IsSuperuser || a.IsStaff
}

// IsModerator reports whether the actor holds exactly the moderator role.
//
// Admins are NOT moderators under this predicate; policies that want both
// check both.
func (a *Actor) IsModerator() bool {
	if a == nil {
		return false
	}
	return a.Role == RoleModerator
}
