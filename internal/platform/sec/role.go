// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Full management of reference data, titles and users
	RoleAdmin Role = "admin"

	// Can edit or remove any review and comment
	RoleModerator Role = "moderator"

	// Default role for registered users
	RoleUser Role = "user"
)

// Roles lists every assignable role.
var Roles = []Role{RoleUser, RoleModerator, RoleAdmin}

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// RoleNames returns the assignable roles as plain strings, for validators.
func RoleNames() []string {
	names := make([]string, len(Roles))
	for i, role := range Roles {
		names[i] = string(role)
	}
	return names
}
