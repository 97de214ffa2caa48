// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Actor is the caller of a request as resolved from the access token and the
// user store. A nil *Actor is the anonymous caller; every method is nil-safe.
type Actor struct {
	ID          int64
	Username    string
	Role        Role
	IsSuperuser bool
}

// IsAuthenticated reports whether the caller is a known user.
func (a *Actor) IsAuthenticated() bool {
	return a != nil
}

// IsAdmin reports whether the caller holds the admin role or the superuser flag.
func (a *Actor) IsAdmin() bool {
	return a != nil && (a.Role == RoleAdmin || a.IsSuperuser)
}

// IsModerator reports whether the caller holds the moderator role.
func (a *Actor) IsModerator() bool {
	return a != nil && a.Role == RoleModerator
}

// Owns reports whether the caller is the user identified by ownerID.
func (a *Actor) Owns(ownerID int64) bool {
	return a != nil && a.ID == ownerID
}
