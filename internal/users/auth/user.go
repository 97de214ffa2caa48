// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth owns the user account entity and the email-based signup flow.

A signup stores a one-time confirmation code for the account and mails it out of
band. Exchanging {username, confirmation_code} issues an RS256 access token.
Codes are bcrypt-hashed in Redis, tied to the user id and email they were issued
for, replaced on every signup and deleted once used.
*/
package auth

import (
	"time"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID          int64      `json:"-"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Bio         string     `json:"bio"`
	Role        sec.Role   `json:"role"`
	IsSuperuser bool       `json:"-"`
	DateJoined  time.Time  `json:"-"`
	LastLogin   *time.Time `json:"-"`
}

// Actor projects the user onto the authorization model.
func (user *User) Actor() *sec.Actor {
	return &sec.Actor{
		ID:          user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
	}
}

// Confirmation is a pending signup code as kept in the confirmation store.
type Confirmation struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	CodeHash string `json:"code_hash"`
}

// Filter narrows user listings.
type Filter struct {
	// Search matches usernames case-insensitively by substring.
	Search string
}
