// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	// FindByID returns the account with the given ID or apperr NOT_FOUND.
	FindByID(context context.Context, id int64) (*User, error)

	// FindByUsername returns the account with the exact username or apperr NOT_FOUND.
	FindByUsername(context context.Context, username string) (*User, error)

	// ExistsByUsernameOrEmail reports whether any account matches username or
	// email, both compared case-insensitively.
	ExistsByUsernameOrEmail(context context.Context, username, email string) (bool, error)

	/*
		List returns one page of accounts ordered by username.

		Returns:
		  - []*User: The page
		  - int: Total number of matching accounts
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*User, int, error)

	// Create persists a new account and fills in ID and DateJoined.
	Create(context context.Context, user *User) error

	// Update persists the mutable profile fields and role.
	Update(context context.Context, user *User) error

	// Delete removes the account. Reviews and comments cascade.
	Delete(context context.Context, id int64) error

	// TouchLastLogin records a successful token exchange.
	TouchLastLogin(context context.Context, id int64, at time.Time) error
}

// # Volatile Data Access

// ConfirmationStore keeps at most one pending confirmation per username.
type ConfirmationStore interface {

	// Save stores the confirmation, replacing any previous one for username.
	Save(context context.Context, username string, confirmation *Confirmation, ttl time.Duration) error

	// Find returns the pending confirmation or apperr NOT_FOUND.
	Find(context context.Context, username string) (*Confirmation, error)

	// Consume removes the pending confirmation only if it is still the given
	// one. It returns apperr NOT_FOUND when the entry is gone or was replaced.
	Consume(context context.Context, username string, confirmation *Confirmation) error
}
