// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// DefaultAccessTokenTTL applies when no TTL is configured.
	DefaultAccessTokenTTL = 24 * time.Hour

	// DefaultConfirmationCodeTTL bounds how long a signup code can be exchanged.
	DefaultConfirmationCodeTTL = 24 * time.Hour

	// EmailMaxLen is the longest accepted email address.
	EmailMaxLen = 254

	// NameMaxLen bounds first and last names.
	NameMaxLen = 150
)

// # Field Identifiers

const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
)

// # Messages

const (
	msgInvalidConfirmation = "User not found or confirmation code is invalid"
	msgIdentityTaken       = "A user with this username or email already exists"
)
