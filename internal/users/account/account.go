// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages user accounts on behalf of administrators and lets every
authenticated user read and edit their own profile through /users/me.

# Architecture

  - Domain: Reuses [auth.User] and [auth.UserRepository].
  - Security: The collection is admin-only; the self-service routes require an
    authenticated caller and never let the caller change their own role.
*/
package account

import (
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// CreateInput is the admin payload for a new account.
type CreateInput struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Bio       string   `json:"bio"`
	Role      sec.Role `json:"role"`
}

// UpdateInput is a partial account update. Nil fields are left untouched.
type UpdateInput struct {
	Username  *string   `json:"username"`
	Email     *string   `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Bio       *string   `json:"bio"`
	Role      *sec.Role `json:"role"`
}

// apply validates the supplied fields and copies them onto user.
func (input UpdateInput) apply(user *auth.User) error {
	validator := &validate.Validator{}

	if input.Username != nil {
		validator.Username(auth.FieldUsername, *input.Username)
		user.Username = *input.Username
	}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.EmailMaxLen).
			Email(auth.FieldEmail, *input.Email)
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		validator.MaxLen(auth.FieldFirstName, *input.FirstName, auth.NameMaxLen)
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		validator.MaxLen(auth.FieldLastName, *input.LastName, auth.NameMaxLen)
		user.LastName = *input.LastName
	}
	user.Bio = pointer.Fallback(input.Bio, user.Bio)
	if input.Role != nil {
		validator.OneOf(auth.FieldRole, string(*input.Role), sec.RoleNames()...)
		user.Role = *input.Role
	}

	return validator.Err()
}

func (input CreateInput) validate() error {
	validator := &validate.Validator{}
	validator.Username(auth.FieldUsername, input.Username).
		Required(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.EmailMaxLen).
		MaxLen(auth.FieldFirstName, input.FirstName, auth.NameMaxLen).
		MaxLen(auth.FieldLastName, input.LastName, auth.NameMaxLen)
	if input.Email != "" {
		validator.Email(auth.FieldEmail, input.Email)
	}
	if input.Role != "" {
		validator.OneOf(auth.FieldRole, string(input.Role), sec.RoleNames()...)
	}
	return validator.Err()
}
