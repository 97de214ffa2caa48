// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

// Service implements account administration and the self-service profile.
type Service struct {
	users  auth.UserRepository
	logger *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(users auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// # Administration

// ListUsers returns one page of accounts ordered by username.
func (service *Service) ListUsers(context context.Context, filter auth.Filter, limit, offset int) ([]*auth.User, int, error) {
	return service.users.List(context, filter, limit, offset)
}

// GetUser returns the account with the given username.
func (service *Service) GetUser(context context.Context, username string) (*auth.User, error) {
	return service.users.FindByUsername(context, username)
}

/*
CreateUser registers an account on behalf of an administrator.

Returns:
  - *auth.User: The persisted account
  - error: ValidationError or Conflict when username/email is taken
*/
func (service *Service) CreateUser(context context.Context, input CreateInput) (*auth.User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}

	user := &auth.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}
	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// UpdateUser applies a partial update, including role changes, to username.
func (service *Service) UpdateUser(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if err := input.apply(user); err != nil {
		return nil, err
	}

	if err := service.users.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.Int64("user_id", user.ID))
	return user, nil
}

// DeleteUser removes the account with the given username.
func (service *Service) DeleteUser(context context.Context, username string) error {
	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		return err
	}

	if err := service.users.Delete(context, user.ID); err != nil {
		return err
	}

	service.logger.Info("user_deleted", slog.Int64("user_id", user.ID))
	return nil
}

// # Self Service

// GetProfile returns the caller's own account.
func (service *Service) GetProfile(context context.Context, actor *sec.Actor) (*auth.User, error) {
	return service.users.FindByID(context, actor.ID)
}

/*
UpdateProfile applies a partial update to the caller's own account.

Description: Any role in the payload is ignored and the stored role is kept, so
the request succeeds but never changes privileges.
*/
func (service *Service) UpdateProfile(context context.Context, actor *sec.Actor, input UpdateInput) (*auth.User, error) {
	user, err := service.users.FindByID(context, actor.ID)
	if err != nil {
		return nil, err
	}

	storedRole := user.Role
	input.Role = nil

	if err := input.apply(user); err != nil {
		return nil, err
	}
	user.Role = storedRole

	if err := service.users.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("profile_updated", slog.Int64("user_id", user.ID))
	return user, nil
}
