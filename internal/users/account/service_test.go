// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/internal/users/auth/authtest"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

func newService() (*account.Service, *authtest.UserRepository) {
	users := authtest.NewUserRepository()
	return account.NewService(users, slog.New(slog.NewTextHandler(io.Discard, nil))), users
}

/*
TestUpdateProfile_IgnoresRole verifies that a user cannot promote themselves
through the self-service endpoint while the rest of the patch applies.
*/
func TestUpdateProfile_IgnoresRole(t *testing.T) {
	service, users := newService()
	ctx := context.Background()
	bob := users.Seed("bob", sec.RoleUser)

	updated, err := service.UpdateProfile(ctx, bob.Actor(), account.UpdateInput{
		Role: pointer.To(sec.RoleAdmin),
		Bio:  pointer.To("film buff"),
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, updated.Role)
	assert.Equal(t, "film buff", updated.Bio)

	stored, err := users.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, stored.Role)

	// Even a bogus role is ignored rather than rejected.
	again, err := service.UpdateProfile(ctx, bob.Actor(), account.UpdateInput{Role: pointer.To(sec.Role("overlord"))})
	require.NoError(t, err)
	assert.Equal(t, "film buff", again.Bio)
}

func TestUpdateProfile_Validates(t *testing.T) {
	service, users := newService()
	ctx := context.Background()
	bob := users.Seed("bob", sec.RoleUser)
	users.Seed("alice", sec.RoleUser)

	_, err := service.UpdateProfile(ctx, bob.Actor(), account.UpdateInput{Username: pointer.To("me")})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	_, err = service.UpdateProfile(ctx, bob.Actor(), account.UpdateInput{Email: pointer.To("nope")})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	_, err = service.UpdateProfile(ctx, bob.Actor(), account.UpdateInput{Username: pointer.To("alice")})
	assert.True(t, apperr.HasCode(err, "CONFLICT"))
}

func TestAdminUserLifecycle(t *testing.T) {
	service, users := newService()
	ctx := context.Background()

	created, err := service.CreateUser(ctx, account.CreateInput{Username: "carol", Email: "carol@x.com"})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, created.Role)

	_, err = service.CreateUser(ctx, account.CreateInput{Username: "dave", Email: "dave@x.com", Role: "root"})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	promoted, err := service.UpdateUser(ctx, "carol", account.UpdateInput{Role: pointer.To(sec.RoleModerator)})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, promoted.Role)

	page, total, err := service.ListUsers(ctx, auth.Filter{Search: "car"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "carol", page[0].Username)

	require.NoError(t, service.DeleteUser(ctx, "carol"))
	assert.Zero(t, users.Count())

	err = service.DeleteUser(ctx, "carol")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}
