// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

func TestRedisConfirmationStore(t *testing.T) {
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := auth.NewConfirmationStore(client)
	ctx := context.Background()

	_, err := store.Find(ctx, "bob")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	first := &auth.Confirmation{UserID: 1, Email: "bob@x.com", CodeHash: "h1"}
	require.NoError(t, store.Save(ctx, "bob", first, time.Minute))

	second := &auth.Confirmation{UserID: 1, Email: "bob@x.com", CodeHash: "h2"}
	require.NoError(t, store.Save(ctx, "bob", second, time.Minute))

	got, err := store.Find(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, second, got)
	assert.True(t, server.Exists("auth:confirmation:bob"))
	assert.Equal(t, time.Minute, server.TTL("auth:confirmation:bob"))

	// A replaced entry is not consumed on behalf of the old one.
	err = store.Consume(ctx, "bob", first)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
	assert.True(t, server.Exists("auth:confirmation:bob"))

	require.NoError(t, store.Consume(ctx, "bob", got))
	err = store.Consume(ctx, "bob", got)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
	_, err = store.Find(ctx, "bob")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}
