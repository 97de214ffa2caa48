// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "test-request-id")
	assert.Equal(t, "test-request-id", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Actor verifies that the caller survives a round trip and that an
empty context resolves to the anonymous (nil) actor.
*/
func TestContext_Actor(t *testing.T) {
	ctx := context.Background()

	anonymous := ctxutil.GetActor(ctx)
	assert.Nil(t, anonymous)
	assert.False(t, anonymous.IsAuthenticated())

	ctx = ctxutil.WithActor(ctx, &sec.Actor{ID: 7, Username: "moe", Role: sec.RoleModerator})
	actor := ctxutil.GetActor(ctx)

	assert.NotNil(t, actor)
	assert.Equal(t, int64(7), actor.ID)
	assert.True(t, actor.IsModerator())
	assert.False(t, actor.IsAdmin())
}
