// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := newTokenService(t, "yamdb.test")

	token, err := tokens.GenerateAccessToken(42, "alice", "moderator", time.Hour)
	require.NoError(t, err)

	claims, err := tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenService_RejectsExpiredAndForeignTokens(t *testing.T) {
	tokens := newTokenService(t, "yamdb.test")

	expired, err := tokens.GenerateAccessToken(1, "bob", "user", -time.Minute)
	require.NoError(t, err)
	_, err = tokens.VerifyToken(expired)
	assert.Error(t, err)

	foreign := newTokenService(t, "yamdb.test")
	token, err := foreign.GenerateAccessToken(1, "bob", "user", time.Hour)
	require.NoError(t, err)
	_, err = tokens.VerifyToken(token)
	assert.Error(t, err)

	_, err = tokens.VerifyToken("not-a-jwt")
	assert.Error(t, err)
}

func TestSecretHash(t *testing.T) {
	code, err := sec.GenerateSecureToken(16)
	require.NoError(t, err)
	assert.Len(t, code, 32)

	hash, err := sec.HashSecret(code)
	require.NoError(t, err)
	assert.True(t, sec.CheckSecretHash(code, hash))
	assert.False(t, sec.CheckSecretHash(code+"x", hash))
}
