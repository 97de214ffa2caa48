// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/api"
	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/review"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/internal/users/auth/authtest"
)

type settings struct{}

func (settings) IsDevelopment() bool { return true }
func (settings) Origins() []string   { return nil }
func (settings) Port() string        { return "0" }

type codeBox struct {
	mu   sync.Mutex
	code string
}

func (box *codeBox) SendConfirmationCode(_ context.Context, _, _, code string) error {
	box.mu.Lock()
	defer box.mu.Unlock()
	box.code = code
	return nil
}

type fixture struct {
	router http.Handler
	users  *authtest.UserRepository
	codes  *codeBox
	tokens *sec.TokenService
}

func newFixture(t *testing.T, health api.HealthDependencies) *fixture {
	t.Helper()

	redisServer := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: redisServer.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		users:  authtest.NewUserRepository(),
		codes:  &codeBox{},
		tokens: sec.NewTokenServiceFromKeys(key, &key.PublicKey, "yamdb.test"),
	}

	authService := auth.NewService(f.users, auth.NewConfirmationStore(client), f.tokens, f.codes, auth.Settings{}, logger)
	liveness, readiness := api.NewHealthHandlers(health, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	f.router = api.NewRouter(ctx, settings{}, logger,
		api.Identity{Verifier: f.tokens, Loader: authService},
		api.Handlers{
			Liveness:   liveness,
			Readiness:  readiness,
			Auth:       auth.NewHandler(authService),
			Users:      account.NewHandler(account.NewService(f.users, logger)),
			Categories: reference.NewHandler(nil),
			Genres:     reference.NewHandler(nil),
			Titles:     title.NewHandler(nil),
			Reviews:    review.NewHandler(nil),
		},
	)
	return f
}

func (f *fixture) do(method, target, token, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestSignupTokenProfileFlow walks a user from signup to editing their own profile.
*/
func TestSignupTokenProfileFlow(t *testing.T) {
	f := newFixture(t, api.HealthDependencies{})

	recorder := f.do(http.MethodPost, "/api/v1/auth/signup/", "", `{"username":"neo","email":"neo@matrix.io"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = f.do(http.MethodPost, "/api/v1/auth/token", "", `{"username":"neo","confirmation_code":"`+f.codes.code+`"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var tokenPayload struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &tokenPayload))
	token := tokenPayload.Data.Token
	require.NotEmpty(t, token)

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/users/me", "", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/users/me/", token, "").Code)

	recorder = f.do(http.MethodPatch, "/api/v1/users/me", token, `{"role":"admin","bio":"The One"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"role":"user"`)

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/users", token, "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/users/me", "garbage", "").Code)
}

/*
TestAuthenticate_ReloadsUser verifies that role changes apply to existing tokens
and deleted users are rejected.
*/
func TestAuthenticate_ReloadsUser(t *testing.T) {
	f := newFixture(t, api.HealthDependencies{})
	ctx := context.Background()

	user := f.users.Seed("trinity", sec.RoleUser)
	token, err := f.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/users", token, "").Code)

	user.Role = sec.RoleAdmin
	require.NoError(t, f.users.Update(ctx, user))
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/users", token, "").Code)

	require.NoError(t, f.users.Delete(ctx, user.ID))
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/users/me", token, "").Code)
}

func TestHealth(t *testing.T) {
	f := newFixture(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("redis down") },
	})

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "", "").Code)

	recorder := f.do(http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"degraded"`)
	assert.Contains(t, recorder.Body.String(), "redis down")
}
