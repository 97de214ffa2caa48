// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the Yamdb API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthN/AuthZ, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// TokenVerifier verifies bearer tokens. Implemented by [*sec.TokenService].
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// ActorLoader resolves the current state of a user named by a verified token.
// It returns an error when the user no longer exists.
type ActorLoader interface {
	LoadActor(ctx context.Context, userID int64) (*sec.Actor, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, verify the JWT via [TokenVerifier].
//  4. Load the user via [ActorLoader] so role changes apply immediately.
//  5. Inject [*sec.Actor] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, loader ActorLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Actor Resolution ───────────────────────────────────────────
			actor, err := loader.LoadActor(request.Context(), claims.UserID)
			if err != nil {
				if apperr.HasCode(err, "NOT_FOUND") {
					respond.Error(writer, request, apperr.Unauthorized("User not found"))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithActor(request.Context(), actor)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.Int64("user_id", actor.ID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks anonymous requests with 401.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !ctxutil.GetActor(request.Context()).IsAuthenticated() {
			respond.Error(writer, request, apperr.Unauthorized(sec.MsgAuthRequired))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// Authorize enforces the collection-level predicate of policy.
//
// Denials answer 401 for anonymous callers and 403 otherwise. Object-level
// checks are left to the services, which know the owner of the resource.
func Authorize(policy sec.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			actor := ctxutil.GetActor(request.Context())
			if err := sec.Check(policy, request.Method, actor); err != nil {
				respond.Error(writer, request, err)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
