// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"net/http"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// Denial messages shared by the middleware and the services.
const (
	MsgAuthRequired     = "Authentication credentials were not provided"
	MsgPermissionDenied = "You do not have permission to perform this action"
)

// Policy decides whether an actor may perform a method on a collection and on
// an individual resource owned by ownerID.
type Policy interface {
	Allow(method string, actor *Actor) bool
	AllowObject(method string, actor *Actor, ownerID int64) bool
}

// IsSafeMethod reports whether method only reads state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// # Policies

type readOnlyOrAdmin struct{}

func (readOnlyOrAdmin) Allow(method string, actor *Actor) bool {
	return IsSafeMethod(method) || actor.IsAdmin()
}

func (readOnlyOrAdmin) AllowObject(method string, actor *Actor, _ int64) bool {
	return IsSafeMethod(method) || actor.IsAdmin()
}

type readOnlyOrAuthorModeratorAdmin struct{}

func (readOnlyOrAuthorModeratorAdmin) Allow(method string, actor *Actor) bool {
	return IsSafeMethod(method) || actor.IsAuthenticated()
}

func (readOnlyOrAuthorModeratorAdmin) AllowObject(method string, actor *Actor, ownerID int64) bool {
	return IsSafeMethod(method) || actor.Owns(ownerID) || actor.IsModerator() || actor.IsAdmin()
}

type adminOnly struct{}

func (adminOnly) Allow(_ string, actor *Actor) bool { return actor.IsAdmin() }

func (adminOnly) AllowObject(_ string, actor *Actor, _ int64) bool { return actor.IsAdmin() }

var (
	// ReadOnlyOrAdmin guards categories, genres and titles.
	ReadOnlyOrAdmin Policy = readOnlyOrAdmin{}

	// ReadOnlyOrAuthorModeratorAdmin guards reviews and comments.
	ReadOnlyOrAuthorModeratorAdmin Policy = readOnlyOrAuthorModeratorAdmin{}

	// AdminOnly guards user management.
	AdminOnly Policy = adminOnly{}
)

// # Enforcement

// Deny returns the error for a refused request: 401 for anonymous callers and
// 403 for everyone else.
func Deny(actor *Actor) *apperr.AppError {
	if !actor.IsAuthenticated() {
		return apperr.Unauthorized(MsgAuthRequired)
	}
	return apperr.Forbidden(MsgPermissionDenied)
}

// Check applies the collection predicate of policy.
func Check(policy Policy, method string, actor *Actor) error {
	if policy.Allow(method, actor) {
		return nil
	}
	return Deny(actor)
}

// CheckObject applies both predicates of policy to a resource owned by ownerID.
func CheckObject(policy Policy, method string, actor *Actor, ownerID int64) error {
	if policy.Allow(method, actor) && policy.AllowObject(method, actor, ownerID) {
		return nil
	}
	return Deny(actor)
}
