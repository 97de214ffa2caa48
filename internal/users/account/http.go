// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Handler implements the HTTP layer for user accounts.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] for /users.
//
// /me is registered for every method so it never falls through to
// /{username}; unsupported methods answer 405.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireAuth).HandleFunc("/"+validate.ReservedUsername, handler.me)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authorize(sec.AdminOnly))

		r.Get("/", handler.listUsers)
		r.Post("/", handler.createUser)
		r.Get("/{username}", handler.getUser)
		r.Patch("/{username}", handler.updateUser)
		r.Delete("/{username}", handler.deleteUser)
	})

	return router
}

// # Self Service

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	switch request.Method {
	case http.MethodGet:
		handler.getMe(writer, request)
	case http.MethodPatch:
		handler.updateMe(writer, request)
	default:
		writer.Header().Set("Allow", "GET, PATCH")
		respond.Error(writer, request, apperr.MethodNotAllowed(request.Method))
	}
}

/*
GET /api/v1/users/me

Response:
  - 200: User: The caller's account
  - 401: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me

Description: Partial profile update. A role in the payload is ignored.
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Administration

/*
GET /api/v1/users/?search=&page=&limit=

Response:
  - 200: []User ordered by username, with pagination meta
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := auth.Filter{Search: strings.TrimSpace(request.URL.Query().Get("search"))}

	users, total, err := handler.accountService.ListUsers(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.CreateUser(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.accountService.GetUser(request.Context(), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateUser(request.Context(), requestutil.Param(request, "username"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	if err := handler.accountService.DeleteUser(request.Context(), requestutil.Param(request, "username")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
