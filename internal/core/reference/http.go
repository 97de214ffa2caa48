// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Handler implements the HTTP layer for one taxonomy.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /categories or /genres.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Authorize(sec.ReadOnlyOrAdmin))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{slug}", handler.delete)

	return router
}

/*
GET /api/v1/{categories|genres}/?search=&page=&limit=

Request:
  - search: exact name to match (optional)

Response:
  - 200: []Entry with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	entries, total, err := handler.service.List(request.Context(), request.URL.Query().Get("search"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/{categories|genres}/

Request:
  - Body: CreateInput

Response:
  - 201: Entry
  - 400: Validation failure or duplicate slug
  - 401/403: Not an administrator
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

// DELETE /api/v1/{categories|genres}/{slug}
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
