// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/query"
)

// ParamTitleID is the URL parameter naming a title. Nested review routes share it.
const ParamTitleID = "title_id"

// Handler implements the HTTP layer for titles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the title endpoints on router. The policy is scoped to
// a group so nested routes keep their own.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authorize(sec.ReadOnlyOrAdmin))

		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{"+ParamTitleID+"}", handler.get)
		r.Patch("/{"+ParamTitleID+"}", handler.update)
		r.Delete("/{"+ParamTitleID+"}", handler.delete)
	})
}

// Routes returns a standalone [chi.Router] with the title endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

/*
GET /api/v1/titles/?genre=&category=&name=&year=&page=&limit=

Request:
  - genre: comma-separated genre slugs, any of
  - category: category slug
  - name: substring of the title name
  - year: exact year

Response:
  - 200: []Title with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	year, err := query.OptionalInt(values.Get(FieldYear))
	if err != nil {
		respond.Error(writer, request, validate.FieldError(FieldYear, "Must be an integer"))
		return
	}

	filter := Filter{
		GenreSlugs:   query.StringSlice(values.Get(FieldGenre)),
		CategorySlug: strings.TrimSpace(values.Get(FieldCategory)),
		Name:         strings.TrimSpace(values.Get(FieldName)),
		Year:         year,
	}
	params := pagination.FromRequest(request)

	titles, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/titles/{title_id}

Response:
  - 200: Title
  - 404: Title not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, ParamTitleID, resourceTitle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
POST /api/v1/titles/

Request:
  - Body: {name, year, description, category: slug, genre: [slug]}

Response:
  - 201: Title
  - 400: Validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input WriteInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

// PATCH /api/v1/titles/{title_id}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, ParamTitleID, resourceTitle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input WriteInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// DELETE /api/v1/titles/{title_id}
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, ParamTitleID, resourceTitle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
