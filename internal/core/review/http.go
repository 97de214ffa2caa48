// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// URL parameters of the nested routes.
const (
	ParamReviewID  = "review_id"
	ParamCommentID = "comment_id"
)

// Handler implements the HTTP layer for reviews and comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the review and comment endpoints on a router that is
// already scoped to /titles/{title_id}/reviews.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authorize(policy))

		r.Get("/", handler.listReviews)
		r.Post("/", handler.createReview)

		r.Route("/{"+ParamReviewID+"}", func(r chi.Router) {
			r.Get("/", handler.getReview)
			r.Patch("/", handler.updateReview)
			r.Delete("/", handler.deleteReview)

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", handler.listComments)
				r.Post("/", handler.createComment)
				r.Get("/{"+ParamCommentID+"}", handler.getComment)
				r.Patch("/{"+ParamCommentID+"}", handler.updateComment)
				r.Delete("/{"+ParamCommentID+"}", handler.deleteComment)
			})
		})
	})
}

// path carries the ids addressed by a nested route.
type path struct {
	titleID   int64
	reviewID  int64
	commentID int64
}

// parsePath reads the ids up to the given depth: 1 = title, 2 = review, 3 = comment.
func parsePath(request *http.Request, depth int) (path, error) {
	var (
		p   path
		err error
	)
	if p.titleID, err = requestutil.ID(request, title.ParamTitleID, resourceTitle); err != nil {
		return p, err
	}
	if depth >= 2 {
		if p.reviewID, err = requestutil.ID(request, ParamReviewID, resourceReview); err != nil {
			return p, err
		}
	}
	if depth >= 3 {
		if p.commentID, err = requestutil.ID(request, ParamCommentID, resourceComment); err != nil {
			return p, err
		}
	}
	return p, nil
}

// # Reviews

/*
GET /api/v1/titles/{title_id}/reviews/

Response:
  - 200: []Review with pagination meta
  - 404: Title not found
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, 1)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	params := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListReviews(request.Context(), p.titleID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/titles/{title_id}/reviews/

Request:
  - Body: {text, score}

Response:
  - 201: Review
  - 400: Validation failure or the caller already reviewed this title
  - 401: Anonymous caller
  - 404: Title not found
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, 1)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), requestutil.Actor(request), p.titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

// GET /api/v1/titles/{title_id}/reviews/{review_id}
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, 2)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.GetReview(request.Context(), p.titleID, p.reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
PATCH /api/v1/titles/{title_id}/reviews/{review_id}

Response:
  - 200: Review
  - 403: Caller is neither the author nor a moderator or administrator
*/
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, 2)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), requestutil.Actor(request), p.titleID, p.reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// DELETE /api/v1/titles/{title_id}/reviews/{review_id}
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, 2)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), requestutil.Actor(request), p.titleID, p.reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comments

// GET /api/v1/titles/{title_id}/reviews/{review_id}/comments/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, 2)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	params := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), p.titleID, p.reviewID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

// POST /api/v1/titles/{title_id}/reviews/{review_id}/comments/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, 2)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), requestutil.Actor(request), p.titleID, p.reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// GET /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}
func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, 3)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.GetComment(request.Context(), p.titleID, p.reviewID, p.commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// PATCH /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, 3)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), requestutil.Actor(request), p.titleID, p.reviewID, p.commentID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// DELETE /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, 3)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), requestutil.Actor(request), p.titleID, p.reviewID, p.commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
