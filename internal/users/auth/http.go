// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
)

// Handler implements the anonymous signup and token endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /signup : Registers an account and mails a confirmation code.
//   - POST /token  : Exchanges a confirmation code for an access token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)
	return router
}

type signupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
POST /api/v1/auth/signup

Description: Creates the account (or reuses the identical one) and sends a new
confirmation code to its email.

Response:
  - 200: {username, email}
  - 400: Validation failure or username/email taken by another account
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, signupResponse{Username: user.Username, Email: user.Email})
}

/*
POST /api/v1/auth/token

Response:
  - 200: {token}
  - 400: Unknown user, stale or wrong code (one generic message)
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input TokenInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.IssueToken(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldToken: token})
}
