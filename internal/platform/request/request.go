// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID parses a numeric URL parameter.

A non-numeric or non-positive value cannot address any row, so it is reported as
a missing resource.
*/
func ID(request *http.Request, name, resource string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}

/*
Actor returns the caller resolved by the authentication middleware.

Returns nil if the request is anonymous.
*/
func Actor(request *http.Request) *sec.Actor {
	return ctxutil.GetActor(request.Context())
}

/*
RequiredActor ensures the request is authenticated and returns the caller.

Returns:
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredActor(request *http.Request) (*sec.Actor, error) {
	actor := ctxutil.GetActor(request.Context())
	if actor == nil {
		return nil, apperr.Unauthorized(sec.MsgAuthRequired)
	}
	return actor, nil
}
