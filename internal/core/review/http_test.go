// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/review"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

func newRouter() chi.Router {
	handler := review.NewHandler(newService(1))
	router := chi.NewRouter()
	router.Route("/titles/{title_id}/reviews", handler.RegisterRoutes)
	return router
}

func serve(handler http.Handler, actor *sec.Actor, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if actor != nil {
		request = request.WithContext(ctxutil.WithActor(request.Context(), actor))
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_ReviewFlow(t *testing.T) {
	router := newRouter()

	assert.Equal(t, http.StatusOK, serve(router, nil, http.MethodGet, "/titles/1/reviews/", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, nil, http.MethodGet, "/titles/9/reviews/", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, nil, http.MethodPost, "/titles/1/reviews/", `{"text":"x","score":5}`).Code)

	recorder := serve(router, author, http.MethodPost, "/titles/1/reviews/", `{"text":"Great","score":9}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"author":"alice"`)

	recorder = serve(router, author, http.MethodPost, "/titles/1/reviews/", `{"text":"Again","score":9}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	assert.Equal(t, http.StatusOK, serve(router, nil, http.MethodGet, "/titles/1/reviews/1", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(router, stranger, http.MethodPatch, "/titles/1/reviews/1", `{"score":1}`).Code)
	assert.Equal(t, http.StatusOK, serve(router, moderator, http.MethodPatch, "/titles/1/reviews/1", `{"score":8}`).Code)

	recorder = serve(router, stranger, http.MethodPost, "/titles/1/reviews/1/comments/", `{"text":"Nope"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	assert.Equal(t, http.StatusOK, serve(router, nil, http.MethodGet, "/titles/1/reviews/1/comments/2", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(router, author, http.MethodDelete, "/titles/1/reviews/1/comments/2", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(router, admin, http.MethodDelete, "/titles/1/reviews/1/comments/2", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, nil, http.MethodGet, "/titles/1/reviews/abc", "").Code)

	assert.Equal(t, http.StatusNoContent, serve(router, author, http.MethodDelete, "/titles/1/reviews/1", "").Code)
}
