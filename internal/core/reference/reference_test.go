// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

type memoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	entries []*reference.Entry
}

func (m *memoryRepository) List(_ context.Context, name string, limit, offset int) ([]*reference.Entry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*reference.Entry
	for _, entry := range m.entries {
		if name == "" || entry.Name == name {
			matched = append(matched, entry)
		}
	}
	total := len(matched)
	if offset >= total {
		return []*reference.Entry{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (m *memoryRepository) FindBySlug(_ context.Context, slug string) (*reference.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.entries {
		if slug != "" && entry.Slug == slug {
			return entry, nil
		}
	}
	return nil, apperr.NotFound("Entry")
}

func (m *memoryRepository) Create(_ context.Context, entry *reference.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.entries {
		if entry.Slug != "" && existing.Slug == entry.Slug {
			return apperr.Conflict("An entry with this slug already exists")
		}
	}
	m.nextID++
	entry.ID = m.nextID
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryRepository) DeleteBySlug(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, entry := range m.entries {
		if slug != "" && entry.Slug == slug {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Entry")
}

func newService(kind reference.Kind) *reference.Service {
	return reference.NewService(&memoryRepository{}, kind, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestCreate_Category covers slug rules for categories.
*/
func TestCreate_Category(t *testing.T) {
	service := newService(reference.KindCategory)
	ctx := context.Background()

	entry, err := service.Create(ctx, reference.CreateInput{Name: "Films", Slug: "films"})
	require.NoError(t, err)
	assert.Equal(t, "films", entry.Slug)

	tests := []struct {
		name  string
		input reference.CreateInput
		code  string
	}{
		{"missing_slug", reference.CreateInput{Name: "Books"}, "VALIDATION_ERROR"},
		{"bad_slug", reference.CreateInput{Name: "Books", Slug: "books!"}, "VALIDATION_ERROR"},
		{"long_slug", reference.CreateInput{Name: "Books", Slug: strings.Repeat("b", 51)}, "VALIDATION_ERROR"},
		{"missing_name", reference.CreateInput{Slug: "books"}, "VALIDATION_ERROR"},
		{"long_name", reference.CreateInput{Name: strings.Repeat("n", 257), Slug: "books"}, "VALIDATION_ERROR"},
		{"duplicate_slug", reference.CreateInput{Name: "Movies", Slug: "films"}, "CONFLICT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.input)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
		})
	}
}

/*
TestCreate_GenreDerivesSlug verifies that a genre created without a slug gets
one from its name.
*/
func TestCreate_GenreDerivesSlug(t *testing.T) {
	service := newService(reference.KindGenre)
	ctx := context.Background()

	entry, err := service.Create(ctx, reference.CreateInput{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", entry.Slug)

	entry, err = service.Create(ctx, reference.CreateInput{Name: "!!!"})
	require.NoError(t, err)
	assert.Empty(t, entry.Slug)

	entry, err = service.Create(ctx, reference.CreateInput{Name: "???"})
	require.NoError(t, err, "several genres may go without a slug")
	assert.Empty(t, entry.Slug)
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

func TestHandler_Permissions(t *testing.T) {
	router := reference.NewHandler(newService(reference.KindCategory)).Routes()
	admin := &sec.Actor{ID: 1, Username: "root", Role: sec.RoleAdmin}
	moderator := &sec.Actor{ID: 2, Username: "mod", Role: sec.RoleModerator}
	body := `{"name":"Films","slug":"films"}`

	assert.Equal(t, http.StatusUnauthorized, serve(router, nil, http.MethodPost, "/", body).Code)
	assert.Equal(t, http.StatusForbidden, serve(router, moderator, http.MethodPost, "/", body).Code)
	assert.Equal(t, http.StatusCreated, serve(router, admin, http.MethodPost, "/", body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, admin, http.MethodPost, "/", body).Code)

	recorder := serve(router, nil, http.MethodGet, "/?search=Films", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var payload struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	require.Len(t, payload.Data, 1)
	assert.Equal(t, map[string]any{"name": "Films", "slug": "films"}, payload.Data[0])

	recorder = serve(router, nil, http.MethodGet, "/?search=Film", "")
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Empty(t, payload.Data)

	assert.Equal(t, http.StatusForbidden, serve(router, moderator, http.MethodDelete, "/films", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(router, admin, http.MethodDelete, "/films", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, admin, http.MethodDelete, "/films", "").Code)
}
