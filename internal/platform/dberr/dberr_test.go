// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		status  int
		message string
	}{
		{
			name:   "no_rows",
			err:    fmt.Errorf("scan: %w", pgx.ErrNoRows),
			code:   "NOT_FOUND",
			status: http.StatusNotFound,
		},
		{
			name:    "unique_review",
			err:     &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: schema.ConstraintUniqueReview},
			code:    "CONFLICT",
			status:  http.StatusBadRequest,
			message: "You have already reviewed this title",
		},
		{
			name:    "unknown_unique",
			err:     &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "whatever"},
			code:    "CONFLICT",
			status:  http.StatusBadRequest,
			message: "Review already exists",
		},
		{
			name:    "username_format",
			err:     &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: schema.ConstraintUsernameFormat},
			code:    "VALIDATION_ERROR",
			status:  http.StatusBadRequest,
			message: "Only letters, digits and @/./+/-/_ are allowed in usernames",
		},
		{
			name:   "foreign_key",
			err:    &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation},
			code:   "VALIDATION_ERROR",
			status: http.StatusBadRequest,
		},
		{
			name:   "unexpected",
			err:    errors.New("connection reset"),
			code:   "INTERNAL_ERROR",
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "Review"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
			assert.Equal(t, tt.status, ae.HTTPStatus)
			if tt.message != "" {
				assert.Equal(t, tt.message, ae.Message)
			}
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Review"))
}

func TestWrap_PassesAppErrorsThrough(t *testing.T) {
	original := apperr.Forbidden("nope")
	assert.Same(t, original, dberr.Wrap(original, "Review"))
}
