// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
)

// constraintMessages holds client-facing messages for named constraints.
var constraintMessages = map[string]string{
	schema.ConstraintUniqueReview:   "You have already reviewed this title",
	schema.ConstraintUsernameUnique: "A user with that username already exists",
	schema.ConstraintEmailUnique:    "A user with that email already exists",
	schema.ConstraintCategorySlug:   "A category with this slug already exists",
	schema.ConstraintGenreSlug:      "A genre with this slug already exists",
	schema.ConstraintUsernameNotMe:  "The username \"me\" is reserved",
	schema.ConstraintUsernameFormat: "Only letters, digits and @/./+/-/_ are allowed in usernames",
	schema.ConstraintReviewScore:    "Score must be between 1 and 10",
	schema.ConstraintUserRole:       "Unknown role",
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
//   - pgx.ErrNoRows becomes NotFound(resource)
//   - unique_violation becomes Conflict (400)
//   - foreign key, check and not-null violations become ValidationError (400)
//   - anything else becomes Internal (500)
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(message(pgErr, resource+" already exists")).WithCause(err)
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError(message(pgErr, "Referenced object does not exist")).WithCause(err)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return apperr.ValidationError(message(pgErr, "Invalid "+resource)).WithCause(err)
		}
	}

	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func message(pgErr *pgconn.PgError, fallback string) string {
	if msg, ok := constraintMessages[pgErr.ConstraintName]; ok {
		return msg
	}
	return fallback
}
