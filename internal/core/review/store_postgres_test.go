// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/review"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/internal/platform/postgres/pgtest"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

func seedTitle(t *testing.T, db postgres.DB, name string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO titles (name, year) VALUES ($1, 2000) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

/*
TestPostgresRepository checks review uniqueness and nesting against the
schema constraints.
*/
func TestPostgresRepository(t *testing.T) {
	pool := pgtest.Start(t)
	ctx := context.Background()
	repo := review.NewPostgresRepository(pool)
	service := review.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("one_review_per_author_and_title", func(t *testing.T) {
		pgtest.Reset(t, pool)
		aliceID := pgtest.SeedUser(t, pool, "alice", sec.RoleUser)
		alice := &sec.Actor{ID: aliceID, Username: "alice", Role: sec.RoleUser}
		dune := seedTitle(t, pool, "Dune")
		solaris := seedTitle(t, pool, "Solaris")

		exists, err := repo.ReviewExists(ctx, dune, aliceID)
		require.NoError(t, err)
		assert.False(t, exists)

		created, err := service.CreateReview(ctx, alice, dune, review.ReviewInput{Text: pointer.To("Great"), Score: pointer.To(9)})
		require.NoError(t, err)
		assert.False(t, created.PubDate.IsZero())

		exists, err = repo.ReviewExists(ctx, dune, aliceID)
		require.NoError(t, err)
		assert.True(t, exists)

		_, err = service.CreateReview(ctx, alice, dune, review.ReviewInput{Text: pointer.To("Again"), Score: pointer.To(3)})
		assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

		err = repo.CreateReview(ctx, &review.Review{TitleID: dune, AuthorID: aliceID, Text: "Race", Score: 5})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		assert.Equal(t, "You have already reviewed this title", ae.Message)

		_, err = service.CreateReview(ctx, alice, solaris, review.ReviewInput{Text: pointer.To("Fine"), Score: pointer.To(6)})
		require.NoError(t, err)

		reviews, total, err := service.ListReviews(ctx, dune, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, reviews, 1)
		assert.Equal(t, 9, reviews[0].Score)
		assert.Equal(t, "alice", reviews[0].Author)
	})

	t.Run("score_range_is_enforced_by_storage", func(t *testing.T) {
		pgtest.Reset(t, pool)
		bobID := pgtest.SeedUser(t, pool, "bob", sec.RoleUser)
		dune := seedTitle(t, pool, "Dune")

		err := repo.CreateReview(ctx, &review.Review{TitleID: dune, AuthorID: bobID, Text: "Off the scale", Score: 11})
		assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
	})

	t.Run("comments_are_scoped_to_their_review", func(t *testing.T) {
		pgtest.Reset(t, pool)
		aliceID := pgtest.SeedUser(t, pool, "alice", sec.RoleUser)
		bobID := pgtest.SeedUser(t, pool, "bob", sec.RoleUser)
		alice := &sec.Actor{ID: aliceID, Username: "alice", Role: sec.RoleUser}
		bob := &sec.Actor{ID: bobID, Username: "bob", Role: sec.RoleUser}
		dune := seedTitle(t, pool, "Dune")
		solaris := seedTitle(t, pool, "Solaris")

		first, err := service.CreateReview(ctx, alice, dune, review.ReviewInput{Text: pointer.To("Great"), Score: pointer.To(9)})
		require.NoError(t, err)
		second, err := service.CreateReview(ctx, bob, dune, review.ReviewInput{Text: pointer.To("Meh"), Score: pointer.To(4)})
		require.NoError(t, err)

		comment, err := service.CreateComment(ctx, bob, dune, first.ID, review.CommentInput{Text: pointer.To("Agreed")})
		require.NoError(t, err)

		_, err = service.GetComment(ctx, dune, second.ID, comment.ID)
		assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
		_, err = service.GetComment(ctx, solaris, first.ID, comment.ID)
		assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

		got, err := service.GetComment(ctx, dune, first.ID, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, "Agreed", got.Text)
		assert.Equal(t, "bob", got.Author)

		_, err = pool.Exec(ctx, `DELETE FROM titles WHERE id = $1`, dune)
		require.NoError(t, err)

		_, err = repo.FindComment(ctx, first.ID, comment.ID)
		assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
	})
}
