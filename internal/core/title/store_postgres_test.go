// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/internal/platform/postgres/pgtest"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

func seedReference(t *testing.T, db postgres.DB) {
	t.Helper()
	_, err := db.Exec(context.Background(), `
		INSERT INTO categories (name, slug) VALUES ('Film', 'film'), ('Book', 'book');
		INSERT INTO genres (name, slug) VALUES ('Drama', 'drama'), ('Comedy', 'comedy');`)
	require.NoError(t, err)
}

func addReview(t *testing.T, db postgres.DB, titleID, authorID int64, score int) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		`INSERT INTO reviews (title_id, author_id, text, score) VALUES ($1, $2, 'text', $3)`,
		titleID, authorID, score)
	require.NoError(t, err)
}

func writeInput(name string, year int, category string, genres ...string) title.WriteInput {
	if genres == nil {
		genres = []string{}
	}
	return title.WriteInput{
		Name:     pointer.To(name),
		Year:     pointer.To(year),
		Category: pointer.To(category),
		Genres:   pointer.To(genres),
	}
}

func names(titles []*title.Title) []string {
	result := make([]string, 0, len(titles))
	for _, item := range titles {
		result = append(result, item.Name)
	}
	return result
}

/*
TestPostgresRepository runs the title service on the SQL repository so the
rating projection and the list filters are checked against PostgreSQL itself.
*/
func TestPostgresRepository(t *testing.T) {
	pool := pgtest.Start(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := title.NewService(title.NewPostgresRepository(pool), logger,
		title.WithClock(func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }))

	t.Run("rating_on_every_read_path", func(t *testing.T) {
		pgtest.Reset(t, pool)
		seedReference(t, pool)
		alice := pgtest.SeedUser(t, pool, "alice", sec.RoleUser)
		bob := pgtest.SeedUser(t, pool, "bob", sec.RoleUser)

		created, err := service.Create(ctx, writeInput("The Godfather", 1972, "film", "drama"))
		require.NoError(t, err)
		assert.Nil(t, created.Rating)
		require.NotNil(t, created.Category)
		assert.Equal(t, "film", created.Category.Slug)
		require.Len(t, created.Genres, 1)
		assert.Equal(t, "drama", created.Genres[0].Slug)

		got, err := service.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Rating)

		addReview(t, pool, created.ID, alice, 7)
		addReview(t, pool, created.ID, bob, 10)

		got, err = service.Get(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Rating)
		assert.InDelta(t, 8.5, *got.Rating, 1e-9)

		listed, total, err := service.List(ctx, title.Filter{}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, listed, 1)
		require.NotNil(t, listed[0].Rating)
		assert.InDelta(t, 8.5, *listed[0].Rating, 1e-9)

		updated, err := service.Update(ctx, created.ID, title.WriteInput{Genres: pointer.To([]string{"drama", "comedy"})})
		require.NoError(t, err)
		require.NotNil(t, updated.Rating)
		assert.InDelta(t, 8.5, *updated.Rating, 1e-9)
		assert.Len(t, updated.Genres, 2)
		assert.Equal(t, "The Godfather", updated.Name)

		again, err := service.Create(ctx, writeInput("Unrated", 2001, "book"))
		require.NoError(t, err)
		assert.Nil(t, again.Rating)
		assert.Empty(t, again.Genres)
	})

	t.Run("filters", func(t *testing.T) {
		pgtest.Reset(t, pool)
		seedReference(t, pool)

		for _, input := range []title.WriteInput{
			writeInput("The Godfather", 1972, "film", "drama"),
			writeInput("Superbad", 2007, "film", "comedy"),
			writeInput("War and Peace", 1869, "book", "drama"),
			writeInput("100%_sure", 2020, "book"),
		} {
			_, err := service.Create(ctx, input)
			require.NoError(t, err)
		}

		tests := []struct {
			name   string
			filter title.Filter
			want   []string
		}{
			{"none", title.Filter{}, []string{"The Godfather", "Superbad", "War and Peace", "100%_sure"}},
			{"genre", title.Filter{GenreSlugs: []string{"drama"}}, []string{"The Godfather", "War and Peace"}},
			{"genre_any_of", title.Filter{GenreSlugs: []string{"drama", "comedy"}}, []string{"The Godfather", "Superbad", "War and Peace"}},
			{"category", title.Filter{CategorySlug: "book"}, []string{"War and Peace", "100%_sure"}},
			{"name_case_insensitive", title.Filter{Name: "GOD"}, []string{"The Godfather"}},
			{"name_underscore_is_literal", title.Filter{Name: "_"}, []string{"100%_sure"}},
			{"name_percent_is_literal", title.Filter{Name: "%"}, []string{"100%_sure"}},
			{"year", title.Filter{Year: pointer.To(2007)}, []string{"Superbad"}},
			{"combined", title.Filter{GenreSlugs: []string{"drama"}, CategorySlug: "book"}, []string{"War and Peace"}},
			{"no_match", title.Filter{CategorySlug: "music"}, []string{}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				titles, total, err := service.List(ctx, tt.filter, 10, 0)
				require.NoError(t, err)
				assert.Equal(t, tt.want, names(titles))
				assert.Equal(t, len(tt.want), total)
			})
		}
	})

	t.Run("delete_category_keeps_title", func(t *testing.T) {
		pgtest.Reset(t, pool)
		seedReference(t, pool)

		created, err := service.Create(ctx, writeInput("Superbad", 2007, "film", "comedy"))
		require.NoError(t, err)

		_, err = pool.Exec(ctx, `DELETE FROM categories WHERE slug = 'film'`)
		require.NoError(t, err)

		got, err := service.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Category)
	})
}
