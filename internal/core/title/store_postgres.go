// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

const resourceTitle = "Title"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new PostgreSQL title repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Read Path

// titleSelect projects a title, its category and the mean review score.
// Every read goes through it so the rating is computed the same way everywhere.
var titleSelect = fmt.Sprintf(`
	SELECT t.%[1]s, t.%[2]s, t.%[3]s, t.%[4]s,
	       (SELECT AVG(r.%[5]s)::float8 FROM %[6]s r WHERE r.%[7]s = t.%[1]s),
	       c.%[8]s, c.%[9]s, c.%[10]s
	FROM %[11]s t
	LEFT JOIN %[12]s c ON c.%[8]s = t.%[13]s`,
	schema.Title.ID, schema.Title.Name, schema.Title.Year, schema.Title.Description,
	schema.Review.Score, schema.Review.Table, schema.Review.TitleID,
	schema.Category.ID, schema.Category.Name, schema.Category.Slug,
	schema.Title.Table, schema.Category.Table, schema.Title.CategoryID,
)

func scanTitle(row pgx.Row) (*Title, error) {
	var (
		title        = &Title{Genres: []reference.Entry{}}
		categoryID   *int64
		categoryName *string
		categorySlug *string
	)
	err := row.Scan(
		&title.ID, &title.Name, &title.Year, &title.Description,
		&title.Rating,
		&categoryID, &categoryName, &categorySlug,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		title.Category = &reference.Entry{ID: *categoryID}
		if categoryName != nil {
			title.Category.Name = *categoryName
		}
		if categorySlug != nil {
			title.Category.Slug = *categorySlug
		}
	}
	return title, nil
}

func buildFilter(filter Filter) (string, []any) {
	var (
		where []string
		args  []any
	)

	if len(filter.GenreSlugs) > 0 {
		args = append(args, filter.GenreSlugs)
		where = append(where, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM %s tg JOIN %s g ON g.%s = tg.%s
			WHERE tg.%s = t.%s AND g.%s = ANY($%d))`,
			schema.TitleGenre.Table, schema.Genre.Table, schema.Genre.ID, schema.TitleGenre.GenreID,
			schema.TitleGenre.TitleID, schema.Title.ID, schema.Genre.Slug, len(args)))
	}
	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		where = append(where, fmt.Sprintf(`c.%s = $%d`, schema.Category.Slug, len(args)))
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		where = append(where, fmt.Sprintf(`strpos(lower(t.%s), lower($%d)) > 0`, schema.Title.Name, len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		where = append(where, fmt.Sprintf(`t.%s = $%d`, schema.Title.Year, len(args)))
	}

	if len(where) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(where, " AND "), args
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	whereClause, args := buildFilter(filter)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s t LEFT JOIN %s c ON c.%s = t.%s %s`,
		schema.Title.Table, schema.Category.Table, schema.Category.ID, schema.Title.CategoryID, whereClause)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceTitle)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`%s %s ORDER BY t.%s LIMIT $%d OFFSET $%d`,
		titleSelect, whereClause, schema.Title.ID, len(args)-1, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceTitle)
	}
	defer rows.Close()

	titles := make([]*Title, 0, limit)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceTitle)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceTitle)
	}

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Title, error) {
	query := fmt.Sprintf(`%s WHERE t.%s = $1`, titleSelect, schema.Title.ID)

	title, err := scanTitle(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceTitle)
	}

	if err := repository.attachGenres(context, []*Title{title}); err != nil {
		return nil, err
	}
	return title, nil
}

// attachGenres loads the genre sets of titles in one round trip.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	byID := make(map[int64]*Title, len(titles))
	ids := make([]int64, 0, len(titles))
	for _, title := range titles {
		byID[title.ID] = title
		ids = append(ids, title.ID)
	}

	query := fmt.Sprintf(`
		SELECT tg.%s, g.%s, g.%s, g.%s
		FROM %s tg JOIN %s g ON g.%s = tg.%s
		WHERE tg.%s = ANY($1)
		ORDER BY tg.%s`,
		schema.TitleGenre.TitleID, schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug,
		schema.TitleGenre.Table, schema.Genre.Table, schema.Genre.ID, schema.TitleGenre.GenreID,
		schema.TitleGenre.TitleID, schema.TitleGenre.ID,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			titleID int64
			genre   reference.Entry
			slug    *string
		)
		if err := rows.Scan(&titleID, &genre.ID, &genre.Name, &slug); err != nil {
			return dberr.Wrap(err, resourceTitle)
		}
		if slug != nil {
			genre.Slug = *slug
		}
		if title, ok := byID[titleID]; ok {
			title.Genres = append(title.Genres, genre)
		}
	}
	return dberr.Wrap(rows.Err(), resourceTitle)
}

// # Reference Lookups

// ResolveCategory implements [Repository].
func (repository *PostgresRepository) ResolveCategory(context context.Context, slug string) (*reference.Entry, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.Category.ID, schema.Category.Name, schema.Category.Slug, schema.Category.Table, schema.Category.Slug)

	entry := &reference.Entry{}
	if err := repository.db.QueryRow(context, query, slug).Scan(&entry.ID, &entry.Name, &entry.Slug); err != nil {
		return nil, dberr.Wrap(err, reference.KindCategory.Resource())
	}
	return entry, nil
}

// ResolveGenres implements [Repository].
func (repository *PostgresRepository) ResolveGenres(context context.Context, slugs []string) ([]reference.Entry, error) {
	genres := []reference.Entry{}
	if len(slugs) == 0 {
		return genres, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s`,
		schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug, schema.Genre.Table, schema.Genre.Slug, schema.Genre.ID)

	rows, err := repository.db.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, reference.KindGenre.Resource())
	}
	defer rows.Close()

	for rows.Next() {
		var genre reference.Entry
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug); err != nil {
			return nil, dberr.Wrap(err, reference.KindGenre.Resource())
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, reference.KindGenre.Resource())
	}
	return genres, nil
}

// # Write Path

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, record *Record) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		schema.Title.Table,
		schema.Title.Name, schema.Title.Year, schema.Title.Description, schema.Title.CategoryID,
		schema.Title.ID,
	)

	var id int64
	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(context, query,
			record.Name, record.Year, record.Description, record.CategoryID,
		).Scan(&id); err != nil {
			return err
		}
		return insertGenres(context, tx, id, record.GenreIDs)
	})
	if err != nil {
		return 0, dberr.Wrap(err, resourceTitle)
	}
	return id, nil
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(context context.Context, id int64, record *Record) error {
	updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		schema.Title.Table,
		schema.Title.Name, schema.Title.Year, schema.Title.Description, schema.Title.CategoryID,
		schema.Title.ID,
	)
	clearQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.TitleGenre.Table, schema.TitleGenre.TitleID)

	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(context, updateQuery, id, record.Name, record.Year, record.Description, record.CategoryID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		if _, err := tx.Exec(context, clearQuery, id); err != nil {
			return err
		}
		return insertGenres(context, tx, id, record.GenreIDs)
	})
	return dberr.Wrap(err, resourceTitle)
}

func insertGenres(context context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`,
		schema.TitleGenre.Table, schema.TitleGenre.TitleID, schema.TitleGenre.GenreID)

	_, err := tx.Exec(context, query, titleID, genreIDs)
	return err
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Title.Table, schema.Title.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceTitle)
	}
	return nil
}
