// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// PostgresRepository implements [Repository] over one of the reference tables.
type PostgresRepository struct {
	db       postgres.DB
	table    schema.ReferenceTable
	resource string
}

// NewCategoryRepository returns a repository bound to the categories table.
func NewCategoryRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db, table: schema.Category, resource: KindCategory.Resource()}
}

// NewGenreRepository returns a repository bound to the genres table.
func NewGenreRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db, table: schema.Genre, resource: KindGenre.Resource()}
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var (
		entry = &Entry{}
		slug  *string
	)
	if err := row.Scan(&entry.ID, &entry.Name, &slug); err != nil {
		return nil, err
	}
	if slug != nil {
		entry.Slug = *slug
	}
	return entry, nil
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context, name string, limit, offset int) ([]*Entry, int, error) {
	t := repository.table

	whereClause := ""
	var args []any
	if name != "" {
		args = append(args, name)
		whereClause = fmt.Sprintf("WHERE %s = $1", t.Name)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, t.Table, whereClause)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, repository.resource)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		t.ID, t.Name, t.Slug, t.Table, whereClause, t.ID, len(args)-1, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, repository.resource)
	}
	defer rows.Close()

	entries := make([]*Entry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, repository.resource)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, repository.resource)
	}

	return entries, total, nil
}

// FindBySlug implements [Repository].
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Entry, error) {
	t := repository.table
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`, t.ID, t.Name, t.Slug, t.Table, t.Slug)

	entry, err := scanEntry(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, repository.resource)
	}
	return entry, nil
}

// Create implements [Repository]. A blank slug is stored as NULL so several
// genres may go without one.
func (repository *PostgresRepository) Create(context context.Context, entry *Entry) error {
	t := repository.table
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, NULLIF($2, '')) RETURNING %s`,
		t.Table, t.Name, t.Slug, t.ID)

	if err := repository.db.QueryRow(context, query, entry.Name, entry.Slug).Scan(&entry.ID); err != nil {
		return dberr.Wrap(err, repository.resource)
	}
	return nil
}

// DeleteBySlug implements [Repository].
func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	t := repository.table
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, repository.resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, repository.resource)
	}
	return nil
}
