// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db postgres.DB
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var userColumns = strings.Join([]string{
	schema.User.ID, schema.User.Username, schema.User.Email, schema.User.FirstName,
	schema.User.LastName, schema.User.Bio, schema.User.Role, schema.User.IsSuperuser,
	schema.User.DateJoined, schema.User.LastLogin,
}, ", ")

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName,
		&user.LastName, &user.Bio, &user.Role, &user.IsSuperuser,
		&user.DateJoined, &user.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID implements [UserRepository].
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.User.Table, schema.User.ID)

	user, err := scanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// FindByUsername implements [UserRepository].
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.User.Table, schema.User.Username)

	user, err := scanUser(repository.db.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// ExistsByUsernameOrEmail implements [UserRepository].
func (repository *PostgresUserRepository) ExistsByUsernameOrEmail(context context.Context, username, email string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %[1]s WHERE lower(%[2]s) = lower($1) OR lower(%[3]s) = lower($2)
		)`, schema.User.Table, schema.User.Username, schema.User.Email)

	var exists bool
	if err := repository.db.QueryRow(context, query, username, email).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "User")
	}
	return exists, nil
}

// List implements [UserRepository].
func (repository *PostgresUserRepository) List(context context.Context, filter Filter, limit, offset int) ([]*User, int, error) {
	var (
		where []string
		args  []any
	)
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, search)
		where = append(where, fmt.Sprintf(`strpos(lower(%s), lower($%d)) > 0`, schema.User.Username, len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.User.Table, whereClause)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		userColumns, schema.User.Table, whereClause, schema.User.Username, len(args)-1, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "User")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	return users, total, nil
}

// Create implements [UserRepository].
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		schema.User.Table,
		schema.User.Username, schema.User.Email, schema.User.FirstName,
		schema.User.LastName, schema.User.Bio, schema.User.Role,
		schema.User.ID, schema.User.DateJoined,
	)

	err := repository.db.QueryRow(context, query,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role,
	).Scan(&user.ID, &user.DateJoined)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	return nil
}

// Update implements [UserRepository].
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.User.Table,
		schema.User.Username, schema.User.Email, schema.User.FirstName,
		schema.User.LastName, schema.User.Bio, schema.User.Role,
		schema.User.ID,
	)

	tag, err := repository.db.Exec(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}
	return nil
}

// Delete implements [UserRepository].
func (repository *PostgresUserRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.User.Table, schema.User.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}
	return nil
}

// TouchLastLogin implements [UserRepository].
func (repository *PostgresUserRepository) TouchLastLogin(context context.Context, id int64, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.User.Table, schema.User.LastLogin, schema.User.ID)

	if _, err := repository.db.Exec(context, query, id, at); err != nil {
		return dberr.Wrap(err, "User")
	}
	return nil
}
