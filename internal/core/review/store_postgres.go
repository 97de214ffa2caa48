// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new PostgreSQL review repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// TitleExists implements [Repository].
func (repository *PostgresRepository) TitleExists(context context.Context, titleID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.Title.Table, schema.Title.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceTitle)
	}
	return exists, nil
}

// # Reviews

var reviewSelect = fmt.Sprintf(`
	SELECT r.%s, r.%s, u.%s, r.%s, r.%s, r.%s, r.%s
	FROM %s r JOIN %s u ON u.%s = r.%s`,
	schema.Review.ID, schema.Review.Text, schema.User.Username, schema.Review.Score,
	schema.Review.PubDate, schema.Review.AuthorID, schema.Review.TitleID,
	schema.Review.Table, schema.User.Table, schema.User.ID, schema.Review.AuthorID,
)

func scanReview(row pgx.Row) (*Review, error) {
	review := &Review{}
	err := row.Scan(
		&review.ID, &review.Text, &review.Author, &review.Score,
		&review.PubDate, &review.AuthorID, &review.TitleID,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews implements [Repository].
func (repository *PostgresRepository) ListReviews(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.Review.Table, schema.Review.TitleID)
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}

	query := fmt.Sprintf(`%s WHERE r.%s = $1 ORDER BY r.%s LIMIT $2 OFFSET $3`,
		reviewSelect, schema.Review.TitleID, schema.Review.ID)

	rows, err := repository.db.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}
	defer rows.Close()

	reviews := make([]*Review, 0, limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceReview)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}
	return reviews, total, nil
}

// FindReview implements [Repository].
func (repository *PostgresRepository) FindReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	query := fmt.Sprintf(`%s WHERE r.%s = $1 AND r.%s = $2`, reviewSelect, schema.Review.TitleID, schema.Review.ID)

	review, err := scanReview(repository.db.QueryRow(context, query, titleID, reviewID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceReview)
	}
	return review, nil
}

// ReviewExists implements [Repository].
func (repository *PostgresRepository) ReviewExists(context context.Context, titleID, authorID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.Review.Table, schema.Review.TitleID, schema.Review.AuthorID)

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceReview)
	}
	return exists, nil
}

// CreateReview implements [Repository]. The unique_review constraint has the
// final say when two requests race past the service pre-check.
func (repository *PostgresRepository) CreateReview(context context.Context, review *Review) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s`,
		schema.Review.Table,
		schema.Review.TitleID, schema.Review.AuthorID, schema.Review.Text, schema.Review.Score,
		schema.Review.ID, schema.Review.PubDate,
	)

	err := repository.db.QueryRow(context, query,
		review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.ID, &review.PubDate)
	if err != nil {
		return dberr.Wrap(err, resourceReview)
	}
	return nil
}

// UpdateReview implements [Repository]. Only text and score are writable.
func (repository *PostgresRepository) UpdateReview(context context.Context, review *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.Review.Table, schema.Review.Text, schema.Review.Score, schema.Review.ID)

	tag, err := repository.db.Exec(context, query, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, resourceReview)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceReview)
	}
	return nil
}

// DeleteReview implements [Repository].
func (repository *PostgresRepository) DeleteReview(context context.Context, reviewID int64) error {
	return repository.delete(context, schema.Review.Table, schema.Review.ID, reviewID, resourceReview)
}

// # Comments

var commentSelect = fmt.Sprintf(`
	SELECT c.%s, c.%s, u.%s, c.%s, c.%s, c.%s
	FROM %s c JOIN %s u ON u.%s = c.%s`,
	schema.Comment.ID, schema.Comment.Text, schema.User.Username,
	schema.Comment.PubDate, schema.Comment.AuthorID, schema.Comment.ReviewID,
	schema.Comment.Table, schema.User.Table, schema.User.ID, schema.Comment.AuthorID,
)

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID, &comment.Text, &comment.Author,
		&comment.PubDate, &comment.AuthorID, &comment.ReviewID,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments implements [Repository].
func (repository *PostgresRepository) ListComments(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.Comment.Table, schema.Comment.ReviewID)
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}

	query := fmt.Sprintf(`%s WHERE c.%s = $1 ORDER BY c.%s LIMIT $2 OFFSET $3`,
		commentSelect, schema.Comment.ReviewID, schema.Comment.ID)

	rows, err := repository.db.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceComment)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}
	return comments, total, nil
}

// FindComment implements [Repository].
func (repository *PostgresRepository) FindComment(context context.Context, reviewID, commentID int64) (*Comment, error) {
	query := fmt.Sprintf(`%s WHERE c.%s = $1 AND c.%s = $2`, commentSelect, schema.Comment.ReviewID, schema.Comment.ID)

	comment, err := scanComment(repository.db.QueryRow(context, query, reviewID, commentID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment)
	}
	return comment, nil
}

// CreateComment implements [Repository].
func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s`,
		schema.Comment.Table,
		schema.Comment.ReviewID, schema.Comment.AuthorID, schema.Comment.Text,
		schema.Comment.ID, schema.Comment.PubDate,
	)

	err := repository.db.QueryRow(context, query,
		comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.ID, &comment.PubDate)
	if err != nil {
		return dberr.Wrap(err, resourceComment)
	}
	return nil
}

// UpdateComment implements [Repository].
func (repository *PostgresRepository) UpdateComment(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Comment.Table, schema.Comment.Text, schema.Comment.ID)

	tag, err := repository.db.Exec(context, query, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, resourceComment)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceComment)
	}
	return nil
}

// DeleteComment implements [Repository].
func (repository *PostgresRepository) DeleteComment(context context.Context, commentID int64) error {
	return repository.delete(context, schema.Comment.Table, schema.Comment.ID, commentID, resourceComment)
}

func (repository *PostgresRepository) delete(context context.Context, table, idColumn string, id int64, resource string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, idColumn)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resource)
	}
	return nil
}
