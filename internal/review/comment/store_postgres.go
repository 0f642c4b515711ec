// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/database/schema"
	"github.com/serg350/yamdb-final/internal/platform/dberr"
	"github.com/serg350/yamdb-final/pkg/pagination"
)

// PostgresRepository implements [Repository] backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres-backed comment repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ReviewExists(context context.Context, titleID, reviewID int) (bool, error) {
	r := schema.ReviewReview
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		r.Table, r.ID, r.TitleID)

	var exists bool
	if err := repository.db.QueryRow(context, query, reviewID, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "")
	}
	return exists, nil
}

func commentColumns() string {
	c := schema.ReviewComment
	a := schema.UserAccount
	return fmt.Sprintf("c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, c.%s",
		c.ID, c.ReviewID, c.AuthorID, a.Username, c.Text, c.CreatedAt, c.UpdatedAt)
}

func scanComment(row interface{ Scan(...any) error }) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (repository *PostgresRepository) ListByReview(context context.Context, reviewID int, params pagination.Params) ([]*Comment, int, error) {
	c := schema.ReviewComment
	a := schema.UserAccount

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, c.Table, c.ReviewID)
	var total int
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s c
		JOIN %s a ON a.%s = c.%s
		WHERE c.%s = $1
		ORDER BY c.%s DESC, c.%s DESC
		LIMIT $2 OFFSET $3`,
		commentColumns(), c.Table, a.Table, a.ID, c.AuthorID, c.ReviewID, c.CreatedAt, c.ID)

	rows, err := repository.db.Query(context, query, reviewID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, reviewID, commentID int) (*Comment, error) {
	c := schema.ReviewComment
	a := schema.UserAccount

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s c
		JOIN %s a ON a.%s = c.%s
		WHERE c.%s = $1 AND c.%s = $2`,
		commentColumns(), c.Table, a.Table, a.ID, c.AuthorID, c.ReviewID, c.ID)

	comment, err := scanComment(repository.db.QueryRow(context, query, reviewID, commentID))
	if err != nil {
		wrapped := dberr.Wrap(err, "")
		if apperr.IsNotFound(wrapped) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, wrapped
	}

	return comment, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	c := schema.ReviewComment
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s, %s`,
		c.Table, c.ReviewID, c.AuthorID, c.Text, c.ID, c.CreatedAt, c.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	return dberr.Wrap(err, "")
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	c := schema.ReviewComment
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = now() WHERE %s = $2 RETURNING %s`,
		c.Table, c.Text, c.UpdatedAt, c.ID, c.UpdatedAt)

	err := repository.db.QueryRow(context, query, comment.Text, comment.ID).
		Scan(&comment.UpdatedAt)
	if err != nil {
		wrapped := dberr.Wrap(err, "")
		if apperr.IsNotFound(wrapped) {
			return apperr.NotFound("Comment")
		}
		return wrapped
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, reviewID, commentID int) error {
	c := schema.ReviewComment
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, c.Table, c.ReviewID, c.ID)

	tag, err := repository.db.Exec(context, query, reviewID, commentID)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}
