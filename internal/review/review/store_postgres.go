// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/database/schema"
	"github.com/serg350/yamdb-final/internal/platform/dberr"
	"github.com/serg350/yamdb-final/pkg/pagination"
)

// ConstraintAuthorTitle is the unique constraint backing the
// one-review-per-author-per-title rule.
const ConstraintAuthorTitle = "review_author_title_key"

// PostgresRepository implements [Repository] backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres-backed review repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) TitleExists(context context.Context, titleID int) (bool, error) {
	t := schema.CatalogTitle
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, t.Table, t.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "")
	}
	return exists, nil
}

// reviewColumns is the hydrated select list: review columns plus the
// author's username from users.account.
func reviewColumns() string {
	r := schema.ReviewReview
	a := schema.UserAccount
	return fmt.Sprintf("r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s, r.%s",
		r.ID, r.TitleID, r.AuthorID, a.Username, r.Text, r.Score, r.CreatedAt, r.UpdatedAt)
}

func scanReview(row interface{ Scan(...any) error }) (*Review, error) {
	review := &Review{}
	err := row.Scan(
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID int, params pagination.Params) ([]*Review, int, error) {
	r := schema.ReviewReview
	a := schema.UserAccount

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, r.Table, r.TitleID)
	var total int
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s r
		JOIN %s a ON a.%s = r.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC, r.%s DESC
		LIMIT $2 OFFSET $3`,
		reviewColumns(), r.Table, a.Table, a.ID, r.AuthorID, r.TitleID, r.CreatedAt, r.ID)

	rows, err := repository.db.Query(context, query, titleID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, titleID, reviewID int) (*Review, error) {
	r := schema.ReviewReview
	a := schema.UserAccount

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s r
		JOIN %s a ON a.%s = r.%s
		WHERE r.%s = $1 AND r.%s = $2`,
		reviewColumns(), r.Table, a.Table, a.ID, r.AuthorID, r.TitleID, r.ID)

	review, err := scanReview(repository.db.QueryRow(context, query, titleID, reviewID))
	if err != nil {
		wrapped := dberr.Wrap(err, "")
		if apperr.IsNotFound(wrapped) {
			return nil, apperr.NotFound("Review")
		}
		return nil, wrapped
	}

	return review, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	r := schema.ReviewReview
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s, %s`,
		r.Table, r.TitleID, r.AuthorID, r.Text, r.Score, r.ID, r.CreatedAt, r.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err, ConstraintAuthorTitle) {
			return apperr.Conflict("You have already reviewed this title")
		}
		return dberr.Wrap(err, "")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	r := schema.ReviewReview
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = now() WHERE %s = $3 RETURNING %s`,
		r.Table, r.Text, r.Score, r.UpdatedAt, r.ID, r.UpdatedAt)

	err := repository.db.QueryRow(context, query, review.Text, review.Score, review.ID).
		Scan(&review.UpdatedAt)
	if err != nil {
		wrapped := dberr.Wrap(err, "")
		if apperr.IsNotFound(wrapped) {
			return apperr.NotFound("Review")
		}
		return wrapped
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, titleID, reviewID int) error {
	r := schema.ReviewReview
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, r.Table, r.TitleID, r.ID)

	tag, err := repository.db.Exec(context, query, titleID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}
