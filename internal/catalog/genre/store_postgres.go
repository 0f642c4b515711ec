// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package genre

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

// NewPostgresRepository creates a new Postgres-backed genre repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, search string) ([]*Genre, int, error) {
	t := schema.CatalogGenre

	where := ""
	args := []any{}
	if search != "" {
		where = fmt.Sprintf("WHERE %s ILIKE $1 OR %s ILIKE $1", t.Name, t.Slug)
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, t.Table, where)
	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s %s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		t.ID, t.Name, t.Slug, t.CreatedAt, t.Table, where, t.Name, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		genre := &Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		genres = append(genres, genre)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Genre, error) {
	t := schema.CatalogGenre
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		t.ID, t.Name, t.Slug, t.CreatedAt, t.Table, t.Slug)

	genre := &Genre{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt,
	)
	if err != nil {
		wrapped := dberr.Wrap(err, "")
		if apperr.IsNotFound(wrapped) {
			return nil, apperr.NotFound("Genre")
		}
		return nil, wrapped
	}

	return genre, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	t := schema.CatalogGenre
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s, %s`,
		t.Table, t.Name, t.Slug, t.ID, t.CreatedAt)

	err := repository.db.QueryRow(context, query, genre.Name, genre.Slug).
		Scan(&genre.ID, &genre.CreatedAt)

	return dberr.Wrap(err, "Genre with this slug already exists")
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	t := schema.CatalogGenre
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}

	return nil
}
