// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package category

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

// NewPostgresRepository creates a new Postgres-backed category repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, search string) ([]*Category, int, error) {
	t := schema.CatalogCategory

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

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		categories = append(categories, category)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	t := schema.CatalogCategory
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		t.ID, t.Name, t.Slug, t.CreatedAt, t.Table, t.Slug)

	category := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&category.ID, &category.Name, &category.Slug, &category.CreatedAt,
	)
	if err != nil {
		wrapped := dberr.Wrap(err, "")
		if apperr.IsNotFound(wrapped) {
			return nil, apperr.NotFound("Category")
		}
		return nil, wrapped
	}

	return category, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	t := schema.CatalogCategory
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s, %s`,
		t.Table, t.Name, t.Slug, t.ID, t.CreatedAt)

	err := repository.db.QueryRow(context, query, category.Name, category.Slug).
		Scan(&category.ID, &category.CreatedAt)

	return dberr.Wrap(err, "Category with this slug already exists")
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	t := schema.CatalogCategory
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}
