// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/serg350/yamdb-final/internal/catalog/category"
	"github.com/serg350/yamdb-final/internal/catalog/genre"
	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/database/schema"
	"github.com/serg350/yamdb-final/internal/platform/dberr"
	"github.com/serg350/yamdb-final/pkg/pagination"
	"github.com/serg350/yamdb-final/pkg/slice"
)

// PostgresRepository implements [Repository] backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres-backed title repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// buildFilter translates a [Filter] into WHERE clauses and bind arguments.
func buildFilter(filter Filter) (string, []any) {
	t := schema.CatalogTitle
	c := schema.CatalogCategory
	g := schema.CatalogGenre
	tg := schema.CatalogTitleGenre

	clauses := []string{}
	args := []any{}

	bind := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.CategorySlug != "" {
		bind("c."+c.Slug+" = $%d", filter.CategorySlug)
	}
	if len(filter.GenreSlugs) > 0 {
		subquery := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s tg JOIN %s g ON tg.%s = g.%s WHERE tg.%s = t.%s AND g.%s = ANY($%%d))",
			tg.Table, g.Table, tg.GenreID, g.ID, tg.TitleID, t.ID, g.Slug,
		)
		bind(subquery, filter.GenreSlugs)
	}
	if filter.Name != "" {
		bind("t."+t.Name+" ILIKE $%d", "%"+filter.Name+"%")
	}
	if filter.Year != 0 {
		bind("t."+t.Year+" = $%d", filter.Year)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, filter Filter) ([]*Title, int, error) {
	t := schema.CatalogTitle
	c := schema.CatalogCategory
	r := schema.ReviewReview

	where, args := buildFilter(filter)

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s t
		LEFT JOIN %s c ON t.%s = c.%s
		%s
	`, t.Table, c.Table, t.CategoryID, c.ID, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s,
		       ROUND(AVG(r.%s))::int,
		       c.%s, c.%s, c.%s
		FROM %s t
		LEFT JOIN %s c ON t.%s = c.%s
		LEFT JOIN %s r ON r.%s = t.%s
		%s
		GROUP BY t.%s, c.%s
		ORDER BY t.%s DESC, t.%s DESC
		LIMIT $%d OFFSET $%d
	`,
		t.ID, t.Name, t.Year, t.Description, t.CreatedAt,
		r.Score,
		c.ID, c.Name, c.Slug,
		t.Table,
		c.Table, t.CategoryID, c.ID,
		r.Table, r.TitleID, t.ID,
		where,
		t.ID, c.ID,
		t.Year, t.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	index := make(map[int]*Title)

	for rows.Next() {
		title := &Title{Genres: make([]genre.Genre, 0)}
		var categoryID *int
		var categoryName, categorySlug *string

		err := rows.Scan(
			&title.ID, &title.Name, &title.Year, &title.Description, &title.CreatedAt,
			&title.Rating,
			&categoryID, &categoryName, &categorySlug,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}

		if categoryID != nil {
			title.Category = &category.Category{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
		}

		titles = append(titles, title)
		index[title.ID] = title
	}
	rows.Close()

	if err := repository.attachGenres(context, index); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

// attachGenres loads the genre links for a set of titles in one query.
func (repository *PostgresRepository) attachGenres(context context.Context, index map[int]*Title) error {
	if len(index) == 0 {
		return nil
	}

	g := schema.CatalogGenre
	tg := schema.CatalogTitleGenre

	ids := make([]int, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}

	query := fmt.Sprintf(`
		SELECT tg.%s, g.%s, g.%s, g.%s
		FROM %s tg
		JOIN %s g ON tg.%s = g.%s
		WHERE tg.%s = ANY($1)
		ORDER BY g.%s ASC
	`,
		tg.TitleID, g.ID, g.Name, g.Slug,
		tg.Table, g.Table, tg.GenreID, g.ID, tg.TitleID, g.Name,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int
		item := genre.Genre{}
		if err := rows.Scan(&titleID, &item.ID, &item.Name, &item.Slug); err != nil {
			return dberr.Wrap(err, "")
		}
		if title, ok := index[titleID]; ok {
			title.Genres = append(title.Genres, item)
		}
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Title, error) {
	t := schema.CatalogTitle
	c := schema.CatalogCategory

	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s,
		       c.%s, c.%s, c.%s
		FROM %s t
		LEFT JOIN %s c ON t.%s = c.%s
		WHERE t.%s = $1
	`,
		t.ID, t.Name, t.Year, t.Description, t.CreatedAt,
		c.ID, c.Name, c.Slug,
		t.Table, c.Table, t.CategoryID, c.ID, t.ID,
	)

	title := &Title{Genres: make([]genre.Genre, 0)}
	var categoryID *int
	var categoryName, categorySlug *string

	err := repository.db.QueryRow(context, query, id).Scan(
		&title.ID, &title.Name, &title.Year, &title.Description, &title.CreatedAt,
		&categoryID, &categoryName, &categorySlug,
	)
	if err != nil {
		wrapped := dberr.Wrap(err, "")
		if apperr.IsNotFound(wrapped) {
			return nil, apperr.NotFound("Title")
		}
		return nil, wrapped
	}

	if categoryID != nil {
		title.Category = &category.Category{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}

	if err := repository.attachGenres(context, map[int]*Title{title.ID: title}); err != nil {
		return nil, err
	}

	return title, nil
}

func (repository *PostgresRepository) Rating(context context.Context, id int) (*int, error) {
	r := schema.ReviewReview
	query := fmt.Sprintf(`SELECT ROUND(AVG(%s))::int FROM %s WHERE %s = $1`,
		r.Score, r.Table, r.TitleID)

	var rating *int
	if err := repository.db.QueryRow(context, query, id).Scan(&rating); err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return rating, nil
}

// resolveCategoryID maps a category slug to its ID inside a transaction.
func resolveCategoryID(context context.Context, tx pgx.Tx, slug string) (int, error) {
	c := schema.CatalogCategory
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, c.ID, c.Table, c.Slug)

	var id int
	if err := tx.QueryRow(context, query, slug).Scan(&id); err != nil {
		if apperr.IsNotFound(dberr.Wrap(err, "")) {
			return 0, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldCategory,
				Message: fmt.Sprintf("Unknown category %q", slug),
			})
		}
		return 0, dberr.Wrap(err, "")
	}

	return id, nil
}

// replaceGenres rebinds the genre links of a title inside a transaction.
// Unknown slugs fail the whole transaction.
func replaceGenres(context context.Context, tx pgx.Tx, titleID int, slugs []string) error {
	g := schema.CatalogGenre
	tg := schema.CatalogTitleGenre

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tg.Table, tg.TitleID)
	if _, err := tx.Exec(context, deleteQuery, titleID); err != nil {
		return dberr.Wrap(err, "")
	}

	if len(slugs) == 0 {
		return nil
	}

	resolveQuery := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ANY($1)`,
		g.ID, g.Slug, g.Table, g.Slug)

	rows, err := tx.Query(context, resolveQuery, slugs)
	if err != nil {
		return dberr.Wrap(err, "")
	}

	found := make(map[string]int, len(slugs))
	for rows.Next() {
		var id int
		var slug string
		if err := rows.Scan(&id, &slug); err != nil {
			rows.Close()
			return dberr.Wrap(err, "")
		}
		found[slug] = id
	}
	rows.Close()

	missing := slice.Filter(slugs, func(slug string) bool {
		_, ok := found[slug]
		return !ok
	})
	if len(missing) > 0 {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldGenre,
			Message: fmt.Sprintf("Unknown genre %q", missing[0]),
		})
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		tg.Table, tg.TitleID, tg.GenreID)

	genreIDs := slice.Map(slugs, func(slug string) int { return found[slug] })
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(context, insertQuery, titleID, genreID); err != nil {
			return dberr.Wrap(err, "")
		}
	}

	return nil
}

func (repository *PostgresRepository) Create(context context.Context, title *Title, categorySlug string, genreSlugs []string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	defer func() { _ = tx.Rollback(context) }()

	categoryID, err := resolveCategoryID(context, tx, categorySlug)
	if err != nil {
		return err
	}

	t := schema.CatalogTitle
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		t.Table, t.Name, t.Year, t.Description, t.CategoryID,
		t.ID, t.CreatedAt,
	)

	err = tx.QueryRow(context, insertQuery,
		title.Name, title.Year, title.Description, categoryID,
	).Scan(&title.ID, &title.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "")
	}

	if err := replaceGenres(context, tx, title.ID, genreSlugs); err != nil {
		return err
	}

	return tx.Commit(context)
}

func (repository *PostgresRepository) Update(context context.Context, title *Title, categorySlug *string, genreSlugs *[]string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	defer func() { _ = tx.Rollback(context) }()

	t := schema.CatalogTitle

	if categorySlug != nil {
		categoryID, err := resolveCategoryID(context, tx, *categorySlug)
		if err != nil {
			return err
		}
		setCategory := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, t.Table, t.CategoryID, t.ID)
		if _, err := tx.Exec(context, setCategory, title.ID, categoryID); err != nil {
			return dberr.Wrap(err, "")
		}
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1`,
		t.Table, t.Name, t.Year, t.Description, t.ID)

	tag, err := tx.Exec(context, updateQuery, title.ID, title.Name, title.Year, title.Description)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	if genreSlugs != nil {
		if err := replaceGenres(context, tx, title.ID, *genreSlugs); err != nil {
			return err
		}
	}

	return tx.Commit(context)
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	t := schema.CatalogTitle
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	return nil
}
