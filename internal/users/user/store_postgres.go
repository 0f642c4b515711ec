// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package user

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/database/schema"
	"github.com/serg350/yamdb-final/internal/platform/dberr"
	"github.com/serg350/yamdb-final/pkg/pagination"
)

// Unique constraint names from the users.account DDL. Used to decide which
// field a duplicate-key violation refers to.
const (
	ConstraintUsername = "account_username_key"
	ConstraintEmail    = "account_email_key"
)

// PostgresRepository implements [Repository] backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// accountColumns is the canonical SELECT column list for users.account.
func accountColumns() string {
	t := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.Username, t.Email, t.Role, t.FirstName, t.LastName, t.Bio,
		t.ConfirmationCode, t.IsStaff, t.IsSuperuser, t.CreatedAt, t.UpdatedAt)
}

// scanAccount hydrates a [User] from a row using the canonical column order.
func scanAccount(row interface{ Scan(...any) error }) (*User, error) {
	account := &User{}
	err := row.Scan(
		&account.ID, &account.Username, &account.Email, &account.Role,
		&account.FirstName, &account.LastName, &account.Bio,
		&account.ConfirmationCode, &account.IsStaff, &account.IsSuperuser,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UserAccount.Table, schema.UserAccount.ID)

	account, err := scanAccount(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, userNotFoundOr(err)
	}
	return account, nil
}

func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UserAccount.Table, schema.UserAccount.Username)

	account, err := scanAccount(repository.db.QueryRow(context, query, username))
	if err != nil {
		return nil, userNotFoundOr(err)
	}
	return account, nil
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, search string) ([]*User, int, error) {
	t := schema.UserAccount

	where := ""
	args := []any{}
	if search != "" {
		where = fmt.Sprintf("WHERE %s ILIKE $1", t.Username)
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, t.Table, where)
	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		accountColumns(), t.Table, where, t.Username, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	accounts := make([]*User, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		accounts = append(accounts, account)
	}

	return accounts, total, nil
}

func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.Username, t.Email, t.Role, t.FirstName, t.LastName,
		t.Bio, t.ConfirmationCode, t.IsStaff, t.IsSuperuser,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.Role, user.FirstName,
		user.LastName, user.Bio, user.ConfirmationCode, user.IsStaff,
		user.IsSuperuser,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return classifyAccountConflict(err)
}

func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1
		RETURNING %s
	`,
		t.Table, t.Email, t.Role, t.FirstName, t.LastName, t.Bio, t.UpdatedAt,
		t.ID, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Email, user.Role, user.FirstName, user.LastName,
		user.Bio, time.Now(),
	).Scan(&user.UpdatedAt)

	if err != nil {
		return classifyAccountConflict(userNotFoundOr(err))
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, username string) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.Username)

	tag, err := repository.db.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// userNotFoundOr maps a no-rows result to a user-specific 404, delegating
// everything else to the generic classifier.
func userNotFoundOr(err error) error {
	wrapped := dberr.Wrap(err, "")
	if apperr.IsNotFound(wrapped) {
		return apperr.NotFound("User")
	}
	return wrapped
}

// classifyAccountConflict resolves which identity field a duplicate-key
// violation refers to. Email is checked first to keep the reported collision
// stable when both constraints would fire.
func classifyAccountConflict(err error) error {
	if err == nil {
		return nil
	}
	if dberr.IsUniqueViolation(err, ConstraintEmail) {
		return apperr.Conflict("Email is already registered")
	}
	if dberr.IsUniqueViolation(err, ConstraintUsername) {
		return apperr.Conflict("Username is already taken")
	}
	if apperr.IsAppError(err) {
		return err
	}
	return dberr.Wrap(err, "Account already exists")
}
