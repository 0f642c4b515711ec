// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/database/schema"
	"github.com/serg350/yamdb-final/internal/platform/dberr"
	"github.com/serg350/yamdb-final/internal/users/user"
)

// PostgresAccountRepository implements [AccountRepository] backed by PostgreSQL.
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres-backed account repository.
func NewAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// signupColumns is the SELECT column list the signup flow needs.
func signupColumns() string {
	t := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		t.ID, t.Username, t.Email, t.Role, t.ConfirmationCode, t.IsStaff, t.IsSuperuser)
}

func (repository *PostgresAccountRepository) findBy(context context.Context, column, value string) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		signupColumns(), schema.UserAccount.Table, column)

	account := &user.User{}
	err := repository.db.QueryRow(context, query, value).Scan(
		&account.ID, &account.Username, &account.Email, &account.Role,
		&account.ConfirmationCode, &account.IsStaff, &account.IsSuperuser,
	)
	if err != nil {
		wrapped := dberr.Wrap(err, "")
		if apperr.IsNotFound(wrapped) {
			return nil, apperr.NotFound("User")
		}
		return nil, wrapped
	}

	return account, nil
}

func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*user.User, error) {
	return repository.findBy(context, schema.UserAccount.Username, username)
}

func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*user.User, error) {
	return repository.findBy(context, schema.UserAccount.Email, email)
}

func (repository *PostgresAccountRepository) Create(context context.Context, account *user.User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.Username, t.Email, t.Role, t.ConfirmationCode,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		account.ID, account.Username, account.Email, account.Role, account.ConfirmationCode,
	).Scan(&account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		// Email is reported first when both constraints would fire, matching
		// the order the lookups in the service check.
		if dberr.IsUniqueViolation(err, user.ConstraintEmail) {
			return apperr.Conflict("Email is already registered")
		}
		if dberr.IsUniqueViolation(err, user.ConstraintUsername) {
			return apperr.Conflict("Username is already taken")
		}
		return dberr.Wrap(err, "Account already exists")
	}

	return nil
}

func (repository *PostgresAccountRepository) SetConfirmationCode(context context.Context, userID, code string) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1`,
		t.Table, t.ConfirmationCode, t.UpdatedAt, t.ID)

	tag, err := repository.db.Exec(context, query, userID, code)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

func (repository *PostgresAccountRepository) ConsumeConfirmationCode(context context.Context, username, code string) (bool, error) {
	t := schema.UserAccount

	// Single-statement compare-and-clear: the WHERE clause guarantees that
	// two concurrent submissions of the same code cannot both succeed.
	query := fmt.Sprintf(`
		UPDATE %s SET %s = '', %s = now()
		WHERE %s = $1 AND %s = $2 AND %s <> ''
	`,
		t.Table, t.ConfirmationCode, t.UpdatedAt,
		t.Username, t.ConfirmationCode, t.ConfirmationCode,
	)

	tag, err := repository.db.Exec(context, query, username, code)
	if err != nil {
		return false, dberr.Wrap(err, "")
	}

	return tag.RowsAffected() > 0, nil
}
