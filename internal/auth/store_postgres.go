// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/weavepost/internal/platform/database/schema"
	"github.com/taibuivan/weavepost/internal/platform/dberr"
)

// Statements are built once from [schema.Account].
var (
	findAccountQuery = fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		strings.Join(schema.Account.Columns(), ", "),
		schema.Account.Table, schema.Account.Username,
	)

	// ON CONFLICT DO NOTHING makes the check and the insert one statement, so
	// two concurrent signups for the same name cannot both succeed.
	insertAccountQuery = fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO NOTHING`,
		schema.Account.Table,
		strings.Join(schema.Account.Columns(), ", "),
		schema.Account.Username,
	)
)

// PostgresAccountRepository implements [AccountRepository] on the accounts table.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAccountRepository creates a new PostgreSQL implementation of [AccountRepository].
func NewPostgresAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// FindByUsername retrieves an account by its primary key.
//
// # Returns
//
// Returns [*Account] if found, or [dberr.ErrNotFound] if no account exists.
func (repository *PostgresAccountRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	var account Account
	err := repository.pool.QueryRow(ctx, findAccountQuery, username).Scan(
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_account_repo_find")
	}

	return &account, nil
}

// Create inserts the account unless the username already exists.
func (repository *PostgresAccountRepository) Create(ctx context.Context, account *Account) error {
	tag, err := repository.pool.Exec(ctx, insertAccountQuery,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_account_repo_create")
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres_account_repo_create: %w", dberr.ErrDuplicate)
	}

	return nil
}
