// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/taibuivan/weavepost/internal/platform/database/schema"
	"github.com/taibuivan/weavepost/internal/platform/dberr"
	weaviatedb "github.com/taibuivan/weavepost/internal/platform/weaviate"
	"github.com/taibuivan/weavepost/pkg/uuid"
)

// accountIDKind namespaces account object ids.
const accountIDKind = "account"

// WeaviateAccountRepository stores each account as one object of the User class.
//
// The object id is derived from the username, so Weaviate itself rejects a
// second object for the same name.
type WeaviateAccountRepository struct {
	client *weaviate.Client
}

// NewWeaviateAccountRepository creates a Weaviate implementation of [AccountRepository].
func NewWeaviateAccountRepository(client *weaviate.Client) *WeaviateAccountRepository {
	return &WeaviateAccountRepository{client: client}
}

// AccountClass is the schema of the User class.
func AccountClass() *models.Class {
	return &models.Class{
		Class:       schema.Account.Class,
		Description: "Registered accounts",
		Vectorizer:  weaviatedb.VectorizerNone,
		Properties: []*models.Property{
			weaviatedb.TextProperty(schema.Account.Username),
			weaviatedb.TextProperty(schema.Account.Email),
			weaviatedb.TextProperty(schema.Account.Password),
			weaviatedb.DateProperty(schema.Account.CreatedAt),
		},
	}
}

// AccountObjectID returns the deterministic object id for a username.
func AccountObjectID(username string) string {
	return uuid.FromName(accountIDKind, username)
}

// EnsureSchema creates the User class if it is missing.
func (repository *WeaviateAccountRepository) EnsureSchema(ctx context.Context, logger *slog.Logger) error {
	return weaviatedb.EnsureClass(ctx, repository.client, AccountClass(), logger)
}

// accountObject mirrors the User class properties. JSON tags follow [schema.Account].
type accountObject struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// FindByUsername implements [AccountRepository] with an exact-match filter.
func (repository *WeaviateAccountRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	where := filters.Where().
		WithPath([]string{schema.Account.Username}).
		WithOperator(filters.Equal).
		WithValueText(username)

	response, err := repository.client.GraphQL().Get().
		WithClassName(schema.Account.Class).
		WithFields(weaviatedb.Fields(schema.Account.Columns()...)...).
		WithWhere(where).
		WithLimit(1).
		Do(ctx)
	if err != nil {
		return nil, dberr.Unavailable(err, "weaviate_account_repo_find")
	}

	objects, err := weaviatedb.DecodeGet[accountObject](response, schema.Account.Class)
	if err != nil {
		return nil, dberr.Unavailable(err, "weaviate_account_repo_find")
	}

	if len(objects) == 0 {
		return nil, dberr.ErrNotFound
	}

	object := objects[0]
	return &Account{
		Username:     object.Username,
		Email:        object.Email,
		PasswordHash: object.PasswordHash,
		CreatedAt:    object.CreatedAt,
	}, nil
}

// Create implements [AccountRepository].
func (repository *WeaviateAccountRepository) Create(ctx context.Context, account *Account) error {
	_, err := repository.client.Data().Creator().
		WithClassName(schema.Account.Class).
		WithID(AccountObjectID(account.Username)).
		WithProperties(map[string]interface{}{
			schema.Account.Username:  account.Username,
			schema.Account.Email:     account.Email,
			schema.Account.Password:  account.PasswordHash,
			schema.Account.CreatedAt: account.CreatedAt.UTC().Format(time.RFC3339Nano),
		}).
		Do(ctx)
	if err != nil {
		if weaviatedb.IsAlreadyExists(err) {
			return fmt.Errorf("weaviate_account_repo_create: %w", dberr.ErrDuplicate)
		}
		return dberr.Unavailable(err, "weaviate_account_repo_create")
	}

	return nil
}
