// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// AccountRepository defines the data access contract for user accounts.
//
// # Implementations
//
//   - [WeaviateAccountRepository]: default, one Weaviate object per account.
//   - [PostgresAccountRepository]: the accounts table.
//   - [MemoryAccountRepository]: process-local, for tests and local runs.
type AccountRepository interface {
	// FindByUsername returns the account with the given canonical username.
	//
	// Returns [dberr.ErrNotFound] if the username is available.
	FindByUsername(ctx context.Context, username string) (*Account, error)

	// Create persists a brand-new account.
	//
	// The insert is atomic and conditional: if the username is already taken,
	// including by a concurrent request, it returns [dberr.ErrDuplicate] and
	// leaves the existing account untouched.
	Create(ctx context.Context, account *Account) error
}
