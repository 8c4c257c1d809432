// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/taibuivan/weavepost/internal/platform/dberr"
)

// MemoryAccountRepository keeps accounts in a map guarded by a mutex.
// Data does not survive a restart.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewMemoryAccountRepository returns an empty in-memory repository.
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[string]Account)}
}

// FindByUsername implements [AccountRepository].
func (repository *MemoryAccountRepository) FindByUsername(_ context.Context, username string) (*Account, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	account, ok := repository.accounts[username]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &account, nil
}

// Create implements [AccountRepository].
func (repository *MemoryAccountRepository) Create(_ context.Context, account *Account) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.accounts[account.Username]; taken {
		return fmt.Errorf("memory_account_repo_create: %w", dberr.ErrDuplicate)
	}
	repository.accounts[account.Username] = *account
	return nil
}

// Count returns the number of stored accounts.
func (repository *MemoryAccountRepository) Count() int {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return len(repository.accounts)
}
