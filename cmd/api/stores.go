// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/weavepost/internal/auth"
	"github.com/taibuivan/weavepost/internal/platform/config"
	"github.com/taibuivan/weavepost/internal/platform/migration"
	pgstore "github.com/taibuivan/weavepost/internal/platform/postgres"
	weaviatedb "github.com/taibuivan/weavepost/internal/platform/weaviate"
	"github.com/taibuivan/weavepost/internal/post"
)

// stores bundles the repositories of one STORE_DRIVER backend.
type stores struct {
	name     string
	accounts auth.AccountRepository
	posts    post.Repository
	ping     func(ctx context.Context) error
	close    func()
}

// openStores connects the configured backend and prepares its schema.
func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverWeaviate:
		return openWeaviate(ctx, cfg, log)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, log)
	case config.DriverMemory:
		log.Warn("memory_store_selected", slog.String("detail", "data is lost on restart"))
		return &stores{
			name:     config.DriverMemory,
			accounts: auth.NewMemoryAccountRepository(),
			posts:    post.NewMemoryRepository(),
			ping:     func(context.Context) error { return nil },
			close:    func() {},
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openWeaviate(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	client, err := weaviatedb.NewClient(ctx, cfg.WeaviateURL, cfg.WeaviateAPIKey, log)
	if err != nil {
		return nil, err
	}

	accounts := auth.NewWeaviateAccountRepository(client)
	if err := accounts.EnsureSchema(ctx, log); err != nil {
		return nil, err
	}

	posts := post.NewWeaviateRepository(client)
	if err := posts.EnsureSchema(ctx, log); err != nil {
		return nil, err
	}

	return &stores{
		name:     config.DriverWeaviate,
		accounts: accounts,
		posts:    posts,
		ping: func(ctx context.Context) error {
			return weaviatedb.Ping(ctx, client)
		},
		close: func() {},
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return nil, err
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	return &stores{
		name:     config.DriverPostgres,
		accounts: auth.NewPostgresAccountRepository(pool),
		posts:    post.NewPostgresRepository(pool),
		ping: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		close: func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		},
	}, nil
}
