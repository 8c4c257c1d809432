// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the weavepost HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from .env and environment variables.
//  3. Open the configured store (Weaviate, PostgreSQL or memory).
//  4. Connect to Redis when the feed cache is enabled.
//  5. Wire services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/weavepost/internal/api"
	"github.com/taibuivan/weavepost/internal/auth"
	"github.com/taibuivan/weavepost/internal/platform/config"
	"github.com/taibuivan/weavepost/internal/platform/constants"
	redisstore "github.com/taibuivan/weavepost/internal/platform/redis"
	"github.com/taibuivan/weavepost/internal/platform/sec"
	"github.com/taibuivan/weavepost/internal/post"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		exit(log, fmt.Errorf("load configuration: %w", err))
	}

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
		slog.Bool("feed_cache", cfg.CacheEnabled()),
	)

	if err := run(log, cfg); err != nil {
		exit(log, err)
	}

	log.Info("server_stopped")
}

// openBackend is replaced in tests.
var openBackend = openStores

// run wires every dependency and serves until a shutdown signal arrives.
//
// Every failure is returned, so the deferred closes always run before the
// process exits.
func run(log *slog.Logger, cfg *config.Config) error {
	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Store ──────────────────────────────────────────────────────────
	backend, err := openBackend(startupCtx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer backend.close()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var (
		postRepository post.Repository = backend.posts
		rdb            *redis.Client
	)
	if cfg.CacheEnabled() {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
		postRepository = post.NewCachedRepository(backend.posts, rdb, cfg.PostCacheTTL)
	}

	// ── 5. Security Primitives ────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.SecretKey, cfg.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("initialize token service: %w", err)
	}
	hasher := sec.NewHasher(cfg.BcryptCost)

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	healthDependencies := api.HealthDependencies{
		StoreName:  backend.name,
		CheckStore: backend.ping,
	}
	if rdb != nil {
		healthDependencies.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(healthDependencies)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	authService, err := auth.NewService(backend.accounts, hasher, tokenService)
	if err != nil {
		return fmt.Errorf("initialize auth service: %w", err)
	}
	postService := post.NewService(postRepository, cfg.PostListLimit)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Post:      post.NewHandler(postService, authService),
	})

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	var listenErr error
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case listenErr = <-serverErr:
		log.Error("server_listen_failed", slog.Any("error", listenErr))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	if listenErr != nil {
		return fmt.Errorf("listen: %w", listenErr)
	}

	return nil
}

// newLogger builds the JSON logger with the global app attribute.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// exit logs a structured fatal error and terminates the process.
//
// Only main calls it, after run has returned and its deferred closes are done.
func exit(log *slog.Logger, err error) {
	log.Error("startup_failure", slog.Any("error", err))
	os.Exit(1)
}
