// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/weavepost/internal/platform/constants"
	"github.com/taibuivan/weavepost/internal/platform/ctxutil"
)

// CachedRepository is a read-through Redis cache in front of another [Repository].
//
// # Layout
//
// The feed lives in one hash at [constants.RedisKeyPostFeed], one field per
// list limit. Create deletes the whole hash. A List that started before a
// Create may still write a stale page, which then lives at most ttl.
//
// Redis failures never fail a request: they are logged and the wrapped
// repository is used directly.
type CachedRepository struct {
	next   Repository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedRepository wraps next with a feed cache whose entries expire after ttl.
func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{next: next, client: client, ttl: ttl}
}

// Create writes through to the wrapped repository and invalidates the feed.
func (repository *CachedRepository) Create(ctx context.Context, post *Post) error {
	if err := repository.next.Create(ctx, post); err != nil {
		return err
	}

	if err := repository.client.Del(ctx, constants.RedisKeyPostFeed).Err(); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "feed_cache_invalidate_failed", slog.Any("error", err))
	}

	return nil
}

// List serves the feed from Redis when present, otherwise from the wrapped
// repository, filling the cache on the way out.
func (repository *CachedRepository) List(ctx context.Context, limit int) ([]*Post, error) {
	logger := ctxutil.GetLogger(ctx)
	field := strconv.Itoa(limit)

	// ── 1. Cache Lookup ───────────────────────────────────────────────────

	cached, err := repository.client.HGet(ctx, constants.RedisKeyPostFeed, field).Bytes()
	switch {
	case err == nil:
		var posts []*Post
		if decodeErr := json.Unmarshal(cached, &posts); decodeErr == nil {
			logger.DebugContext(ctx, "feed_cache_hit", slog.Int("count", len(posts)))
			return posts, nil
		}
		logger.WarnContext(ctx, "feed_cache_corrupt")
	case errors.Is(err, redis.Nil):
		logger.DebugContext(ctx, "feed_cache_miss")
	default:
		logger.WarnContext(ctx, "feed_cache_read_failed", slog.Any("error", err))
	}

	// ── 2. Source of Truth ────────────────────────────────────────────────

	posts, err := repository.next.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	// ── 3. Fill ───────────────────────────────────────────────────────────

	encoded, err := json.Marshal(posts)
	if err != nil {
		logger.WarnContext(ctx, "feed_cache_encode_failed", slog.Any("error", err))
		return posts, nil
	}

	_, err = repository.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, constants.RedisKeyPostFeed, field, encoded)
		pipe.Expire(ctx, constants.RedisKeyPostFeed, repository.ttl)
		return nil
	})
	if err != nil {
		logger.WarnContext(ctx, "feed_cache_write_failed", slog.Any("error", err))
	}

	return posts, nil
}
