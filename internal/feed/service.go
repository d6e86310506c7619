// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/umutkirgoz/mecra/internal/platform/constants"
	"github.com/umutkirgoz/mecra/internal/platform/ctxutil"
)

// Service implements the feed use cases with a Redis read-through cache.
type Service struct {
	repository Repository
	cache      *redis.Client
}

// NewService constructs a new [Service].
func NewService(repository Repository, cache *redis.Client) *Service {
	return &Service{repository: repository, cache: cache}
}

// Trends returns the trending titles of the last 24 hours.
func (service *Service) Trends(ctx context.Context) ([]*Item, error) {
	return service.cached(ctx, constants.RedisPrefixFeedTrends, func() ([]*Item, error) {
		return service.repository.Trends(ctx, constants.TrendsWindow, constants.FeedLimit)
	})
}

// Today returns the titles active since midnight.
func (service *Service) Today(ctx context.Context) ([]*Item, error) {
	return service.cached(ctx, constants.RedisPrefixFeedToday, func() ([]*Item, error) {
		return service.repository.Today(ctx, constants.FeedLimit)
	})
}

// cached wraps a feed query with a Redis read-through cache.
//
// Cache failures (miss, outage, corrupt payload) all degrade to the SQL
// query; only the SQL error is ever surfaced to the caller.
func (service *Service) cached(ctx context.Context, key string, load func() ([]*Item, error)) ([]*Item, error) {
	logger := ctxutil.GetLogger(ctx)

	// ── 1. Cache Lookup ───────────────────────────────────────────────────

	payload, err := service.cache.Get(ctx, key).Bytes()
	if err == nil {
		var items []*Item
		if jsonErr := json.Unmarshal(payload, &items); jsonErr == nil {
			return items, nil
		}
		logger.Warn("feed_cache_payload_corrupt", slog.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("feed_cache_read_failed", slog.String("key", key), slog.Any("error", err))
	}

	// ── 2. Source Query ───────────────────────────────────────────────────

	items, err := load()
	if err != nil {
		return nil, fmt.Errorf("feed_service_load_failed: %w", err)
	}

	// ── 3. Cache Fill ─────────────────────────────────────────────────────

	if payload, err := json.Marshal(items); err == nil {
		if err := service.cache.Set(ctx, key, payload, constants.FeedCacheTTL).Err(); err != nil {
			logger.Warn("feed_cache_write_failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return items, nil
}
