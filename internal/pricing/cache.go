// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/clefworks/partitura/internal/platform/constants"
)

// Cache keeps the latest price per book in Redis so the hot read path
// (order ingestion prices every line item) skips Postgres. Misses and Redis
// failures both fall through to the repository; the cache is never
// authoritative.
type Cache struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewCache(rdb *redis.Client, logger *slog.Logger) *Cache {
	return &Cache{rdb: rdb, logger: logger}
}

func cacheKey(bookID int64) string {
	return fmt.Sprintf("%s%d", constants.RedisPrefixCurrentPrice, bookID)
}

func (cache *Cache) Get(context context.Context, bookID int64) (*PriceRecord, bool) {
	payload, err := cache.rdb.Get(context, cacheKey(bookID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			cache.logger.Warn("price_cache_get_failed", slog.Int64("book_id", bookID), slog.Any("error", err))
		}
		return nil, false
	}

	record := &PriceRecord{}
	if err := json.Unmarshal(payload, record); err != nil {
		cache.logger.Warn("price_cache_corrupt", slog.Int64("book_id", bookID), slog.Any("error", err))
		return nil, false
	}
	return record, true
}

func (cache *Cache) Set(context context.Context, record *PriceRecord) {
	payload, err := json.Marshal(record)
	if err != nil {
		return
	}

	if err := cache.rdb.Set(context, cacheKey(record.BookID), payload, constants.CurrentPriceCacheTTL).Err(); err != nil {
		cache.logger.Warn("price_cache_set_failed", slog.Int64("book_id", record.BookID), slog.Any("error", err))
	}
}

func (cache *Cache) Invalidate(context context.Context, bookIDs ...int64) {
	if len(bookIDs) == 0 {
		return
	}

	keys := make([]string, len(bookIDs))
	for i, bookID := range bookIDs {
		keys[i] = cacheKey(bookID)
	}

	if err := cache.rdb.Del(context, keys...).Err(); err != nil {
		cache.logger.Warn("price_cache_invalidate_failed", slog.Int("keys", len(keys)), slog.Any("error", err))
	}
}
