// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package title

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/serg350/yamdb-final/internal/platform/constants"
	"github.com/serg350/yamdb-final/internal/platform/ctxutil"
)

// ratingCacheTTL bounds rating staleness between review mutations that slip
// past invalidation (e.g. a cascade delete of the whole title's reviews).
const ratingCacheTTL = 5 * time.Minute

// noRatingSentinel marks a computed "no reviews yet" result, so the absence
// of reviews is cached too.
const noRatingSentinel = "-"

// RedisRatingCache implements [RatingCache] using Redis.
//
// Cache failures degrade to recomputation, never to request failures.
type RedisRatingCache struct {
	client *redis.Client
}

// NewRatingCache creates a Redis-backed rating cache.
func NewRatingCache(client *redis.Client) *RedisRatingCache {
	return &RedisRatingCache{client: client}
}

func ratingKey(titleID int) string {
	return constants.RedisPrefixTitleRating + strconv.Itoa(titleID)
}

// Get returns the cached rating and whether the cache held an entry.
func (cache *RedisRatingCache) Get(context context.Context, titleID int) (*int, bool) {
	value, err := cache.client.Get(context, ratingKey(titleID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			ctxutil.GetLogger(context).WarnContext(context, "rating_cache_get_failed", "error", err.Error())
		}
		return nil, false
	}

	if value == noRatingSentinel {
		return nil, true
	}

	rating, err := strconv.Atoi(value)
	if err != nil {
		return nil, false
	}
	return &rating, true
}

// Set stores a computed rating.
func (cache *RedisRatingCache) Set(context context.Context, titleID int, rating *int) {
	value := noRatingSentinel
	if rating != nil {
		value = strconv.Itoa(*rating)
	}

	if err := cache.client.Set(context, ratingKey(titleID), value, ratingCacheTTL).Err(); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "rating_cache_set_failed", "error", err.Error())
	}
}

// Invalidate drops the cached rating after a review mutation.
func (cache *RedisRatingCache) Invalidate(context context.Context, titleID int) error {
	if err := cache.client.Del(context, ratingKey(titleID)).Err(); err != nil {
		return fmt.Errorf("rating_cache_invalidate_failed: %w", err)
	}
	return nil
}
