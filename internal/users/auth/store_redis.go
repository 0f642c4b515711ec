// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/serg350/yamdb-final/internal/platform/constants"
)

// RedisCooldownRepository implements [CooldownRepository] using Redis.
//
// Each delivery takes a short-lived key; as long as the key lives, further
// deliveries for the same username are refused with the remaining TTL.
type RedisCooldownRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCooldownRepository creates a Redis-backed cooldown with the default window.
func NewCooldownRepository(client *redis.Client) *RedisCooldownRepository {
	return &RedisCooldownRepository{
		client: client,
		ttl:    constants.SignupResendCooldown,
	}
}

/*
Acquire attempts to take the delivery slot for a username.

Description: Uses SET NX so that acquiring and reserving the slot is a single
atomic operation.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - time.Duration: Zero when acquired; otherwise the remaining wait
  - error: Connectivity failures
*/
func (repository *RedisCooldownRepository) Acquire(context context.Context, username string) (time.Duration, error) {
	key := constants.RedisPrefixSignupCooldown + username

	acquired, err := repository.client.SetNX(context, key, "1", repository.ttl).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_cooldown_acquire_failed: %w", err)
	}
	if acquired {
		return 0, nil
	}

	remaining, err := repository.client.TTL(context, key).Result()
	if err != nil || remaining < 0 {
		// Key expired between SetNX and TTL; treat the slot as free next try.
		return time.Second, nil
	}

	return remaining, nil
}
