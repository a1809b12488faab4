package cache

import (
	"context"
	"time"

	"Habitual/storage/redis"
)

// Distributed lock via SETNX, used to keep concurrent sweep runs from
// overlapping when more than one scheduler instance is up.
const lockPrefix = "lock"

func TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	fullKey := redis.Key(lockPrefix, key)

	result, err := redis.Client().SetNX(ctx, fullKey, 1, ttl).Result()
	if err != nil {
		return false, err
	}
	return result, nil
}

func Unlock(ctx context.Context, key string) error {
	fullKey := redis.Key(lockPrefix, key)

	return redis.Client().Del(ctx, fullKey).Err()
}
