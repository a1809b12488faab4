package cache

import (
	"context"
	"fmt"
	"time"

	"Habitual/storage/redis"
)

const (
	messageProcessedPrefix = "message:processed"
	congratSentPrefix      = "congrat:sent"
	reconcileRunPrefix     = "reconcile:run"

	processedTTL = 48 * time.Hour
	dailyMarkTTL = 36 * time.Hour
)

// TryMarkMessageProcessing atomically claims a queue message by ID.
// Returns true on first claim; false means another consumer already
// holds or finished it.
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}

	result, err := redis.Client().SetNX(ctx, key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return result, nil
}

// UnmarkMessageProcessing releases the claim so a failed message can be
// redelivered and retried.
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

// MarkMessageProcessed finalizes a successfully handled message.
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}
	return redis.Client().Set(ctx, key, "completed", ttl).Err()
}

// TryMarkCongratSent claims the once-per-day completion message for one
// calendar. The mark outlives the local day so re-entrant marks of the
// same date stay quiet.
func TryMarkCongratSent(ctx context.Context, calendarID int64, date string) (bool, error) {
	key := redis.Key(congratSentPrefix, date, fmt.Sprintf("%d", calendarID))

	result, err := redis.Client().SetNX(ctx, key, "1", dailyMarkTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark congrat sent: %w", err)
	}
	return result, nil
}

// TryMarkReconcileRun claims the non-repeatable part of the daily
// reconciliation for one date, the all-done flag reset.
func TryMarkReconcileRun(ctx context.Context, date string) (bool, error) {
	key := redis.Key(reconcileRunPrefix, date)

	result, err := redis.Client().SetNX(ctx, key, "1", dailyMarkTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark reconcile run: %w", err)
	}
	return result, nil
}

// UnmarkReconcileRun releases the date claim after a failed reset so
// the next pass can retry it.
func UnmarkReconcileRun(ctx context.Context, date string) error {
	key := redis.Key(reconcileRunPrefix, date)
	return redis.Client().Del(ctx, key).Err()
}
